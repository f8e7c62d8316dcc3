package diag

import (
	"sort"
	"sync"

	"github.com/kairos-run/topoquery"
)

// CallHistory tracks recent Call/CallInSlot activations as a bounded tree,
// merging the teacher's ReactiveGraph adjacency-list bookkeeping (graph.go)
// with flow.go's ExecutionTree bounded eviction: once the tree holds more
// than limit roots, the oldest root and its whole subtree are dropped, the
// same FIFO-by-root eviction ExecutionTree uses to cap flow trace memory.
type CallHistory struct {
	mu       sync.Mutex
	limit    int
	byParent map[topo.Id][]topo.Id
	roots    []topo.Id
	seen     map[topo.Id]bool
}

// NewCallHistory caps the tree at limit root activations.
func NewCallHistory(limit int) *CallHistory {
	if limit <= 0 {
		limit = 256
	}
	return &CallHistory{
		limit:    limit,
		byParent: make(map[topo.Id][]topo.Id),
		seen:     make(map[topo.Id]bool),
	}
}

// OnCall implements topo.CallHook.
func (h *CallHistory) OnCall(id, parent topo.Id, site topo.Callsite) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.seen[id] {
		return
	}
	h.seen[id] = true
	h.byParent[parent] = append(h.byParent[parent], id)

	if parent != topo.RootID {
		return
	}
	h.roots = append(h.roots, id)
	if len(h.roots) > h.limit {
		h.evictOldest()
	}
}

func (h *CallHistory) evictOldest() {
	if len(h.roots) == 0 {
		return
	}
	oldest := h.roots[0]
	h.roots = h.roots[1:]
	h.removeSubtree(oldest)
}

func (h *CallHistory) removeSubtree(id topo.Id) {
	children := h.byParent[id]
	delete(h.byParent, id)
	delete(h.seen, id)
	for _, child := range children {
		h.removeSubtree(child)
	}
}

// Children returns the direct children recorded under id, oldest first.
func (h *CallHistory) Children(id topo.Id) []topo.Id {
	h.mu.Lock()
	defer h.mu.Unlock()
	children := h.byParent[id]
	out := make([]topo.Id, len(children))
	copy(out, children)
	return out
}

// Roots returns the current set of root-level Ids retained, sorted for
// deterministic iteration.
func (h *CallHistory) Roots() []topo.Id {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]topo.Id, len(h.roots))
	copy(out, h.roots)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
