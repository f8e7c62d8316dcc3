package diag

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/kairos-run/topoquery"
)

// GraphHook renders the recent call tree as ASCII art via treedrawer, the
// same dependency the teacher's GraphDebugExtension uses to render its
// resolution-failure dependency graph — reused here for the call-activation
// tree instead of an executor dependency graph.
type GraphHook struct {
	history *CallHistory
	labels  *LabelStore
}

// NewGraphHook records up to limit root activations. labels may be nil; if
// given, any Id with a stored label renders as "<label> (id=<n>)".
func NewGraphHook(limit int, labels *LabelStore) *GraphHook {
	return &GraphHook{history: NewCallHistory(limit), labels: labels}
}

// Label attaches a display name to id, used the next time Render walks it.
func (g *GraphHook) Label(id topo.Id, name string) {
	if g.labels == nil {
		g.labels = NewLabelStore()
	}
	g.labels.Store(id, name)
}

// OnCall implements topo.CallHook.
func (g *GraphHook) OnCall(id, parent topo.Id, site topo.Callsite) {
	g.history.OnCall(id, parent, site)
}

// Render returns the current call tree as an ASCII drawing, one root per
// top-level Call under the Env's root Point.
func (g *GraphHook) Render() string {
	out := ""
	for i, root := range g.history.Roots() {
		if i > 0 {
			out += "\n"
		}
		out += g.buildTree(root).String()
	}
	return out
}

func (g *GraphHook) buildTree(id topo.Id) *tree.Tree {
	label := fmt.Sprintf("id=%d", uint64(id))
	if g.labels != nil {
		if name, ok := g.labels.Load(id); ok {
			label = fmt.Sprintf("%s (id=%d)", name, uint64(id))
		}
	}
	node := tree.NewTree(tree.NodeString(label))
	for _, child := range g.history.Children(id) {
		childTree := g.buildTree(child)
		addTreeAsChild(node, childTree)
	}
	return node
}

// addTreeAsChild copies child (and its whole subtree) under parent,
// mirroring the teacher's own addTreeAsChild helper in graph_debug.go.
func addTreeAsChild(parent *tree.Tree, child *tree.Tree) *tree.Tree {
	newChild := parent.AddChild(child.Val())
	for _, grandchild := range child.Children() {
		addTreeAsChild(newChild, grandchild)
	}
	return newChild
}
