package topo

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/dchest/siphash"
)

// Id identifies one dynamic activation of a nested call. The root Id, used
// when no Call has been entered yet, is always 0. Ids carry no ordering
// meaning — they exist only to be compared for equality.
type Id uint64

// RootID is the Id of the ambient root Point, before any Call is entered.
const RootID Id = 0

// idHashKey is a fixed siphash key, not a random one: determinism of Id
// across repeated runs of the same traversal (Testable Property 1) is a
// hard invariant, which rules out the usual crypto/rand-seeded siphash key.
var idHashKey = struct{ k0, k1 uint64 }{
	k0: 0x746f706f5f746f70, // "topo_top"
	k1: 0x6f6c6f67795f6964, // "ology_id"
}

// Slot distinguishes multiple activations of the same Callsite within the
// same parent Point. It must be a comparable, deterministically hashable
// value; the zero value (an int 0) is never produced implicitly — the
// default slot assigned by Call starts at 1 for the first child (see
// Point.enterChild).
type Slot any

// Callsite identifies a lexical call location of Call/CallInSlot. It is
// captured from the caller's return address via runtime.Caller, so user
// code never predeclares a per-site marker the way topo's Rust ancestor's
// callsite! macro required: the program counter for a given call expression
// is the same on every execution, which is exactly the stability Callsite
// needs.
type Callsite struct {
	pc uintptr
}

// rootCallsite is a sentinel distinct from any pc a real call site could
// produce (valid PCs are never zero), used by the ambient root Point.
var rootCallsite = Callsite{pc: 0}

func callsiteAt(skip int) Callsite {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		// Caller information is unavailable (e.g. under certain test
		// harnesses); every such call site collapses to one Callsite,
		// which only degrades Id distinctness, not correctness.
		return Callsite{pc: 0}
	}
	return Callsite{pc: uintptr(pc)}
}

// child computes this Id's child Id from a callsite and slot, matching
// spec's resolved Open Question: increment the sibling counter first, then
// hash using the resulting count — so a Point's first child uses slot/count
// 1, never 0.
func (id Id) child(site Callsite, slot Slot) Id {
	buf := make([]byte, 0, 24)
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(id))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint64(tmp[:], uint64(site.pc))
	buf = append(buf, tmp[:]...)
	buf = append(buf, slotBytes(slot)...)
	return Id(siphash.Hash(idHashKey.k0, idHashKey.k1, buf))
}

// slotBytes renders a Slot to a deterministic byte sequence. Common scalar
// kinds are encoded directly; anything else falls back to its %v text,
// which is deterministic as long as the caller's slot type has a stable
// String/format representation (the same contract spec places on user-
// supplied slots generally — see spec.md §7, "slot collisions").
func slotBytes(slot Slot) []byte {
	switch v := slot.(type) {
	case string:
		return []byte(v)
	case int:
		return intBytes(int64(v))
	case int64:
		return intBytes(v)
	case uint64:
		return uintBytes(v)
	case uint32:
		return uintBytes(uint64(v))
	case bool:
		if v {
			return []byte{1}
		}
		return []byte{0}
	default:
		return []byte(fmt.Sprintf("%v", v))
	}
}

func intBytes(v int64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

func uintBytes(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// Point is the runtime record for one active activation: its Id, the
// Callsite that produced it, and a count of how many children each callsite
// has produced so far within this Point.
type Point struct {
	id       Id
	callsite Callsite
	counts   map[Callsite]uint32
}

func rootPoint() *Point {
	return &Point{id: RootID, callsite: rootCallsite, counts: make(map[Callsite]uint32)}
}

func (p *Point) enterChild(site Callsite, slot Slot, hasExplicitSlot bool) *Point {
	p.counts[site]++
	count := p.counts[site]
	effectiveSlot := slot
	if !hasExplicitSlot {
		effectiveSlot = count
	}
	child := acquirePoint()
	child.callsite = site
	child.id = p.id.child(site, effectiveSlot)
	return child
}

// CurrentID returns the Id of e's currently active Point, or RootID if no
// Call has been entered yet.
func CurrentID(e *Env) Id {
	return e.point.id
}

// Call enters a child scope at op's call site, using the default slot — the
// count of calls at that site within the current parent, this one included
// (1 for the first child, by the increment-then-hash rule above) — runs op,
// and restores the previous ambient Point before returning, even if op
// panics.
func Call[R any](e *Env, op func() R) R {
	return callInternal(e, callsiteAt(2), nil, false, op)
}

// CallInSlot is Call with a caller-supplied slot replacing the default
// sibling count, which keeps Ids stable across runs when iterating a
// collection whose enumeration order isn't otherwise stable.
func CallInSlot[R any](e *Env, slot Slot, op func() R) R {
	return callInternal(e, callsiteAt(2), slot, true, op)
}

func callInternal[R any](e *Env, site Callsite, slot Slot, hasSlot bool, op func() R) R {
	parent := e.point
	child := parent.enterChild(site, slot, hasSlot)
	e.point = child
	e.hook.OnCall(child.id, parent.id, site)
	defer func() {
		e.point = parent
		releasePoint(child)
	}()
	return op()
}
