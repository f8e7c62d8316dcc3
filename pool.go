package topo

import "sync"

// pointPool recycles *Point allocations across Call/CallInSlot activations.
// Every nested call allocates a child Point; pooling keeps that allocation
// off the hot path the same way the teacher's PoolManager keeps resolution
// contexts off pumped's hot path (pool_manager.go).
var pointPool = sync.Pool{
	New: func() any {
		return &Point{counts: make(map[Callsite]uint32, 4)}
	},
}

func acquirePoint() *Point {
	p := pointPool.Get().(*Point)
	for k := range p.counts {
		delete(p.counts, k)
	}
	return p
}

func releasePoint(p *Point) {
	pointPool.Put(p)
}
