package revision

import (
	"testing"

	"github.com/kairos-run/topoquery"
	"github.com/kairos-run/topoquery/querycache"
)

func TestDriverGCEvictsUntouchedEntries(t *testing.T) {
	d := NewDriver()

	computed := 0
	compute := func(n int) int { computed++; return n * 2 }

	run := func() {
		d.Revision(func(env *topo.Env) {
			topo.Call(env, func() any {
				querycache.CacheWith[string, int, int, int](d.Cache, "k", 21, compute, func(v int) int { return v })
				return nil
			})
		})
	}

	run() // miss, computes and stores
	run() // GC from previous revision swept it to dead but it was read again this revision -> hit
	run() // same

	if computed != 1 {
		t.Fatalf("expected compute to run once across 3 touched revisions, ran %d times", computed)
	}

	// Now let a revision pass without touching the entry: two GCs with no
	// intervening read must evict it.
	d.Revision(func(env *topo.Env) {})

	run()
	if computed != 2 {
		t.Fatalf("expected a recompute after the entry was untouched for a full revision, got %d calls", computed)
	}

	if d.RevisionCount() != 5 {
		t.Fatalf("expected 5 revisions, got %d", d.RevisionCount())
	}
}
