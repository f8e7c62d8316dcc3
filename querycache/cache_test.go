package querycache

import (
	"context"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestGetStoreHitMiss covers Scenario D: a miss followed by Store produces
// a subsequent hit, and a non-matching Arg still misses.
func TestGetStoreHitMiss(t *testing.T) {
	c := NewCache()

	if _, ok := Get[string, uint32, string](c, "k", 1); ok {
		t.Fatalf("expected miss on empty cache")
	}

	Store[string, uint32, string](c, "k", 1, "one")

	out, ok := Get[string, uint32, string](c, "k", 1)
	if !ok || out != "one" {
		t.Fatalf("expected hit with \"one\", got %q ok=%v", out, ok)
	}

	if _, ok := Get[string, uint32, string](c, "k", 2); ok {
		t.Fatalf("expected miss for non-matching input")
	}
}

// TestGCLivenessLaw covers Scenario E: an entry survives one GC after being
// touched, and is evicted by the GC after that if untouched in between.
func TestGCLivenessLaw(t *testing.T) {
	c := NewCache()
	Store[string, uint32, string](c, "k", 1, "one")

	c.GC() // first sweep: marks Live -> Dead, entry survives
	if _, ok := Peek[string, uint32, string](c, "k"); !ok {
		t.Fatalf("entry evicted after first GC, expected it to survive one sweep")
	}

	c.GC() // second sweep: entry was never re-touched, now Dead -> evicted
	if _, ok := Peek[string, uint32, string](c, "k"); ok {
		t.Fatalf("entry survived a second GC with no intervening touch")
	}
}

// TestGCTouchResetsLiveness ensures a read between two GCs keeps an entry
// alive indefinitely, the steady-state case a render loop depends on.
func TestGCTouchResetsLiveness(t *testing.T) {
	c := NewCache()
	Store[string, uint32, string](c, "k", 1, "one")

	for i := 0; i < 5; i++ {
		c.GC()
		if _, ok := Get[string, uint32, string](c, "k", 1); !ok {
			t.Fatalf("round %d: entry evicted despite being read every round", i)
		}
	}
}

// TestCacheWithHitAvoidsInit covers Testable Property 7: a cache_with hit
// never invokes init.
func TestCacheWithHitAvoidsInit(t *testing.T) {
	h := NewHandle()
	calls := 0
	init := func(uint32) string { calls++; return "computed" }

	CacheWith[string, uint32, string, string](h, "k", 7, init, func(s string) string { return s })
	CacheWith[string, uint32, string, string](h, "k", 7, init, func(s string) string { return s })

	if calls != 1 {
		t.Fatalf("expected init called once, got %d", calls)
	}
}

// TestCacheWithReentrant covers Scenario F / Testable Property 9: init may
// itself call CacheWith on the same Handle without deadlocking.
func TestCacheWithReentrant(t *testing.T) {
	h := NewHandle()

	outer := CacheWith[string, uint32, string, string](h, "outer", 1, func(uint32) string {
		inner := CacheWith[string, uint32, string, string](h, "inner", 2, func(uint32) string {
			return "inner-value"
		}, func(s string) string { return s })
		return "outer-wraps-" + inner
	}, func(s string) string { return s })

	if outer != "outer-wraps-inner-value" {
		t.Fatalf("unexpected result: %q", outer)
	}

	if v, ok := Peek[string, uint32, string](h.cache, "inner"); !ok || v != "inner-value" {
		t.Fatalf("inner entry not stored: %q ok=%v", v, ok)
	}
}

// TestTypeTripleSharding covers Testable Property 6: the same Scope value
// used across two distinct (Input, Output) type pairs never collides.
func TestTypeTripleSharding(t *testing.T) {
	c := NewCache()
	Store[string, uint32, string](c, "k", 1, "as-string")
	Store[string, uint32, int](c, "k", 1, 42)

	s, ok := Get[string, uint32, string](c, "k", 1)
	if !ok || s != "as-string" {
		t.Fatalf("string-output shard corrupted: %q ok=%v", s, ok)
	}

	n, ok := Get[string, uint32, int](c, "k", 1)
	if !ok || n != 42 {
		t.Fatalf("int-output shard corrupted: %d ok=%v", n, ok)
	}
}

// TestCacheWithAsymBorrowedArg exercises the asymmetric equality path where
// Arg differs from the stored Input type.
func TestCacheWithAsymBorrowedArg(t *testing.T) {
	h := NewHandle()

	toOwned := func(s string) []byte { return []byte(s) }
	eq := func(arg string, stored []byte) bool { return string(stored) == arg }

	first := CacheWithAsym[string, string, []byte, int, int](h, "k", "hello", eq, toOwned, func(b []byte) int { return len(b) }, func(n int) int { return n })
	if first != 5 {
		t.Fatalf("expected length 5, got %d", first)
	}

	second := CacheWithAsym[string, string, []byte, int, int](h, "k", "hello", eq, toOwned, func([]byte) int {
		t.Fatalf("init should not run on a hit")
		return -1
	}, func(n int) int { return n })
	if second != 5 {
		t.Fatalf("expected cached length 5, got %d", second)
	}
}

// TestCacheWithSurvivesPanicInEq confirms a panic inside a user-supplied eq
// (called while h.mu is held, for the hit check) unwinds through the
// deferred unlock instead of leaving the Handle permanently deadlocked —
// the Handle must still be fully usable afterward.
func TestCacheWithSurvivesPanicInEq(t *testing.T) {
	h := NewHandle()

	CacheWith[string, int, int, int](h, "k", 1, func(n int) int { return n * 10 }, func(n int) int { return n })

	panicking := func(a, b int) bool { panic("eq blew up") }
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatalf("expected eq's panic to propagate")
			}
		}()
		CacheWithAsym[string, int, int, int, int](h, "k", 1, panicking, func(n int) int { return n }, func(n int) int { return n * 10 }, func(n int) int { return n })
	}()

	result := CacheWith[string, int, int, int](h, "k", 1, func(n int) int {
		t.Fatalf("init should not run on a hit")
		return -1
	}, func(n int) int { return n })
	if result != 10 {
		t.Fatalf("expected Handle to remain usable after panic, got %d", result)
	}

	h.GC()
}

// TestHandleConcurrentCacheWith drives many goroutines through CacheWith on
// one shared key to confirm the lock discipline never corrupts the shard
// and init never observes a torn write.
func TestHandleConcurrentCacheWith(t *testing.T) {
	h := NewHandle()
	var g errgroup.Group

	for i := 0; i < 64; i++ {
		g.Go(func() error {
			CacheWith[string, uint32, string, string](h, "shared", 9, func(uint32) string {
				return "nine"
			}, func(s string) string {
				if s != "nine" {
					t.Errorf("observed torn value %q", s)
				}
				return s
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("errgroup returned error: %v", err)
	}

	out, ok := Peek[string, uint32, string](h.cache, "shared")
	if !ok || out != "nine" {
		t.Fatalf("unexpected final state: %q ok=%v", out, ok)
	}
}

func TestCacheQueriesSnapshot(t *testing.T) {
	c := NewCache()
	Store[string, uint32, string](c, "a", 1, "x")
	Store[string, uint32, int](c, "b", 1, 1)

	queries := c.Queries()
	if len(queries) != 2 {
		t.Fatalf("expected 2 distinct query shards, got %d", len(queries))
	}
}

// ensure context import compiles under -race friendly build; errgroup.Group
// here doesn't need a context, but exercising errgroup.WithContext keeps
// the import honest for future cancellation-aware use.
func TestErrgroupWithContext(t *testing.T) {
	g, ctx := errgroup.WithContext(context.Background())
	h := NewHandle()
	g.Go(func() error {
		CacheWith[string, uint32, string, string](h, "ctx", 1, func(uint32) string { return "v" }, func(s string) string { return s })
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
