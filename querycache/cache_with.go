package querycache

// CacheWith is the closure form of the cache: it returns with applied to the
// stored Output if arg already compares equal to the stored Input under eq,
// otherwise it computes a fresh Output with init and stores it first.
//
// The lock discipline matters more than it looks: the mutex is held only
// across the hit check (and, on a hit, the with call) and, separately,
// across the final store — never across init, nor across with on a miss.
// That means init may itself call CacheWith again on
// the same Handle (directly, or transitively through something it calls)
// without deadlocking, which is the re-entrance guarantee nested memoized
// computations depend on.
func CacheWith[S comparable, I comparable, O any, R any](h *Handle, scope S, arg I, init func(I) O, with func(O) R) R {
	return CacheWithAsym[S, I, I, O, R](h, scope, arg, func(a, b I) bool { return a == b }, func(a I) I { return a }, init, with)
}

// CacheWithAsym is CacheWith generalized to a borrowed argument type A
// distinct from the stored Input type I, with an explicit equality and a
// conversion used only on a miss — the Go rendering of cache.rs's
// Borrow/ToOwned-based cache_with, for callers whose Arg is cheaper to
// construct than a full Input (e.g. a string key against an owned struct).
//
// On a hit, with runs while the lock from the hit check is still held —
// mirroring cache.rs's guard-lifetime idiom, where the mutex guard stays
// alive through the with(&output) call — so another goroutine can't evict
// or overwrite the entry between the hit and with observing it. Both the
// hit check and the final store are wrapped in their own locked helper with
// the unlock deferred, so a panic inside eq or with — both arbitrary user
// code — releases the mutex instead of leaving the Handle deadlocked.
func CacheWithAsym[S comparable, A any, I any, O any, R any](h *Handle, scope S, arg A, eq func(A, I) bool, toOwned func(A) I, init func(I) O, with func(O) R) R {
	q := queryFor[S, I, O]()

	if result, hit := lockedHit[S, I, O](h, scope, arg, eq, with); hit {
		h.cache.hook.OnHit(q)
		return result
	}
	h.cache.hook.OnMiss(q)

	input := toOwned(arg)
	output := init(input)
	result := with(output)

	lockedStore[S, I, O](h, scope, input, output)
	h.cache.hook.OnStore(q)

	return result
}

// lockedHit holds h.mu for the duration of the hit check and, on a hit, the
// with call — never across init, which is the re-entrance boundary.
func lockedHit[S comparable, I any, O any, A any, R any](h *Handle, scope S, arg A, eq func(A, I) bool, with func(O) R) (R, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ns := shardFor[S, I, O](h.cache)
	out, ok := getIfInputEq(ns, scope, arg, eq)
	if !ok {
		var zero R
		return zero, false
	}
	return with(out), true
}

func lockedStore[S comparable, I any, O any](h *Handle, scope S, input I, output O) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ns := shardFor[S, I, O](h.cache)
	ns.store(scope, input, output)
}

// CacheWithLocal is CacheWith for a single-goroutine-confined LocalHandle:
// the same compute-then-store shape, without any locking.
func CacheWithLocal[S comparable, I comparable, O any, R any](h *LocalHandle, scope S, arg I, init func(I) O, with func(O) R) R {
	return CacheWithLocalAsym[S, I, I, O, R](h, scope, arg, func(a, b I) bool { return a == b }, func(a I) I { return a }, init, with)
}

// CacheWithLocalAsym is CacheWithAsym for a LocalHandle.
func CacheWithLocalAsym[S comparable, A any, I any, O any, R any](h *LocalHandle, scope S, arg A, eq func(A, I) bool, toOwned func(A) I, init func(I) O, with func(O) R) R {
	q := queryFor[S, I, O]()

	ns := shardFor[S, I, O](h.cache)
	if out, ok := getIfInputEq(ns, scope, arg, eq); ok {
		h.cache.hook.OnHit(q)
		return with(out)
	}
	h.cache.hook.OnMiss(q)

	input := toOwned(arg)
	output := init(input)
	result := with(output)

	ns = shardFor[S, I, O](h.cache)
	ns.store(scope, input, output)
	h.cache.hook.OnStore(q)

	return result
}
