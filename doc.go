// Package topo assigns a stable, deterministic identity to every dynamic
// activation of a nested call in a repeatedly re-executed call graph.
//
// # Overview
//
// Calling code enters a nested scope with Call or CallInSlot:
//
//	env := topo.NewEnv()
//
//	topo.Call(env, func() any {
//	    id := topo.CurrentID(env)
//	    // id is stable across repeated traversals of this same call site
//	    return nil
//	})
//
// Each Call derives a child Id from the parent's Id, the lexical call site,
// and a slot — by default the count of calls at that site within the same
// parent, this one included (1 for the first):
//
//	for i := 0; i < 3; i++ {
//	    topo.Call(env, func() any {
//	        // a distinct Id on each iteration, stable across repeated loops
//	        return nil
//	    })
//	}
//
// CallInSlot pins the slot explicitly, which keeps Ids stable when iterating
// a collection whose order isn't otherwise stable:
//
//	for _, key := range unstableOrderKeys {
//	    topo.CallInSlot(env, key, func() any { ...; return nil })
//	}
//
// # Ambient values
//
// Env also carries a LIFO stack of typed values for the dynamic extent of a
// call, independent of the Id machinery:
//
//	topo.Enter(env, Submarine{N: 1}, func() any {
//	    sub, _ := topo.Get[Submarine](env)
//	    return sub
//	})
//
// # Relationship to querycache
//
// topo only produces identities; it does not cache anything. Pair it with
// package querycache to memoize pure computations keyed by the Id of their
// activation — see querycache's package doc for the cache-or-compute API.
package topo
