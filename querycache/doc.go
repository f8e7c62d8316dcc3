// Package querycache memoizes the output of a pure computation against its
// input, namespaced by an arbitrary Scope value, with mark-and-sweep
// liveness driven by revision boundaries.
//
// # Query types
//
// Storage is sharded by the runtime type triple (Scope, Input, Output) of a
// query — see Query. Each Scope value corresponds to at most one stored
// Input and Output at a time.
//
// # Reading stored values
//
// GetIfArgEqPrevInput compares a borrowed Arg against the stored Input with
// a caller-supplied equality function, so Arg need not be the same type as
// Input, and nothing is allocated on a cache hit.
//
// # Garbage collection
//
// Cache.GC acts as a barrier: anything not read or stored since the last GC
// is dropped, and everything that survives is marked for collection by the
// next call unless it's touched again first. See package topo's package doc
// for pairing this with an Id-producing revision loop.
//
// # Concurrency
//
// Handle wraps a Cache behind a mutex for use from multiple goroutines.
// LocalHandle is the single-goroutine-confined counterpart: no locking,
// cheaper, and documented as unsafe to share.
package querycache
