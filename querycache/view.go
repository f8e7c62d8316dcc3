package querycache

// View binds one Scope value to a concrete (Input, Output) type pair,
// giving callers a Get/Peek surface over a shared Handle without having to
// repeat the type parameters or the scope at every call site — adapted from
// the teacher's Controller[T], narrowed from its reactive-update machinery
// down to the cache-or-compute surface this package actually needs.
type View[S comparable, I comparable, O any] struct {
	handle *Handle
	scope  S
}

// NewView binds scope on h for repeated Get/Peek calls.
func NewView[S comparable, I comparable, O any](h *Handle, scope S) *View[S, I, O] {
	return &View[S, I, O]{handle: h, scope: scope}
}

// Get returns the memoized Output for arg, computing it with init on a
// miss.
func (v *View[S, I, O]) Get(arg I, init func(I) O) O {
	return CacheWith[S, I, O, O](v.handle, v.scope, arg, init, func(o O) O { return o })
}

// Peek returns the currently stored Output, if any, without comparing
// against an Input or recomputing.
func (v *View[S, I, O]) Peek() (O, bool) {
	v.handle.mu.Lock()
	defer v.handle.mu.Unlock()
	return Peek[S, I, O](v.handle.cache, v.scope)
}

// Scope returns the Scope value this view was bound to.
func (v *View[S, I, O]) Scope() S { return v.scope }
