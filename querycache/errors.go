package querycache

import "fmt"

// DowncastError reports that a Query's shard did not hold the concrete
// namespace type its own (Scope, Input, Output) triple promises. This can
// only happen if two different namespace[S, I, O] instantiations somehow
// produced the same Query, which queryFor's reflect.Type triple rules out
// by construction — so this is a defensive trip wire, not a reachable path,
// the same role SafeTypeAssertion plays in the teacher's resolver.
type DowncastError struct {
	Query Query
}

func (e *DowncastError) Error() string {
	return fmt.Sprintf("querycache: shard for %s did not hold the expected namespace type", e.Query)
}
