package querycache

import "reflect"

// Query identifies one shard of the cache by the runtime type triple of a
// memoized computation: the Scope it is keyed by, the Input it was computed
// from, and the Output it produced. Two queries with the same three types
// always land in the same shard, regardless of how many distinct Scope
// values are stored there.
type Query struct {
	Scope  reflect.Type
	Input  reflect.Type
	Output reflect.Type
}

func (q Query) String() string {
	return q.Scope.String() + "->" + q.Input.String() + "->" + q.Output.String()
}

func queryFor[S, I, O any]() Query {
	return Query{
		Scope:  typeOf[S](),
		Input:  typeOf[I](),
		Output: typeOf[O](),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
