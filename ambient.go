package topo

import "reflect"

// Env carries one execution context's ambient state: the LIFO binding stack
// plus the current Point of the topology engine. It is never shared mutably
// across goroutines — each goroutine that wants its own topology keeps its
// own *Env, the same way a single-threaded scope owns its own cache.
type Env struct {
	bindings []binding
	point    *Point
	hook     CallHook
}

type binding struct {
	typ   reflect.Type
	value any
}

// NewEnv creates an empty ambient environment with a default root Point.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{point: rootPoint(), hook: NopCallHook{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Get returns the topmost binding of type T, or false if none is active.
func Get[T any](e *Env) (T, bool) {
	want := reflect.TypeOf((*T)(nil)).Elem()
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if e.bindings[i].typ == want {
			return e.bindings[i].value.(T), true
		}
	}
	var zero T
	return zero, false
}

// Enter installs value for the dynamic extent of body, shadowing any prior
// binding of type T, and restores the previous state on any exit — normal
// return or panic.
func Enter[T any, R any](e *Env, value T, body func() R) R {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	e.bindings = append(e.bindings, binding{typ: typ, value: value})
	depth := len(e.bindings)
	defer func() {
		e.bindings = e.bindings[:depth-1]
	}()
	return body()
}

// Bindings is a batch of type-keyed values installed together by
// EnterBindings, for callers that want to bind several types in one frame
// (mirrors the teacher's variadic ScopeOption style).
type Bindings []func(*Env) func()

// Bind builds one entry of a Bindings batch for type T.
func Bind[T any](value T) func(*Env) func() {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	return func(e *Env) func() {
		e.bindings = append(e.bindings, binding{typ: typ, value: value})
		depth := len(e.bindings)
		return func() { e.bindings = e.bindings[:depth-1] }
	}
}

// EnterBindings installs every binding in b for the dynamic extent of body,
// in order, and restores all of them (in reverse order) on exit.
func EnterBindings[R any](e *Env, b Bindings, body func() R) R {
	restores := make([]func(), 0, len(b))
	defer func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}()
	for _, install := range b {
		restores = append(restores, install(e))
	}
	return body()
}
