package querycache

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// Hook observes cache hits, misses, stores and GC sweeps. Cache accepts one
// as an optional constructor argument; package diag supplies concrete
// implementations (structured logging, Prometheus counters) that satisfy
// it without querycache importing any of them.
type Hook interface {
	OnHit(q Query)
	OnMiss(q Query)
	OnStore(q Query)
	OnGC(q Query, live, dead int)
}

// NopHook discards every event; it is the default when NewCache is given no
// WithHook option.
type NopHook struct{}

func (NopHook) OnHit(Query)          {}
func (NopHook) OnMiss(Query)         {}
func (NopHook) OnStore(Query)        {}
func (NopHook) OnGC(Query, int, int) {}

type gcShard interface {
	gc() (live, dead int)
}

// Cache is the raw, type-erased shard map: one namespace per distinct
// (Scope, Input, Output) type triple. It has no locking of its own — it is
// the storage the Handle and LocalHandle concurrency flavors share.
type Cache struct {
	id     string
	shards map[Query]gcShard
	hook   Hook
}

// Option configures a Cache at construction.
type Option func(*Cache)

// WithHook attaches a Hook invoked around every hit, miss, store and GC.
func WithHook(h Hook) Option {
	return func(c *Cache) { c.hook = h }
}

// NewCache creates an empty, type-erased cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		id:     uuid.NewString(),
		shards: make(map[Query]gcShard),
		hook:   NopHook{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns an opaque identifier stamped at construction, for log and
// metric correlation across multiple caches in one process. It carries no
// semantic meaning for lookups.
func (c *Cache) ID() string { return c.id }

// Queries returns a snapshot of every (Scope, Input, Output) triple the
// cache currently has a shard for, in no particular guaranteed order.
func (c *Cache) Queries() []Query {
	return maps.Keys(c.shards)
}

func shardFor[S comparable, I any, O any](c *Cache) *namespace[S, I, O] {
	q := queryFor[S, I, O]()
	shard, ok := c.shards[q]
	if !ok {
		ns := newNamespace[S, I, O]()
		c.shards[q] = ns
		return ns
	}
	ns, ok := shard.(*namespace[S, I, O])
	if !ok {
		panic(&DowncastError{Query: q})
	}
	return ns
}

// GC sweeps every shard: entries untouched since the prior GC are dropped,
// and everything that survives is marked for collection by the next call
// unless something reads or stores it again first.
func (c *Cache) GC() {
	for q, shard := range c.shards {
		l, d := shard.gc()
		c.hook.OnGC(q, l, d)
	}
}

// GetIfArgEqPrevInput reads the Output stored under scope, if one exists
// and arg compares equal to its stored Input under eq. A hit marks the
// entry Live. This is the direct, non-closure read of the cache.
func GetIfArgEqPrevInput[S comparable, I any, O any, A any](c *Cache, scope S, arg A, eq func(A, I) bool) (O, bool) {
	q := queryFor[S, I, O]()
	ns := shardFor[S, I, O](c)
	out, ok := getIfInputEq(ns, scope, arg, eq)
	if ok {
		c.hook.OnHit(q)
	} else {
		c.hook.OnMiss(q)
	}
	return out, ok
}

// Get is GetIfArgEqPrevInput specialized to the common case where Arg and
// Input are the same comparable type, compared with ==.
func Get[S comparable, I comparable, O any](c *Cache, scope S, arg I) (O, bool) {
	return GetIfArgEqPrevInput[S, I, O](c, scope, arg, func(a, b I) bool { return a == b })
}

// Peek returns the Output stored under scope without comparing against any
// Input and without affecting liveness — a read-only debug accessor, not
// part of the memoization contract.
func Peek[S comparable, I any, O any](c *Cache, scope S) (O, bool) {
	ns := shardFor[S, I, O](c)
	return peek(ns, scope)
}

// Store overwrites whatever was stored under scope with input and output,
// marking the entry Live.
func Store[S comparable, I any, O any](c *Cache, scope S, input I, output O) {
	ns := shardFor[S, I, O](c)
	ns.store(scope, input, output)
	c.hook.OnStore(queryFor[S, I, O]())
}

// Handle shares one Cache across goroutines behind a mutex. Cloning a
// *Handle is just copying the pointer — Go's garbage collector keeps the
// backing Cache alive as long as any goroutine holds one, which is the
// idiomatic replacement for the original's atomic-refcounted handle.
type Handle struct {
	mu    sync.Mutex
	cache *Cache
}

// NewHandle wraps a fresh Cache in a mutex-guarded Handle.
func NewHandle(opts ...Option) *Handle {
	return &Handle{cache: NewCache(opts...)}
}

// GC sweeps the underlying cache under lock.
func (h *Handle) GC() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache.GC()
}

// LocalHandle wraps a Cache for use from a single goroutine. It never
// locks: sharing a *LocalHandle across goroutines without external
// synchronization is undefined, the same confinement contract a raw
// single-threaded Cache in the original carries.
type LocalHandle struct {
	cache *Cache
}

// NewLocalHandle wraps a fresh Cache in a single-goroutine-confined handle.
func NewLocalHandle(opts ...Option) *LocalHandle {
	return &LocalHandle{cache: NewCache(opts...)}
}

// GC sweeps the underlying cache.
func (h *LocalHandle) GC() { h.cache.GC() }
