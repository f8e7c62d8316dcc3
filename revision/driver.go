package revision

import (
	"github.com/kairos-run/topoquery"
	"github.com/kairos-run/topoquery/querycache"
)

// Driver owns one topo.Env and one querycache.Handle across a sequence of
// revisions, calling GC at each revision boundary — the same per-execution
// bookkeeping role the teacher's generateExecutionID/ExecutionCtx pairing
// plays in flow.go, repurposed here from per-flow execution tracing to
// per-revision cache liveness bookkeeping.
type Driver struct {
	Env   *topo.Env
	Cache *querycache.Handle

	revisionCount int
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithCallHook attaches a topo.CallHook to the Driver's Env.
func WithCallHook(h topo.CallHook) Option {
	return func(d *Driver) { d.Env = topo.NewEnv(topo.WithCallHook(h)) }
}

// WithCacheHook attaches a querycache.Hook to the Driver's Cache.
func WithCacheHook(h querycache.Hook) Option {
	return func(d *Driver) { d.Cache = querycache.NewHandle(querycache.WithHook(h)) }
}

// NewDriver creates a Driver with a fresh Env and Handle.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{Env: topo.NewEnv(), Cache: querycache.NewHandle()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Revision runs body against the Driver's Env, then sweeps the cache. The
// Env's ambient Point is already at its root before and after every
// Revision call — body is expected to re-traverse from scratch each time,
// the same way a reactive UI's render pass re-enters every Call on every
// frame.
func (d *Driver) Revision(body func(env *topo.Env)) {
	body(d.Env)
	d.Cache.GC()
	d.revisionCount++
}

// Revisions runs body n times, passing the 0-based revision index.
func (d *Driver) Revisions(n int, body func(i int, env *topo.Env)) {
	for i := 0; i < n; i++ {
		d.Revision(func(env *topo.Env) { body(i, env) })
	}
}

// RevisionCount returns how many revisions have run so far.
func (d *Driver) RevisionCount() int { return d.revisionCount }
