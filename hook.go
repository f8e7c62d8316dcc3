package topo

// CallHook observes Call/CallInSlot activations. It is an accept-an-
// interface seam, not a dependency on any concrete logging or metrics
// package — see package diag for implementations (structured logging,
// Prometheus counters, ASCII graph rendering) that satisfy it.
type CallHook interface {
	OnCall(id, parent Id, site Callsite)
}

// NopCallHook discards every event; it is the default when NewEnv is given
// no WithCallHook option.
type NopCallHook struct{}

func (NopCallHook) OnCall(Id, Id, Callsite) {}

// EnvOption configures a Env at construction.
type EnvOption func(*Env)

// WithCallHook attaches a CallHook invoked once per Call/CallInSlot
// activation, after the child Point's Id has been computed.
func WithCallHook(h CallHook) EnvOption {
	return func(e *Env) { e.hook = h }
}
