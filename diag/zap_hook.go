package diag

import (
	"go.uber.org/zap"

	"github.com/kairos-run/topoquery"
	"github.com/kairos-run/topoquery/querycache"
)

// ZapHook logs Call activations and cache events through a *zap.Logger,
// replacing the teacher's fmt.Printf-based LoggingExtension timing output
// with structured fields.
type ZapHook struct {
	log *zap.Logger
}

// NewZapHook wraps log. A nil log falls back to zap.NewNop().
func NewZapHook(log *zap.Logger) *ZapHook {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapHook{log: log}
}

// OnCall implements topo.CallHook.
func (h *ZapHook) OnCall(id, parent topo.Id, site topo.Callsite) {
	h.log.Debug("call",
		zap.Uint64("id", uint64(id)),
		zap.Uint64("parent", uint64(parent)),
	)
}

// OnHit implements querycache.Hook.
func (h *ZapHook) OnHit(q querycache.Query) {
	h.log.Debug("cache hit", zap.String("query", q.String()))
}

// OnMiss implements querycache.Hook.
func (h *ZapHook) OnMiss(q querycache.Query) {
	h.log.Debug("cache miss", zap.String("query", q.String()))
}

// OnStore implements querycache.Hook.
func (h *ZapHook) OnStore(q querycache.Query) {
	h.log.Debug("cache store", zap.String("query", q.String()))
}

// OnGC implements querycache.Hook.
func (h *ZapHook) OnGC(q querycache.Query, live, dead int) {
	h.log.Info("cache gc",
		zap.String("query", q.String()),
		zap.Int("live", live),
		zap.Int("dead", dead),
	)
}
