package diag

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kairos-run/topoquery"
	"github.com/kairos-run/topoquery/querycache"
)

// PromHook exposes cache activity as Prometheus counters and gauges,
// grounded on the arena cache's own metrics.go: one counter per hit/miss/
// store event, plus gauges for the live/dead counts reported by each GC.
type PromHook struct {
	calls  prometheus.Counter
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	stores *prometheus.CounterVec
	live   *prometheus.GaugeVec
	dead   *prometheus.GaugeVec
}

// NewPromHook registers its metrics against reg. Passing a fresh
// prometheus.NewRegistry() (rather than the global DefaultRegisterer) is
// recommended for tests, so repeated construction doesn't panic on
// duplicate registration.
func NewPromHook(reg prometheus.Registerer) *PromHook {
	h := &PromHook{
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "topoquery_calls_total",
			Help: "Total number of topo.Call/CallInSlot activations.",
		}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "topoquery_cache_hits_total",
			Help: "Total cache hits, by query.",
		}, []string{"query"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "topoquery_cache_misses_total",
			Help: "Total cache misses, by query.",
		}, []string{"query"}),
		stores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "topoquery_cache_stores_total",
			Help: "Total cache stores, by query.",
		}, []string{"query"}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "topoquery_gc_live",
			Help: "Entries found live, and retained, by the most recent GC, by query.",
		}, []string{"query"}),
		dead: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "topoquery_gc_dead",
			Help: "Entries evicted by the most recent GC, by query.",
		}, []string{"query"}),
	}
	reg.MustRegister(h.calls, h.hits, h.misses, h.stores, h.live, h.dead)
	return h
}

// OnCall implements topo.CallHook.
func (h *PromHook) OnCall(id, parent topo.Id, site topo.Callsite) {
	h.calls.Inc()
}

// OnHit implements querycache.Hook.
func (h *PromHook) OnHit(q querycache.Query) { h.hits.WithLabelValues(q.String()).Inc() }

// OnMiss implements querycache.Hook.
func (h *PromHook) OnMiss(q querycache.Query) { h.misses.WithLabelValues(q.String()).Inc() }

// OnStore implements querycache.Hook.
func (h *PromHook) OnStore(q querycache.Query) { h.stores.WithLabelValues(q.String()).Inc() }

// OnGC implements querycache.Hook.
func (h *PromHook) OnGC(q querycache.Query, live, dead int) {
	h.live.WithLabelValues(q.String()).Set(float64(live))
	h.dead.WithLabelValues(q.String()).Set(float64(dead))
}
