// Package promhooks implements the observability hook interfaces on top of
// Prometheus metrics. It is wired in by the serve command; CLI runs keep
// the no-op defaults.
package promhooks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lineagekit/lineage/pkg/observability"
)

// PipelineHooks records pipeline stage durations and outcomes.
type PipelineHooks struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	graphSize     prometheus.Histogram
}

// NewPipelineHooks creates pipeline hooks registered on reg.
func NewPipelineHooks(reg prometheus.Registerer) *PipelineHooks {
	factory := promauto.With(reg)
	return &PipelineHooks{
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lineage_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_pipeline_stage_errors_total",
			Help: "Pipeline stage failures.",
		}, []string{"stage"}),
		graphSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lineage_graph_people",
			Help:    "Number of people in loaded graphs.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (h *PipelineHooks) OnLoadStart(context.Context, string) {}

func (h *PipelineHooks) OnLoadComplete(_ context.Context, _ string, personCount int, duration time.Duration, err error) {
	h.stageDuration.WithLabelValues("load").Observe(duration.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues("load").Inc()
		return
	}
	h.graphSize.Observe(float64(personCount))
}

func (h *PipelineHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PipelineHooks) OnLayoutComplete(_ context.Context, _ string, duration time.Duration, err error) {
	h.stageDuration.WithLabelValues("layout").Observe(duration.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues("layout").Inc()
	}
}

func (h *PipelineHooks) OnRenderStart(context.Context, string) {}

func (h *PipelineHooks) OnRenderComplete(_ context.Context, _ string, duration time.Duration, err error) {
	h.stageDuration.WithLabelValues("render").Observe(duration.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues("render").Inc()
	}
}

// CacheHooks records cache hit/miss/write counters.
type CacheHooks struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	writes *prometheus.CounterVec
}

// NewCacheHooks creates cache hooks registered on reg.
func NewCacheHooks(reg prometheus.Registerer) *CacheHooks {
	factory := promauto.With(reg)
	return &CacheHooks{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_cache_hits_total",
			Help: "Cache hits by key type.",
		}, []string{"key_type"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_cache_misses_total",
			Help: "Cache misses by key type.",
		}, []string{"key_type"}),
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_cache_writes_total",
			Help: "Cache writes by key type.",
		}, []string{"key_type"}),
	}
}

func (h *CacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits.WithLabelValues(keyType).Inc()
}

func (h *CacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses.WithLabelValues(keyType).Inc()
}

func (h *CacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.writes.WithLabelValues(keyType).Inc()
}

// SourceHooks records graph source query metrics.
type SourceHooks struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewSourceHooks creates source hooks registered on reg.
func NewSourceHooks(reg prometheus.Registerer) *SourceHooks {
	factory := promauto.With(reg)
	return &SourceHooks{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_source_queries_total",
			Help: "Source queries by backend and operation.",
		}, []string{"backend", "operation"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lineage_source_query_duration_seconds",
			Help:    "Source query durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_source_errors_total",
			Help: "Source failures by backend and operation.",
		}, []string{"backend", "operation"}),
	}
}

func (h *SourceHooks) OnQuery(_ context.Context, backend, operation string) {
	h.queries.WithLabelValues(backend, operation).Inc()
}

func (h *SourceHooks) OnResult(_ context.Context, backend, operation string, duration time.Duration) {
	h.duration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

func (h *SourceHooks) OnError(_ context.Context, backend, operation string, err error) {
	if err == nil {
		return
	}
	h.errors.WithLabelValues(backend, operation).Inc()
}

// Register creates all hook implementations on reg and installs them as
// the process-wide hooks.
func Register(reg prometheus.Registerer) {
	observability.SetPipelineHooks(NewPipelineHooks(reg))
	observability.SetCacheHooks(NewCacheHooks(reg))
	observability.SetSourceHooks(NewSourceHooks(reg))
}

// Interface checks.
var (
	_ observability.PipelineHooks = (*PipelineHooks)(nil)
	_ observability.CacheHooks    = (*CacheHooks)(nil)
	_ observability.SourceHooks   = (*SourceHooks)(nil)
)
