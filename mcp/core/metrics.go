package core

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "mcp"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Number of tool calls handled, partitioned by tool name.
	ToolCalls metrics.Counter
	// Number of calls rejected by the rate limiter.
	RateLimited metrics.Counter
	// Number of calls served from the response cache.
	CacheHits metrics.Counter
	// Number of calls that missed the cache.
	CacheMisses metrics.Counter
	// Number of calls rejected by server-name validation.
	Blocked metrics.Counter
	// Number of calls answered from the local clock after NTP failed.
	Fallbacks metrics.Counter
	// Time spent acquiring time over the network, in seconds.
	QueryDuration metrics.Histogram
}

// PrometheusMetrics returns Metrics backed by Prometheus collectors,
// partitioned by namespace and optional extra labels.
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		ToolCalls: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "tool_calls",
			Help:      "Number of tool calls handled, partitioned by tool name.",
		}, append(labels, "tool")).With(labelsAndValues...),
		RateLimited: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "rate_limited",
			Help:      "Number of calls rejected by the rate limiter.",
		}, labels).With(labelsAndValues...),
		CacheHits: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "cache_hits",
			Help:      "Number of calls served from the response cache.",
		}, labels).With(labelsAndValues...),
		CacheMisses: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "cache_misses",
			Help:      "Number of calls that missed the cache.",
		}, labels).With(labelsAndValues...),
		Blocked: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "blocked_requests",
			Help:      "Number of calls rejected by server-name validation.",
		}, labels).With(labelsAndValues...),
		Fallbacks: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "local_fallbacks",
			Help:      "Number of calls answered from the local clock after NTP failed.",
		}, labels).With(labelsAndValues...),
		QueryDuration: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "query_duration_seconds",
			Help:      "Time spent acquiring time over the network, in seconds.",
		}, labels).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		ToolCalls:     discard.NewCounter(),
		RateLimited:   discard.NewCounter(),
		CacheHits:     discard.NewCounter(),
		CacheMisses:   discard.NewCounter(),
		Blocked:       discard.NewCounter(),
		Fallbacks:     discard.NewCounter(),
		QueryDuration: discard.NewHistogram(),
	}
}
