// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package mediaendpoint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openhome/ohtopology/core/media"
)

const metricsNamespace = "ohtopology_mediaendpoint"

// Operation names used to label endpoint failures.
const (
	OperationCreate  = "create"
	OperationDestroy = "destroy"
	OperationQuery   = "query"
	OperationRead    = "read"
)

// Metrics records the activity of a Supervisor.
type Metrics interface {
	SessionCreated()
	SessionDestroyed()
	QueryStarted(kind media.QueryKind)
	QueryInstalled(kind media.QueryKind, elapsed time.Duration)
	QueryStale(kind media.QueryKind)
	QuerySuperseded(kind media.QueryKind)
	EndpointFailed(operation string)
	PageRead(items int)
}

// Collector is a prometheus.Collector that collects metrics about media
// endpoint supervisors. It implements Metrics.
type Collector struct {
	sessions        prometheus.Gauge
	queries         *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	staleResults    *prometheus.CounterVec
	supersededQuery *prometheus.CounterVec
	failures        *prometheus.CounterVec
	pages           prometheus.Counter
	items           prometheus.Counter
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "sessions",
				Help:      "The number of open sessions.",
			},
		),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "queries_total",
				Help:      "The number of queries issued, by kind.",
			}, []string{"kind"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "query_duration_seconds",
				Help:      "The time from issuing a query to installing its snapshot.",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			}, []string{"kind"},
		),
		staleResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "stale_results_total",
				Help:      "The number of query results discarded because a newer query was issued.",
			}, []string{"kind"},
		),
		supersededQuery: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "superseded_queries_total",
				Help:      "The number of queries cancelled while in flight.",
			}, []string{"kind"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "endpoint_failures_total",
				Help:      "The number of endpoint calls that failed and were reported as cancelled.",
			}, []string{"operation"},
		),
		pages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "pages_read_total",
				Help:      "The number of pages read from endpoints.",
			},
		),
		items: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "items_read_total",
				Help:      "The number of items read from endpoints.",
			},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.sessions.Describe(ch)
	c.queries.Describe(ch)
	c.queryDuration.Describe(ch)
	c.staleResults.Describe(ch)
	c.supersededQuery.Describe(ch)
	c.failures.Describe(ch)
	c.pages.Describe(ch)
	c.items.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.sessions.Collect(ch)
	c.queries.Collect(ch)
	c.queryDuration.Collect(ch)
	c.staleResults.Collect(ch)
	c.supersededQuery.Collect(ch)
	c.failures.Collect(ch)
	c.pages.Collect(ch)
	c.items.Collect(ch)
}

// SessionCreated is part of Metrics.
func (c *Collector) SessionCreated() {
	c.sessions.Inc()
}

// SessionDestroyed is part of Metrics.
func (c *Collector) SessionDestroyed() {
	c.sessions.Dec()
}

// QueryStarted is part of Metrics.
func (c *Collector) QueryStarted(kind media.QueryKind) {
	c.queries.WithLabelValues(kind.String()).Inc()
}

// QueryInstalled is part of Metrics.
func (c *Collector) QueryInstalled(kind media.QueryKind, elapsed time.Duration) {
	c.queryDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

// QueryStale is part of Metrics.
func (c *Collector) QueryStale(kind media.QueryKind) {
	c.staleResults.WithLabelValues(kind.String()).Inc()
}

// QuerySuperseded is part of Metrics.
func (c *Collector) QuerySuperseded(kind media.QueryKind) {
	c.supersededQuery.WithLabelValues(kind.String()).Inc()
}

// EndpointFailed is part of Metrics.
func (c *Collector) EndpointFailed(operation string) {
	c.failures.WithLabelValues(operation).Inc()
}

// PageRead is part of Metrics.
func (c *Collector) PageRead(items int) {
	c.pages.Inc()
	c.items.Add(float64(items))
}

type noopMetrics struct{}

func (noopMetrics) SessionCreated()                               {}
func (noopMetrics) SessionDestroyed()                             {}
func (noopMetrics) QueryStarted(media.QueryKind)                  {}
func (noopMetrics) QueryInstalled(media.QueryKind, time.Duration) {}
func (noopMetrics) QueryStale(media.QueryKind)                    {}
func (noopMetrics) QuerySuperseded(media.QueryKind)               {}
func (noopMetrics) EndpointFailed(string)                         {}
func (noopMetrics) PageRead(int)                                  {}
