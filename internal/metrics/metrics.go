// Package metrics exposes Prometheus metrics for populate runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Batch kinds used as the "kind" label
const (
	KindHistorical = "historical"
	KindRecent     = "recent"
)

// Collector holds the generator metrics on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	ordersGenerated    *prometheus.CounterVec
	ordersPersisted    prometheus.Counter
	calendarRejections prometheus.Counter
	populateDuration   prometheus.Histogram
	populateFailures   *prometheus.CounterVec
}

// NewCollector creates a collector with all metrics registered
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	ordersGenerated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderseed_orders_generated_total",
			Help: "Orders synthesized, by batch kind",
		},
		[]string{"kind"},
	)

	ordersPersisted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orderseed_orders_persisted_total",
			Help: "Orders committed to the store",
		},
	)

	calendarRejections := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orderseed_calendar_rejections_total",
			Help: "Candidate days rejected because the store was closed",
		},
	)

	populateDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orderseed_populate_duration_seconds",
			Help:    "Wall time of complete populate runs",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	populateFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderseed_populate_failures_total",
			Help: "Failed populate runs, by stage",
		},
		[]string{"stage"},
	)

	registry.MustRegister(ordersGenerated, ordersPersisted, calendarRejections, populateDuration, populateFailures)

	return &Collector{
		registry:           registry,
		ordersGenerated:    ordersGenerated,
		ordersPersisted:    ordersPersisted,
		calendarRejections: calendarRejections,
		populateDuration:   populateDuration,
		populateFailures:   populateFailures,
	}
}

// Registry returns the registry the metrics live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordGenerated counts synthesized orders of one batch kind
func (c *Collector) RecordGenerated(kind string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.ordersGenerated.WithLabelValues(kind).Add(float64(n))
}

// RecordPersisted counts committed orders
func (c *Collector) RecordPersisted(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.ordersPersisted.Add(float64(n))
}

// RecordRejections counts closed days skipped by the calendar
func (c *Collector) RecordRejections(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.calendarRejections.Add(float64(n))
}

// RecordPopulate observes the duration of a successful run
func (c *Collector) RecordPopulate(d time.Duration) {
	if c == nil {
		return
	}
	c.populateDuration.Observe(d.Seconds())
}

// RecordFailure counts a failed run at the given stage (fetch, generate, persist)
func (c *Collector) RecordFailure(stage string) {
	if c == nil {
		return
	}
	c.populateFailures.WithLabelValues(stage).Inc()
}
