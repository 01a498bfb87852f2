// Package metrics exposes Prometheus collectors for the HTTP API and the
// storage layer.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garrettladley/weightrack/internal/storage"
)

const namespace = "weightrack"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	edits        *prometheus.CounterVec
}

// New registers every collector on a fresh registry, plus the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Key-value store operations by driver, operation and result.",
		}, []string{"driver", "op", "result"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Key-value store latency by driver and operation.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"driver", "op"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "edits_total",
			Help:      "Successful tracker edits by operation.",
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.storeOps,
		m.storeLatency,
		m.edits,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route string, method string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Edited implements tracking.Observer.
func (m *Metrics) Edited(op string) {
	m.edits.WithLabelValues(op).Inc()
}

func (m *Metrics) observeStore(driver string, op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, storage.ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.storeOps.WithLabelValues(driver, op, result).Inc()
	m.storeLatency.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
}

var _ storage.Store = (*instrumentedStore)(nil)

type instrumentedStore struct {
	storage.Store
	driver  string
	metrics *Metrics
}

// InstrumentStore wraps s so every Get and Set is counted and timed.
func (m *Metrics) InstrumentStore(s storage.Store, driver storage.Driver) storage.Store {
	return &instrumentedStore{Store: s, driver: driver.String(), metrics: m}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	v, err := s.Store.Get(ctx, key)
	s.metrics.observeStore(s.driver, "get", start, err)
	return v, err
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value string) error {
	start := time.Now()
	err := s.Store.Set(ctx, key, value)
	s.metrics.observeStore(s.driver, "set", start, err)
	return err
}
