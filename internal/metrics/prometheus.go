package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sintef/dlite-go/pkg/logger"
)

// PrometheusMetrics implements Collector using client_golang.
type PrometheusMetrics struct {
	instanceOps      *prometheus.CounterVec
	refcountChanges  *prometheus.CounterVec
	refcountUnderflow *prometheus.CounterVec
	backendLatency   *prometheus.HistogramVec
	registryLookups  *prometheus.CounterVec

	logger logger.Logger
}

// NewPrometheusMetrics creates a new PrometheusMetrics collector.
func NewPrometheusMetrics(logger logger.Logger) *PrometheusMetrics {
	m := &PrometheusMetrics{logger: logger}

	m.instanceOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dlite_instance_operations_total",
			Help: "Total number of instance create/free operations",
		},
		[]string{"op", "entity_uri", "status"},
	)

	m.refcountChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dlite_entity_refcount_changes_total",
			Help: "Total number of entity incref/decref operations",
		},
		[]string{"op", "entity_uri"},
	)

	m.refcountUnderflow = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dlite_entity_refcount_underflow_total",
			Help: "Total number of entity decref calls observed at refcount zero",
		},
		[]string{"entity_uri"},
	)

	m.backendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dlite_backend_operation_duration_seconds",
			Help:    "Duration of storage backend load/save operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op", "status"},
	)

	m.registryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dlite_registry_lookups_total",
			Help: "Total number of storage plugin registry lookups",
		},
		[]string{"name", "found"},
	)

	return m
}

// RecordInstanceOp records an instance lifecycle operation.
func (m *PrometheusMetrics) RecordInstanceOp(op string, entityURI string, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	m.instanceOps.With(prometheus.Labels{"op": op, "entity_uri": entityURI, "status": status}).Inc()
}

// RecordEntityRefcount records an entity refcount change.
func (m *PrometheusMetrics) RecordEntityRefcount(op string, entityURI string, value int) {
	m.refcountChanges.With(prometheus.Labels{"op": op, "entity_uri": entityURI}).Inc()
}

// RecordRefcountUnderflow records a decref observed at refcount zero.
func (m *PrometheusMetrics) RecordRefcountUnderflow(entityURI string) {
	m.refcountUnderflow.With(prometheus.Labels{"entity_uri": entityURI}).Inc()
	m.logger.Warn("entity refcount underflow", logger.String("entity_uri", entityURI))
}

// RecordBackendOperation records the latency of a backend load/save operation.
func (m *PrometheusMetrics) RecordBackendOperation(backend string, op string, duration time.Duration, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	m.backendLatency.With(prometheus.Labels{
		"backend": backend,
		"op":      op,
		"status":  status,
	}).Observe(duration.Seconds())
}

// RecordRegistryLookup records a plugin-registry Get() call.
func (m *PrometheusMetrics) RecordRegistryLookup(name string, found bool) {
	foundStr := "true"
	if !found {
		foundStr = "false"
	}
	m.registryLookups.With(prometheus.Labels{"name": name, "found": foundStr}).Inc()
}
