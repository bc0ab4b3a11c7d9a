package metrics

import (
	"time"

	"github.com/sintef/dlite-go/pkg/logger"
)

// Collector provides an interface for metrics collection across the
// instance/entity lifecycle, storage backends and the plugin registry.
type Collector interface {
	// RecordInstanceOp records an instance lifecycle operation ("create", "free").
	RecordInstanceOp(op string, entityURI string, success bool)

	// RecordEntityRefcount records an entity refcount change ("incref", "decref").
	RecordEntityRefcount(op string, entityURI string, value int)

	// RecordRefcountUnderflow records an attempt to decref an entity below zero.
	RecordRefcountUnderflow(entityURI string)

	// RecordBackendOperation records the latency of a backend load/save operation.
	RecordBackendOperation(backend string, op string, duration time.Duration, success bool)

	// RecordRegistryLookup records a plugin-registry Get() call.
	RecordRegistryLookup(name string, found bool)
}

// NewCollector creates a new metrics collector for the named implementation.
func NewCollector(impl string, logger logger.Logger) Collector {
	switch impl {
	case "prometheus":
		return NewPrometheusMetrics(logger)
	default:
		return &NoopCollector{}
	}
}

// NoopCollector is a no-operation metrics collector, used when metrics are
// disabled or as the zero value before a real collector is wired in.
type NoopCollector struct{}

// RecordInstanceOp is a no-op implementation.
func (n *NoopCollector) RecordInstanceOp(op string, entityURI string, success bool) {}

// RecordEntityRefcount is a no-op implementation.
func (n *NoopCollector) RecordEntityRefcount(op string, entityURI string, value int) {}

// RecordRefcountUnderflow is a no-op implementation.
func (n *NoopCollector) RecordRefcountUnderflow(entityURI string) {}

// RecordBackendOperation is a no-op implementation.
func (n *NoopCollector) RecordBackendOperation(backend, op string, d time.Duration, ok bool) {}

// RecordRegistryLookup is a no-op implementation.
func (n *NoopCollector) RecordRegistryLookup(name string, found bool) {}
