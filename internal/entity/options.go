package entity

import (
	"github.com/sintef/dlite-go/internal/metrics"
	"github.com/sintef/dlite-go/pkg/logger"
)

// Option configures the optional logger and metrics collector Create
// attaches to the entity it builds.
type Option func(*Entity)

// WithLogger attaches a logger that Create logs each new entity to (at
// debug level) and DecRef logs refcount underflows to (spec.md §7's
// configurable sink).
func WithLogger(log logger.Logger) Option {
	return func(e *Entity) { e.logger = log }
}

// WithMetrics attaches a metrics.Collector that IncRef/DecRef report
// refcount changes and underflows to.
func WithMetrics(m metrics.Collector) Option {
	return func(e *Entity) { e.metrics = m }
}

// resolveLogger returns log, or a discarding logger if none was attached.
func resolveLogger(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.Nop()
	}
	return log
}

// resolveMetrics returns m, or a no-op collector if none was attached.
func resolveMetrics(m metrics.Collector) metrics.Collector {
	if m == nil {
		return &metrics.NoopCollector{}
	}
	return m
}
