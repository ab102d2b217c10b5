package scull

import (
	"go.uber.org/zap"
)

// Option represents Store's constructor option.
type Option func(*cfg)

type cfg struct {
	id string

	log *zap.Logger

	metrics MetricsWriter

	// defaultGeometry is restored on every Trim.
	defaultGeometry Geometry

	// memLimit bounds bytes reserved for sets, slot arrays and quanta.
	// Zero means no limit.
	memLimit uint64
}

func defaultCfg() *cfg {
	return &cfg{
		log:             zap.NewNop(),
		metrics:         noopMetrics{},
		defaultGeometry: DefaultGeometry,
	}
}

// WithID sets the store identifier used in logs and metrics. A random UUID
// is used by default.
func WithID(id string) Option {
	return func(c *cfg) {
		if id != "" {
			c.id = id
		}
	}
}

// WithLogger returns option to specify Store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics returns option to specify a metrics writer. Metrics are not
// collected by default.
func WithMetrics(m MetricsWriter) Option {
	return func(c *cfg) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithGeometry sets the default geometry of the store. Invalid geometry is
// ignored.
func WithGeometry(g Geometry) Option {
	return func(c *cfg) {
		if g.Validate() == nil {
			c.defaultGeometry = g
		}
	}
}

// WithMemoryLimit sets the maximum number of bytes the store may reserve.
// Writes requiring more memory fail with ErrOutOfMemory.
func WithMemoryLimit(sz uint64) Option {
	return func(c *cfg) {
		c.memLimit = sz
	}
}
