package device

import (
	"github.com/nspcc-dev/scull/pkg/scull"
	"go.uber.org/zap"
)

// Option represents Registry configuration option.
type Option func(*cfg)

type cfg struct {
	log        *zap.Logger
	namePrefix string
	storeOpts  []scull.Option
	metrics    func() scull.MetricsWriter
}

func defaultCfg() *cfg {
	return &cfg{
		log:        zap.NewNop(),
		namePrefix: "scull",
	}
}

// WithLogger sets logger passed to the registry and every store.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l
		}
	}
}

// WithNamePrefix sets device name prefix, devices are named prefix0,
// prefix1 and so on.
func WithNamePrefix(p string) Option {
	return func(c *cfg) {
		if p != "" {
			c.namePrefix = p
		}
	}
}

// WithStoreOptions sets options applied to every store of the registry.
func WithStoreOptions(opts ...scull.Option) Option {
	return func(c *cfg) {
		c.storeOpts = append(c.storeOpts, opts...)
	}
}

// WithMetrics sets constructor of the per-store metrics writer.
func WithMetrics(f func() scull.MetricsWriter) Option {
	return func(c *cfg) {
		c.metrics = f
	}
}
