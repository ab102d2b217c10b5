package device

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/scull/pkg/scull"
	"go.uber.org/zap"
)

// ErrNoDevice is returned for device numbers not served by the registry.
var ErrNoDevice = errors.New("no such device")

// Registry is a fixed set of devices created together and released together.
type Registry struct {
	*cfg

	devices []*Device
}

// NewRegistry creates n devices, each backed by its own empty store.
func NewRegistry(n int, opts ...Option) *Registry {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	base := c.log
	c.log = c.log.With(zap.String("component", "scull devices"))

	r := &Registry{
		cfg:     c,
		devices: make([]*Device, n),
	}

	for i := range r.devices {
		name := c.namePrefix + strconv.Itoa(i)

		storeOpts := make([]scull.Option, 0, len(c.storeOpts)+3)
		storeOpts = append(storeOpts, c.storeOpts...)
		storeOpts = append(storeOpts, scull.WithID(name), scull.WithLogger(base))
		if c.metrics != nil {
			storeOpts = append(storeOpts, scull.WithMetrics(c.metrics()))
		}

		r.devices[i] = &Device{
			name:  name,
			minor: i,
			store: scull.New(storeOpts...),
			log:   c.log.With(zap.String("device", name)),
		}
	}

	c.log.Debug("devices registered", zap.Int("count", n))

	return r
}

// Device returns i-th device.
func (r *Registry) Device(i int) (*Device, error) {
	if i < 0 || i >= len(r.devices) {
		return nil, fmt.Errorf("%w: %d", ErrNoDevice, i)
	}

	return r.devices[i], nil
}

// Devices returns all devices in registration order.
func (r *Registry) Devices() []*Device {
	return append([]*Device(nil), r.devices...)
}

// Close trims every store. Devices must not be used after Close.
// Stops at the first store which could not be acquired.
func (r *Registry) Close(ctx context.Context) error {
	for _, d := range r.devices {
		if err := d.store.Trim(ctx); err != nil {
			return fmt.Errorf("release %s: %w", d.name, err)
		}
	}

	r.log.Debug("devices released", zap.Int("count", len(r.devices)))

	return nil
}
