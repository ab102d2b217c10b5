package device

import (
	"context"
	"fmt"
	"os"

	"github.com/nspcc-dev/scull/pkg/scull"
	"go.uber.org/zap"
)

// Device is a single named store. Devices are created by a Registry.
type Device struct {
	name  string
	minor int
	store *scull.Store
	log   *zap.Logger
}

// Name returns device name.
func (d *Device) Name() string {
	return d.name
}

// Minor returns device number inside its registry.
func (d *Device) Minor() int {
	return d.minor
}

// Store returns underlying store.
func (d *Device) Store() *scull.Store {
	return d.store
}

// Open returns a new handle positioned at the beginning of the device.
// Opening with os.O_WRONLY access mode discards all device contents.
func (d *Device) Open(ctx context.Context, flag int) (*File, error) {
	if flag&accessModeMask == os.O_WRONLY {
		if err := d.store.Trim(ctx); err != nil {
			return nil, fmt.Errorf("truncate %s: %w", d.name, err)
		}

		d.log.Debug("device truncated on open")
	}

	return &File{
		dev:  d,
		flag: flag,
	}, nil
}

// accessModeMask selects the access mode bits of the open flags.
const accessModeMask = os.O_RDONLY | os.O_WRONLY | os.O_RDWR

// Geometry returns current geometry of the device store.
func (d *Device) Geometry(ctx context.Context) (scull.Geometry, error) {
	return d.store.Geometry(ctx)
}

// SetGeometry changes geometry of the empty device store.
func (d *Device) SetGeometry(ctx context.Context, g scull.Geometry) error {
	return d.store.SetGeometry(ctx, g)
}

// Reset discards device contents and restores default geometry.
func (d *Device) Reset(ctx context.Context) error {
	return d.store.Trim(ctx)
}

// Info returns device store statistics.
func (d *Device) Info(ctx context.Context) (scull.Info, error) {
	return d.store.Info(ctx)
}
