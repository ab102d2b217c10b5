// Package ramdisk implements a fixed-size sector-addressed disk kept in a
// scull store.
package ramdisk

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nspcc-dev/scull/pkg/scull"
	"go.uber.org/zap"
)

// Default disk parameters.
const (
	DefaultSectorSize = 512
	DefaultSectors    = 1024
)

var (
	// ErrUnaligned is returned for buffers which are not a multiple of the
	// sector size.
	ErrUnaligned = errors.New("buffer is not aligned to sector size")

	// ErrBeyondEnd is returned for transfers ending past the disk capacity.
	ErrBeyondEnd = errors.New("transfer beyond end of disk")
)

// Prm groups disk parameters. Zero fields are replaced with defaults.
type Prm struct {
	SectorSize uint64
	Sectors    uint64
	Logger     *zap.Logger
}

// Disk is a RAM disk. Sectors never written read as zeroes.
type Disk struct {
	store *scull.Store
	log   *zap.Logger

	sectorSize uint64
	sectors    uint64
}

var (
	_ io.ReaderAt = (*Disk)(nil)
	_ io.WriterAt = (*Disk)(nil)
)

// New creates disk on top of the store. The store is expected to be used by
// the disk only.
func New(store *scull.Store, prm Prm) *Disk {
	if prm.SectorSize == 0 {
		prm.SectorSize = DefaultSectorSize
	}

	if prm.Sectors == 0 {
		prm.Sectors = DefaultSectors
	}

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	return &Disk{
		store:      store,
		log:        prm.Logger.With(zap.String("component", "ramdisk"), zap.String("store", store.ID())),
		sectorSize: prm.SectorSize,
		sectors:    prm.Sectors,
	}
}

// SectorSize returns size of a single sector in bytes.
func (d *Disk) SectorSize() uint64 {
	return d.sectorSize
}

// Sectors returns disk capacity in sectors.
func (d *Disk) Sectors() uint64 {
	return d.sectors
}

// Size returns disk capacity in bytes.
func (d *Disk) Size() int64 {
	return int64(d.sectorSize * d.sectors)
}

// ReadSectors fills buf with sectors starting from the given one.
func (d *Disk) ReadSectors(ctx context.Context, sector uint64, buf []byte) error {
	off, err := d.transfer(sector, len(buf))
	if err != nil {
		return err
	}

	for done := 0; done < len(buf); {
		n, err := d.store.Read(ctx, off+uint64(done), buf[done:])
		switch {
		case errors.Is(err, scull.ErrUnallocated):
			n, err = d.zeroFill(ctx, off+uint64(done), buf[done:])
			if err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("read sector %d: %w", sector, err)
		case n == 0:
			// past the store tail
			clear(buf[done:])
			n = len(buf) - done
		}

		done += n
	}

	return nil
}

func (d *Disk) zeroFill(ctx context.Context, off uint64, p []byte) (int, error) {
	g, err := d.store.Geometry(ctx)
	if err != nil {
		return 0, fmt.Errorf("read geometry: %w", err)
	}

	n := min(uint64(len(p)), scull.Locate(off, g).Remaining(g))
	clear(p[:n])

	return int(n), nil
}

// WriteSectors writes buf to sectors starting from the given one.
func (d *Disk) WriteSectors(ctx context.Context, sector uint64, buf []byte) error {
	off, err := d.transfer(sector, len(buf))
	if err != nil {
		return err
	}

	for done := 0; done < len(buf); {
		n, err := d.store.Write(ctx, off+uint64(done), buf[done:])
		if err != nil {
			d.log.Debug("sector write failed",
				zap.Uint64("sector", sector),
				zap.Int("done", done),
				zap.Error(err))

			return fmt.Errorf("write sector %d: %w", sector, err)
		}

		done += n
	}

	return nil
}

// transfer checks request and returns its byte offset.
func (d *Disk) transfer(sector uint64, n int) (uint64, error) {
	if uint64(n)%d.sectorSize != 0 {
		return 0, fmt.Errorf("%w: %d bytes, sector is %d", ErrUnaligned, n, d.sectorSize)
	}

	count := uint64(n) / d.sectorSize
	if sector > d.sectors || count > d.sectors-sector {
		return 0, fmt.Errorf("%w: sectors [%d:%d), capacity %d", ErrBeyondEnd, sector, sector+count, d.sectors)
	}

	return sector * d.sectorSize, nil
}

// ReadAt implements io.ReaderAt. Unlike ReadSectors it accepts any offset and
// length inside the disk.
func (d *Disk) ReadAt(p []byte, off int64) (int, error) {
	n, err := d.clampAt(p, off)
	if err != nil {
		return 0, err
	}

	ctx := context.Background()
	uoff := uint64(off)

	for done := 0; done < n; {
		m, err := d.store.Read(ctx, uoff+uint64(done), p[done:n])
		switch {
		case errors.Is(err, scull.ErrUnallocated):
			m, err = d.zeroFill(ctx, uoff+uint64(done), p[done:n])
			if err != nil {
				return done, err
			}
		case err != nil:
			return done, err
		case m == 0:
			clear(p[done:n])
			m = n - done
		}

		done += m
	}

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// WriteAt implements io.WriterAt.
func (d *Disk) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", scull.ErrInvalidArgument, off)
	}

	n := len(p)
	if size := d.Size(); off > size || int64(n) > size-off {
		return 0, fmt.Errorf("%w: %d bytes at %d, size %d", ErrBeyondEnd, n, off, size)
	}

	ctx := context.Background()

	for done := 0; done < n; {
		m, err := d.store.Write(ctx, uint64(off)+uint64(done), p[done:])
		if err != nil {
			return done, err
		}

		done += m
	}

	return n, nil
}

// clampAt returns number of bytes of p fitting the disk from off.
func (d *Disk) clampAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", scull.ErrInvalidArgument, off)
	}

	size := d.Size()
	if off >= size {
		if len(p) == 0 {
			return 0, nil
		}

		return 0, io.EOF
	}

	return int(min(int64(len(p)), size-off)), nil
}
