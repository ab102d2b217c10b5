package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/nspcc-dev/scull/pkg/scull"
)

// ErrAccessMode is returned on attempt to read from a write-only handle or
// to write to a read-only one.
var ErrAccessMode = errors.New("operation is not permitted by access mode")

// File is an open device handle. Each handle has its own position; handles
// of the same device share the data.
//
// Methods without context use context.Background and therefore wait for the
// device as long as needed.
type File struct {
	dev  *Device
	flag int

	mtx    sync.Mutex
	off    uint64
	closed bool
}

var (
	_ io.ReadWriteSeeker = (*File)(nil)
	_ io.Closer          = (*File)(nil)
)

// Name returns name of the opened device.
func (f *File) Name() string {
	return f.dev.name
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	return f.ReadContext(context.Background(), p)
}

// ReadContext reads up to len(p) bytes from the current position. It never
// returns more than the rest of the quantum containing the position.
// Returns io.EOF at the end of the device.
func (f *File) ReadContext(ctx context.Context, p []byte) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if err := f.check(os.O_WRONLY); err != nil {
		return 0, err
	}

	if len(p) == 0 {
		return 0, nil
	}

	n, err := f.dev.store.Read(ctx, f.off, p)
	if errors.Is(err, scull.ErrUnallocated) {
		n, err = f.readHole(ctx, p)
	}
	if err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, io.EOF
	}

	f.off += uint64(n)

	return n, nil
}

func (f *File) readHole(ctx context.Context, p []byte) (int, error) {
	info, err := f.dev.store.Info(ctx)
	if err != nil {
		return 0, err
	}

	if f.off >= info.Tail {
		return 0, nil
	}

	n := min(uint64(len(p)), scull.Locate(f.off, info.Geometry).Remaining(info.Geometry), info.Tail-f.off)
	clear(p[:n])

	return int(n), nil
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	return f.WriteContext(context.Background(), p)
}

// WriteContext writes p at the current position and advances it. Unlike the
// store, WriteContext continues across quanta until all of p is written or
// an error occurs.
func (f *File) WriteContext(ctx context.Context, p []byte) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if err := f.check(os.O_RDONLY); err != nil {
		return 0, err
	}

	var written int

	for written < len(p) {
		n, err := f.dev.store.Write(ctx, f.off, p[written:])
		if err != nil {
			return written, err
		}

		if n == 0 {
			return written, io.ErrShortWrite
		}

		f.off += uint64(n)
		written += n
	}

	return written, nil
}

// Seek implements io.Seeker. io.SeekEnd is relative to the current logical
// end of the device.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return 0, os.ErrClosed
	}

	var base uint64

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = f.off
	case io.SeekEnd:
		size, err := f.dev.store.Size(context.Background())
		if err != nil {
			return 0, err
		}

		base = size
	default:
		return 0, fmt.Errorf("%w: whence %d", scull.ErrInvalidArgument, whence)
	}

	if base > math.MaxInt64 {
		return 0, fmt.Errorf("%w: position %d is not representable", scull.ErrInvalidArgument, base)
	}

	pos := int64(base) + offset
	if (offset > 0 && pos < int64(base)) || pos < 0 {
		return 0, fmt.Errorf("%w: seek to %d%+d", scull.ErrInvalidArgument, base, offset)
	}

	f.off = uint64(pos)

	return pos, nil
}

// Close releases the handle. Device contents are kept.
func (f *File) Close() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return os.ErrClosed
	}

	f.closed = true

	return nil
}

// check returns an error if the handle is closed or opened with the denied
// access mode. f.mtx must be taken.
func (f *File) check(denied int) error {
	if f.closed {
		return os.ErrClosed
	}

	if f.flag&accessModeMask == denied {
		return ErrAccessMode
	}

	return nil
}
