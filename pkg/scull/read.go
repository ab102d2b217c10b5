package scull

import (
	"context"
	"time"

	storagelog "github.com/nspcc-dev/scull/pkg/scull/internal/log"
	"go.uber.org/zap"
)

// Read copies data starting at off into p and returns the number of bytes
// copied.
//
// Read stops at the logical end of the store and at the end of the quantum
// containing off, so it may return less than len(p); the caller continues
// from off+n. Returns 0 and no error if off is at or past the end.
//
// Returns ErrUnallocated if off lies within a hole, ErrInterrupted if ctx is
// done before the store is acquired and ErrInvalidArgument if off+len(p)
// overflows.
func (s *Store) Read(ctx context.Context, off uint64, p []byte) (int, error) {
	if err := checkRange(off, len(p)); err != nil {
		return 0, err
	}

	if err := s.lock(ctx, "READ"); err != nil {
		return 0, err
	}
	defer s.unlock()

	start := time.Now()
	n, err := s.read(off, p)
	s.metrics.AddReadDuration(time.Since(start))

	if err != nil {
		s.log.Debug("read failed", storagelog.OffsetField(off), zap.Error(err))
		return 0, err
	}

	storagelog.Write(s.log,
		storagelog.OpField("READ"),
		storagelog.OffsetField(off),
		storagelog.LengthField(len(p)),
		storagelog.CountField(n),
	)

	return n, nil
}

// s.guard must be taken.
func (s *Store) read(off uint64, p []byte) (int, error) {
	if off >= s.tail || len(p) == 0 {
		return 0, nil
	}

	n := uint64(len(p))
	if n > s.tail-off {
		n = s.tail - off
	}

	pos := Locate(off, s.geometry)

	q, err := s.lookup(pos)
	if err != nil {
		return 0, err
	}

	if rem := pos.Remaining(s.geometry); n > rem {
		n = rem
	}

	return copy(p[:n], q[pos.Byte:]), nil
}
