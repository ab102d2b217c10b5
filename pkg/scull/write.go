package scull

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	storagelog "github.com/nspcc-dev/scull/pkg/scull/internal/log"
	"go.uber.org/zap"
)

// Write copies p into the store starting at off and returns the number of
// bytes written.
//
// Write never crosses the end of the quantum containing off, so it may write
// less than len(p); the caller continues from off+n. The logical end of the
// store is advanced to off+n if it was below.
//
// Returns ErrOutOfMemory if the quantum set, its slot array or the quantum
// could not be allocated, ErrInterrupted if ctx is done before the store is
// acquired and ErrInvalidArgument if off+len(p) overflows.
func (s *Store) Write(ctx context.Context, off uint64, p []byte) (int, error) {
	if err := checkRange(off, len(p)); err != nil {
		return 0, err
	}

	if err := s.lock(ctx, "WRITE"); err != nil {
		return 0, err
	}
	defer s.unlock()

	start := time.Now()
	n, err := s.write(off, p)
	s.metrics.AddWriteDuration(time.Since(start))
	s.updateGauges()

	if err != nil {
		if errors.Is(err, ErrOutOfMemory) {
			s.metrics.IncOutOfMemory()
		}

		s.log.Warn("write failed", storagelog.OffsetField(off), zap.Error(err))

		return 0, err
	}

	storagelog.Write(s.log,
		storagelog.OpField("WRITE"),
		storagelog.OffsetField(off),
		storagelog.LengthField(len(p)),
		storagelog.CountField(n),
	)

	return n, nil
}

// s.guard must be taken.
func (s *Store) write(off uint64, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	g := s.geometry
	pos := Locate(off, g)

	set, err := s.follow(pos.Set)
	if err != nil {
		return 0, err
	}

	if set.quanta == nil {
		if err := s.mem.reserve(g.QuantaPerSet * slotOverhead); err != nil {
			return 0, err
		}

		set.quanta = make([][]byte, g.QuantaPerSet)
		s.arrays++
	}

	q := set.quanta[pos.Quantum]
	if q == nil {
		if err := s.mem.reserve(g.QuantumSize); err != nil {
			return 0, err
		}

		q = make([]byte, g.QuantumSize)
		set.quanta[pos.Quantum] = q
		s.quanta++
	}

	n := copy(q[pos.Byte:], p)

	if end := off + uint64(n); end > s.tail {
		s.tail = end
	}

	return n, nil
}

func checkRange(off uint64, n int) error {
	if uint64(n) > math.MaxUint64-off {
		return fmt.Errorf("%w: offset %d with length %d overflows", ErrInvalidArgument, off, n)
	}

	return nil
}
