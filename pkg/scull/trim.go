package scull

import (
	"context"
	"time"

	storagelog "github.com/nspcc-dev/scull/pkg/scull/internal/log"
	"go.uber.org/zap"
)

// Trim releases all the data held by the store and restores the default
// geometry. Trimming an empty store is a no-op.
//
// Returns ErrInterrupted if ctx is done before the store is acquired.
func (s *Store) Trim(ctx context.Context) error {
	if err := s.lock(ctx, "TRIM"); err != nil {
		return err
	}
	defer s.unlock()

	start := time.Now()
	sets, quanta := len(s.sets), s.quanta
	s.trim()
	s.metrics.AddTrimDuration(time.Since(start))
	s.updateGauges()

	storagelog.Write(s.log,
		storagelog.OpField("TRIM"),
		zap.Int("sets", sets),
		zap.Uint64("quanta", quanta),
	)

	return nil
}

// trim frees quanta, then the slot array, then the set itself, for every
// set in order.
//
// s.guard must be taken.
func (s *Store) trim() {
	g := s.geometry

	for i := range s.sets {
		set := &s.sets[i]

		for j := range set.quanta {
			if set.quanta[j] != nil {
				set.quanta[j] = nil
				s.mem.release(g.QuantumSize)
			}
		}

		if set.quanta != nil {
			set.quanta = nil
			s.mem.release(g.QuantaPerSet * slotOverhead)
		}

		s.mem.release(setOverhead)
	}

	s.sets = nil
	s.arrays = 0
	s.quanta = 0
	s.tail = 0
	s.geometry = s.defaultGeometry
}
