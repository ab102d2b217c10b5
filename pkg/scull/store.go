package scull

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	storagelog "github.com/nspcc-dev/scull/pkg/scull/internal/log"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Store is a sparse segmented byte store. All methods are safe for
// concurrent use, operations are serialized by a single guard.
//
// Store must be created with New.
type Store struct {
	*cfg

	guard *semaphore.Weighted

	// Fields below are accessed under guard only.

	geometry Geometry
	tail     uint64
	sets     []qset
	arrays   uint64
	quanta   uint64
	mem      budget
}

// Info groups the information about the store contents.
type Info struct {
	// ID is the store identifier.
	ID string
	// Geometry is the current geometry.
	Geometry Geometry
	// Tail is the logical length of the store in bytes.
	Tail uint64
	// Sets is the number of allocated quantum sets.
	Sets uint64
	// Arrays is the number of allocated slot arrays.
	Arrays uint64
	// Quanta is the number of allocated quanta.
	Quanta uint64
	// Reserved is the number of bytes accounted against the memory limit.
	Reserved uint64
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	if c.id == "" {
		c.id = uuid.NewString()
	}

	c.log = c.log.With(zap.String("component", "scull"), zap.String("store", c.id))
	c.metrics.SetStoreID(c.id)

	return &Store{
		cfg:      c,
		guard:    semaphore.NewWeighted(1),
		geometry: c.defaultGeometry,
		mem:      budget{limit: c.memLimit},
	}
}

// ID returns the store identifier.
func (s *Store) ID() string {
	return s.id
}

// lock takes the store guard. It fails with ErrInterrupted if ctx is done
// before the guard is taken.
func (s *Store) lock(ctx context.Context, op string) error {
	if ctx.Err() == nil && s.guard.Acquire(ctx, 1) == nil {
		return nil
	}

	s.metrics.IncInterrupted()
	s.log.Debug("operation interrupted while waiting for the store",
		storagelog.OpField(op), zap.Error(ctx.Err()))

	return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
}

func (s *Store) unlock() {
	s.guard.Release(1)
}

// Size returns the logical length of the store in bytes.
func (s *Store) Size(ctx context.Context) (uint64, error) {
	if err := s.lock(ctx, "SIZE"); err != nil {
		return 0, err
	}
	defer s.unlock()

	return s.tail, nil
}

// Geometry returns the current geometry of the store.
func (s *Store) Geometry(ctx context.Context) (Geometry, error) {
	if err := s.lock(ctx, "GEOMETRY"); err != nil {
		return Geometry{}, err
	}
	defer s.unlock()

	return s.geometry, nil
}

// SetGeometry changes the geometry of an empty store. The change lasts until
// the next Trim, which restores the configured default.
//
// Returns ErrNotEmpty if any quantum set is allocated and ErrInvalidArgument
// if g is invalid.
func (s *Store) SetGeometry(ctx context.Context, g Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}

	if err := s.lock(ctx, "SET_GEOMETRY"); err != nil {
		return err
	}
	defer s.unlock()

	if len(s.sets) != 0 {
		return fmt.Errorf("%w: %d sets allocated", ErrNotEmpty, len(s.sets))
	}

	s.log.Info("store geometry changed",
		zap.Stringer("old", s.geometry), zap.Stringer("new", g))
	s.geometry = g

	return nil
}

// Info returns a snapshot of the store state.
func (s *Store) Info(ctx context.Context) (Info, error) {
	if err := s.lock(ctx, "INFO"); err != nil {
		return Info{}, err
	}
	defer s.unlock()

	return Info{
		ID:       s.id,
		Geometry: s.geometry,
		Tail:     s.tail,
		Sets:     uint64(len(s.sets)),
		Arrays:   s.arrays,
		Quanta:   s.quanta,
		Reserved: s.mem.used,
	}, nil
}

func (s *Store) updateGauges() {
	s.metrics.SetTail(s.tail)
	s.metrics.SetSets(uint64(len(s.sets)))
	s.metrics.SetQuanta(s.quanta)
}
