package scull

import (
	"errors"

	"github.com/nspcc-dev/scull/pkg/util/logicerr"
)

var (
	// ErrOutOfMemory is returned when a quantum set, its slot array or a
	// quantum could not be allocated within the memory limit. Everything
	// allocated before the failure stays valid.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrInterrupted is returned when the operation context is done before
	// the store guard was acquired. The store is not changed, the operation
	// may be retried.
	ErrInterrupted = errors.New("interrupted")

	// ErrInvalidArgument is returned for offsets, lengths and geometries
	// outside of the supported domain.
	ErrInvalidArgument = logicerr.New("invalid argument")

	// ErrNotEmpty is returned on attempt to change the geometry of a store
	// holding data.
	ErrNotEmpty = logicerr.New("store is not empty")

	// ErrUnallocated is returned by Read when the offset lies within the
	// written range but no quantum was ever allocated for it, i.e. inside a
	// hole left by a sparse write.
	ErrUnallocated = errors.New("quantum is not allocated")
)
