package scull

import "fmt"

// Bytes accounted against the memory limit besides quantum payload.
const (
	setOverhead  = 32
	slotOverhead = 24
)

// maxSets bounds the set index table so that a write far past the tail
// fails instead of exhausting process memory.
const maxSets = 1 << 24

// qset is a quantum set: an index block of quantum slots. Slots are nil
// until written, quanta is nil until the first write into the set.
type qset struct {
	quanta [][]byte
}

// budget tracks memory reserved by a store. It is accessed under the
// store guard only.
type budget struct {
	limit uint64
	used  uint64
}

func (b *budget) reserve(n uint64) error {
	if b.limit != 0 && (n > b.limit || b.used > b.limit-n) {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, n, b.used, b.limit)
	}

	b.used += n

	return nil
}

func (b *budget) release(n uint64) {
	if n > b.used {
		n = b.used
	}

	b.used -= n
}

// follow returns the set with the given index, allocating every missing set
// up to and including it. On failure sets created so far stay attached.
//
// s.guard must be taken.
func (s *Store) follow(n uint64) (*qset, error) {
	if n >= maxSets {
		return nil, fmt.Errorf("%w: set %d is beyond %d sets", ErrOutOfMemory, n, maxSets)
	}

	for uint64(len(s.sets)) <= n {
		if err := s.mem.reserve(setOverhead); err != nil {
			return nil, err
		}

		s.sets = append(s.sets, qset{})
	}

	return &s.sets[n], nil
}

// lookup returns the quantum holding pos without allocating anything.
//
// s.guard must be taken.
func (s *Store) lookup(pos Position) ([]byte, error) {
	if pos.Set >= uint64(len(s.sets)) {
		return nil, fmt.Errorf("%w: set %d is missing", ErrUnallocated, pos.Set)
	}

	set := &s.sets[pos.Set]
	if set.quanta == nil {
		return nil, fmt.Errorf("%w: set %d has no quanta", ErrUnallocated, pos.Set)
	}

	q := set.quanta[pos.Quantum]
	if q == nil {
		return nil, fmt.Errorf("%w: set %d, quantum %d", ErrUnallocated, pos.Set, pos.Quantum)
	}

	return q, nil
}
