package scull

import "fmt"

const (
	// DefaultQuantumSize is a default size of a single quantum in bytes.
	DefaultQuantumSize = 4000

	// DefaultQuantaPerSet is a default number of quantum slots in a set.
	DefaultQuantaPerSet = 1000

	// MaxQuantumSize is the largest quantum the Store can allocate.
	MaxQuantumSize = 1 << 30

	// MaxQuantaPerSet is the largest number of quantum slots in a set.
	MaxQuantaPerSet = 1 << 24
)

// DefaultGeometry is a geometry the Store uses if none was configured.
var DefaultGeometry = Geometry{
	QuantumSize:  DefaultQuantumSize,
	QuantaPerSet: DefaultQuantaPerSet,
}

// Geometry describes the layout of the store: how many bytes a quantum holds
// and how many quanta a set references.
type Geometry struct {
	QuantumSize  uint64
	QuantaPerSet uint64
}

// SetSize returns number of bytes addressed by one quantum set.
func (g Geometry) SetSize() uint64 {
	return g.QuantumSize * g.QuantaPerSet
}

// Validate checks that both dimensions are positive and do not exceed
// MaxQuantumSize and MaxQuantaPerSet.
func (g Geometry) Validate() error {
	switch {
	case g.QuantumSize == 0:
		return fmt.Errorf("%w: zero quantum size", ErrInvalidArgument)
	case g.QuantaPerSet == 0:
		return fmt.Errorf("%w: zero quanta per set", ErrInvalidArgument)
	case g.QuantumSize > MaxQuantumSize:
		return fmt.Errorf("%w: quantum size %d exceeds %d", ErrInvalidArgument, g.QuantumSize, MaxQuantumSize)
	case g.QuantaPerSet > MaxQuantaPerSet:
		return fmt.Errorf("%w: %d quanta per set exceeds %d", ErrInvalidArgument, g.QuantaPerSet, MaxQuantaPerSet)
	}

	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.QuantaPerSet, g.QuantumSize)
}
