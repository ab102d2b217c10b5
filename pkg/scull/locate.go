package scull

// Position is a location of a byte within the store.
type Position struct {
	// Set is an index of the quantum set.
	Set uint64
	// Quantum is an index of the quantum within the set.
	Quantum uint64
	// Byte is an offset within the quantum.
	Byte uint64
}

// Locate translates byte offset into a Position for the given geometry.
// Geometry must be valid.
func Locate(off uint64, g Geometry) Position {
	setSize := g.SetSize()
	rem := off % setSize

	return Position{
		Set:     off / setSize,
		Quantum: rem / g.QuantumSize,
		Byte:    rem % g.QuantumSize,
	}
}

// Remaining returns number of bytes from the position to the end of its
// quantum.
func (p Position) Remaining(g Geometry) uint64 {
	return g.QuantumSize - p.Byte
}

// Offset returns the byte offset the position was located from.
func (p Position) Offset(g Geometry) uint64 {
	return p.Set*g.SetSize() + p.Quantum*g.QuantumSize + p.Byte
}
