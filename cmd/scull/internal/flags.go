package common

import (
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/spf13/pflag"
)

const (
	flagQuantum = "quantum"
	flagQSet    = "qset"
)

// AddGeometryFlags adds flags overriding configured store geometry.
func AddGeometryFlags(fs *pflag.FlagSet) {
	fs.Uint64(flagQuantum, 0, "Quantum size in bytes, taken from config if not set")
	fs.Uint64(flagQSet, 0, "Number of quanta in a set, taken from config if not set")
}

// ApplyGeometryFlags returns g with the fields set by geometry flags
// replaced.
func ApplyGeometryFlags(fs *pflag.FlagSet, g scull.Geometry) scull.Geometry {
	if q, _ := fs.GetUint64(flagQuantum); q > 0 {
		g.QuantumSize = q
	}

	if a, _ := fs.GetUint64(flagQSet); a > 0 {
		g.QuantaPerSet = a
	}

	return g
}
