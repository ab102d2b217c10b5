package storeconfig

import (
	"github.com/nspcc-dev/scull/cmd/scull/config"
	"github.com/nspcc-dev/scull/pkg/scull"
)

const (
	subsection = "store"

	// QuantumSizeDefault is a default quantum size in bytes.
	QuantumSizeDefault = scull.DefaultQuantumSize

	// QuantaPerSetDefault is a default number of quanta in a set.
	QuantaPerSetDefault = scull.DefaultQuantaPerSet

	// DevicesDefault is a default number of devices.
	DevicesDefault = 1
)

// QuantumSize returns the value of "quantum_size" config parameter
// from "store" section.
//
// Returns QuantumSizeDefault if the value is not a positive size.
func QuantumSize(c *config.Config) uint64 {
	v := config.SizeInBytesSafe(c.Sub(subsection), "quantum_size")
	if v > 0 {
		return v
	}

	return QuantumSizeDefault
}

// QuantaPerSet returns the value of "qset_size" config parameter
// from "store" section.
//
// Returns QuantaPerSetDefault if the value is not a positive number.
func QuantaPerSet(c *config.Config) uint64 {
	v := config.UintSafe(c.Sub(subsection), "qset_size")
	if v > 0 {
		return v
	}

	return QuantaPerSetDefault
}

// Geometry returns store geometry composed of QuantumSize and
// QuantaPerSet.
func Geometry(c *config.Config) scull.Geometry {
	return scull.Geometry{
		QuantumSize:  QuantumSize(c),
		QuantaPerSet: QuantaPerSet(c),
	}
}

// Devices returns the value of "devices" config parameter
// from "store" section.
//
// Returns DevicesDefault if the value is not a positive number.
func Devices(c *config.Config) int {
	v := config.UintSafe(c.Sub(subsection), "devices")
	if v > 0 && v <= 1<<10 {
		return int(v)
	}

	return DevicesDefault
}

// MemoryLimit returns the value of "memory_limit" config parameter
// from "store" section.
//
// Returns 0 (no limit) if the value is missing or invalid.
func MemoryLimit(c *config.Config) uint64 {
	return config.SizeInBytesSafe(c.Sub(subsection), "memory_limit")
}
