package ramdiskconfig

import (
	"github.com/nspcc-dev/scull/cmd/scull/config"
	"github.com/nspcc-dev/scull/pkg/ramdisk"
)

const (
	subsection = "ramdisk"

	// SectorSizeDefault is a default sector size in bytes.
	SectorSizeDefault = ramdisk.DefaultSectorSize

	// SectorsDefault is a default disk capacity in sectors.
	SectorsDefault = ramdisk.DefaultSectors
)

// SectorSize returns the value of "sector_size" config parameter
// from "ramdisk" section.
//
// Returns SectorSizeDefault if the value is not a positive size.
func SectorSize(c *config.Config) uint64 {
	v := config.SizeInBytesSafe(c.Sub(subsection), "sector_size")
	if v > 0 {
		return v
	}

	return SectorSizeDefault
}

// Sectors returns the value of "sectors" config parameter
// from "ramdisk" section.
//
// Returns SectorsDefault if the value is not a positive number.
func Sectors(c *config.Config) uint64 {
	v := config.UintSafe(c.Sub(subsection), "sectors")
	if v > 0 {
		return v
	}

	return SectorsDefault
}
