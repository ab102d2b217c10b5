package deferredconfig

import (
	"time"

	"github.com/nspcc-dev/scull/cmd/scull/config"
)

const (
	subsection = "deferred"

	// WorkersDefault is a default size of the deferred work pool.
	WorkersDefault = 4

	// DelayDefault is a default delay of delayed and timer callbacks.
	DelayDefault = 10 * time.Millisecond
)

// Workers returns the value of "workers" config parameter
// from "deferred" section.
//
// Returns WorkersDefault if the value is not a positive number.
func Workers(c *config.Config) int {
	v := config.UintSafe(c.Sub(subsection), "workers")
	if v > 0 && v <= 1<<16 {
		return int(v)
	}

	return WorkersDefault
}

// Delay returns the value of "delay" config parameter
// from "deferred" section.
//
// Returns DelayDefault if the value is not positive duration.
func Delay(c *config.Config) time.Duration {
	v := config.DurationSafe(c.Sub(subsection), "delay")
	if v > 0 {
		return v
	}

	return DelayDefault
}
