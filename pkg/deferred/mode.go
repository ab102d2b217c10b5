package deferred

import (
	"fmt"
	"strings"
)

// Mode defines the way a callback is deferred.
type Mode uint8

const (
	// ModeWork submits the callback to the worker pool immediately.
	ModeWork Mode = iota
	// ModeDelayed submits the callback to the worker pool after a delay.
	ModeDelayed
	// ModeTimer runs the callback in the timer goroutine after a delay.
	// Such callbacks must not block.
	ModeTimer
	// ModeTasklet runs the callback in a dedicated goroutine immediately,
	// bypassing the worker pool.
	ModeTasklet
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeWork:
		return "work"
	case ModeDelayed:
		return "delayed"
	case ModeTimer:
		return "timer"
	case ModeTasklet:
		return "tasklet"
	default:
		return fmt.Sprintf("UNDEFINED(%d)", uint8(m))
	}
}

// ParseMode returns mode by its string representation.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "work":
		return ModeWork, nil
	case "delayed":
		return ModeDelayed, nil
	case "timer":
		return ModeTimer, nil
	case "tasklet":
		return ModeTasklet, nil
	default:
		return 0, fmt.Errorf("unknown deferred mode %q", s)
	}
}
