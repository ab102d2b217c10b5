// Package logicerr marks errors caused by the caller rather than by the
// state of the storage.
package logicerr

import (
	"errors"
	"fmt"
)

// Error is wrapped into every logical error, so callers can tell a misuse
// apart from a resource failure with errors.Is.
var Error = errors.New("logical error")

// New returns logical error with a provided message.
func New(msg string) error {
	return Wrap(errors.New(msg))
}

// Newf is like New but formats the message.
func Newf(format string, args ...any) error {
	return Wrap(fmt.Errorf(format, args...))
}

// Wrap wraps arbitrary error into a logical one.
func Wrap(err error) error {
	return fmt.Errorf("%w: %w", Error, err)
}
