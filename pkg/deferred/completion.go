package deferred

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInterrupted is returned by Completion.Wait if the context is done
// before the completion.
var ErrInterrupted = errors.New("wait interrupted")

// Completion is a one-shot event. Zero value is not usable, use
// NewCompletion.
type Completion struct {
	once sync.Once
	done chan struct{}
}

// NewCompletion returns incomplete event.
func NewCompletion() *Completion {
	return &Completion{
		done: make(chan struct{}),
	}
}

// Complete marks the event as happened and wakes all waiters. Repeated
// calls are no-op.
func (c *Completion) Complete() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Done returns channel closed on completion.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until completion or until ctx is done.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		// completion wins if both are ready
		select {
		case <-c.done:
			return nil
		default:
		}

		return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}
