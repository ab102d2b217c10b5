// Package deferred runs callbacks outside of the calling goroutine: on a
// worker pool, on a worker pool after a delay or on timer expiration.
package deferred

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nspcc-dev/scull/pkg/util"
	"go.uber.org/zap"
)

// ErrClosed is returned on scheduling to a closed queue.
var ErrClosed = errors.New("queue is closed")

// Option represents Queue configuration option.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.NewNop(),
	}
}

// WithLogger sets queue logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l
		}
	}
}

// Queue schedules callbacks. It does not own the worker pool, the pool must
// outlive the queue.
type Queue struct {
	*cfg

	pool util.WorkerPool

	mtx    sync.Mutex
	closed bool
	timers map[*time.Timer]struct{}

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates queue running callbacks on the pool.
func New(pool util.WorkerPool, opts ...Option) *Queue {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	c.log = c.log.With(zap.String("component", "deferred queue"))

	return &Queue{
		cfg:     c,
		pool:    pool,
		timers:  make(map[*time.Timer]struct{}),
		closeCh: make(chan struct{}),
	}
}

// Schedule submits fn to the worker pool.
func (q *Queue) Schedule(fn func()) error {
	q.mtx.Lock()
	closed := q.closed
	q.mtx.Unlock()

	if closed {
		return ErrClosed
	}

	if err := q.pool.Submit(fn); err != nil {
		return fmt.Errorf("submit to pool: %w", err)
	}

	return nil
}

// ScheduleDelayed submits fn to the worker pool after d.
func (q *Queue) ScheduleDelayed(d time.Duration, fn func()) error {
	return q.afterFunc(d, func() {
		if err := q.pool.Submit(fn); err != nil {
			q.log.Warn("could not submit delayed work", zap.Error(err))
		}
	})
}

// ScheduleTimer calls fn in its own goroutine after d.
func (q *Queue) ScheduleTimer(d time.Duration, fn func()) error {
	return q.afterFunc(d, fn)
}

// ScheduleTasklet calls fn in its own goroutine right away.
func (q *Queue) ScheduleTasklet(fn func()) error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.closed {
		return ErrClosed
	}

	go fn()

	return nil
}

func (q *Queue) afterFunc(d time.Duration, fn func()) error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.closed {
		return ErrClosed
	}

	var t *time.Timer

	t = time.AfterFunc(d, func() {
		q.mtx.Lock()
		_, pending := q.timers[t]
		delete(q.timers, t)
		q.mtx.Unlock()

		if pending {
			fn()
		}
	})

	q.timers[t] = struct{}{}

	return nil
}

// schedule defers fn according to the mode. Delay is ignored by ModeWork and
// ModeTasklet.
func (q *Queue) schedule(mode Mode, delay time.Duration, fn func()) error {
	switch mode {
	case ModeWork:
		return q.Schedule(fn)
	case ModeDelayed:
		return q.ScheduleDelayed(delay, fn)
	case ModeTimer:
		return q.ScheduleTimer(delay, fn)
	case ModeTasklet:
		return q.ScheduleTasklet(fn)
	default:
		return fmt.Errorf("unknown deferred mode %s", mode)
	}
}

// Repeat defers fn according to the mode again and again while it returns
// true. The returned completion happens when fn returns false, ctx is done,
// the queue is closed or fn could not be scheduled.
//
// Calls of fn never overlap.
func (q *Queue) Repeat(ctx context.Context, mode Mode, delay time.Duration, fn func() bool) *Completion {
	c := NewCompletion()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer c.Complete()

		for {
			res := make(chan bool, 1)

			err := q.schedule(mode, delay, func() { res <- fn() })
			if err != nil {
				q.log.Debug("repeated callback stopped", zap.Stringer("mode", mode), zap.Error(err))
				return
			}

			select {
			case more := <-res:
				if !more {
					return
				}
			case <-ctx.Done():
				return
			case <-q.closeCh:
				return
			}
		}
	}()

	return c
}

// Close stops pending timers and waits for repeated callbacks to finish.
// Work already submitted to the pool is not cancelled.
func (q *Queue) Close() {
	q.mtx.Lock()
	if q.closed {
		q.mtx.Unlock()
		return
	}

	q.closed = true

	for t := range q.timers {
		t.Stop()
	}

	q.timers = nil
	q.mtx.Unlock()

	close(q.closeCh)
	q.wg.Wait()
}
