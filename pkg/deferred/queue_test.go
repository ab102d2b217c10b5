package deferred_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nspcc-dev/scull/pkg/deferred"
	"github.com/nspcc-dev/scull/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap/zaptest"
)

func newQueue(t *testing.T, workers int) *deferred.Queue {
	pool, err := util.NewPool(workers)
	require.NoError(t, err)

	q := deferred.New(pool, deferred.WithLogger(zaptest.NewLogger(t)))
	t.Cleanup(func() {
		q.Close()
		pool.Release()
	})

	return q
}

func TestQueue_Schedule(t *testing.T) {
	q := newQueue(t, 2)

	var wg sync.WaitGroup
	var calls atomic.Int32

	wg.Add(4)
	require.NoError(t, q.Schedule(func() { calls.Inc(); wg.Done() }))
	require.NoError(t, q.ScheduleDelayed(time.Millisecond, func() { calls.Inc(); wg.Done() }))
	require.NoError(t, q.ScheduleTimer(time.Millisecond, func() { calls.Inc(); wg.Done() }))
	require.NoError(t, q.ScheduleTasklet(func() { calls.Inc(); wg.Done() }))
	wg.Wait()

	require.EqualValues(t, 4, calls.Load())
}

func TestQueue_TaskletBypassesPool(t *testing.T) {
	q := newQueue(t, 1)

	// occupy the only worker until the tasklet has run
	release := make(chan struct{})
	require.NoError(t, q.Schedule(func() { <-release }))

	done := deferred.NewCompletion()
	require.NoError(t, q.ScheduleTasklet(done.Complete))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, done.Wait(ctx))
	close(release)
}

func TestQueue_Delay(t *testing.T) {
	q := newQueue(t, 1)

	const delay = 20 * time.Millisecond

	start := time.Now()
	done := deferred.NewCompletion()

	require.NoError(t, q.ScheduleDelayed(delay, done.Complete))
	require.NoError(t, done.Wait(context.Background()))
	require.GreaterOrEqual(t, time.Since(start), delay)
}

func TestQueue_Close(t *testing.T) {
	pool := util.NewPseudoWorkerPool()
	q := deferred.New(pool)

	var fired atomic.Bool
	require.NoError(t, q.ScheduleTimer(time.Hour, func() { fired.Store(true) }))
	require.NoError(t, q.ScheduleDelayed(time.Hour, func() { fired.Store(true) }))

	q.Close()
	q.Close()

	require.ErrorIs(t, q.Schedule(func() {}), deferred.ErrClosed)
	require.ErrorIs(t, q.ScheduleDelayed(0, func() {}), deferred.ErrClosed)
	require.ErrorIs(t, q.ScheduleTimer(0, func() {}), deferred.ErrClosed)
	require.ErrorIs(t, q.ScheduleTasklet(func() {}), deferred.ErrClosed)
	require.False(t, fired.Load())

	c := q.Repeat(context.Background(), deferred.ModeWork, 0, func() bool { return true })
	require.NoError(t, c.Wait(context.Background()))
}

func TestQueue_Repeat(t *testing.T) {
	for _, mode := range []deferred.Mode{deferred.ModeWork, deferred.ModeDelayed, deferred.ModeTimer, deferred.ModeTasklet} {
		t.Run(mode.String(), func(t *testing.T) {
			// single worker makes sure rescheduling does not wait for itself
			q := newQueue(t, 1)

			var (
				calls   int
				running atomic.Bool
			)

			c := q.Repeat(context.Background(), mode, time.Millisecond, func() bool {
				if running.Swap(true) {
					t.Error("overlapping calls")
				}
				defer running.Store(false)

				calls++
				return calls < 5
			})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			require.NoError(t, c.Wait(ctx))
			require.Equal(t, 5, calls)
		})
	}

	t.Run("cancel", func(t *testing.T) {
		q := newQueue(t, 1)

		ctx, cancel := context.WithCancel(context.Background())

		var calls atomic.Int32
		c := q.Repeat(ctx, deferred.ModeDelayed, time.Millisecond, func() bool {
			if calls.Inc() == 3 {
				cancel()
			}
			return true
		})

		require.NoError(t, c.Wait(context.Background()))
		require.GreaterOrEqual(t, calls.Load(), int32(3))
	})

	t.Run("closed pool", func(t *testing.T) {
		pool := util.NewPseudoWorkerPool()
		pool.Release()

		q := deferred.New(pool)
		defer q.Close()

		c := q.Repeat(context.Background(), deferred.ModeWork, 0, func() bool { return true })
		require.NoError(t, c.Wait(context.Background()))
	})
}
