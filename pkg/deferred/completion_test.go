package deferred_test

import (
	"context"
	"testing"
	"time"

	"github.com/nspcc-dev/scull/pkg/deferred"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	c := deferred.NewCompletion()

	select {
	case <-c.Done():
		t.Fatal("completed before Complete")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.Wait(ctx)
	require.ErrorIs(t, err, deferred.ErrInterrupted)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go c.Complete()
	require.NoError(t, c.Wait(context.Background()))

	require.NotPanics(t, c.Complete)

	t.Run("completed wins over cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, c.Wait(ctx))
	})
}

func TestParseMode(t *testing.T) {
	for _, m := range []deferred.Mode{deferred.ModeWork, deferred.ModeDelayed, deferred.ModeTimer, deferred.ModeTasklet} {
		got, err := deferred.ParseMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	m, err := deferred.ParseMode("TIMER")
	require.NoError(t, err)
	require.Equal(t, deferred.ModeTimer, m)

	_, err = deferred.ParseMode("softirq")
	require.Error(t, err)

	require.Equal(t, "UNDEFINED(42)", deferred.Mode(42).String())
}
