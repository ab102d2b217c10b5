package grace_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/nspcc-dev/scull/pkg/util/grace"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWithSignals(t *testing.T) {
	ctx := grace.WithSignals(context.Background(), zaptest.NewLogger(t), syscall.SIGUSR1)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by signal")
	}
}

func TestWithSignals_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := grace.WithSignals(parent, nil, syscall.SIGUSR2)

	cancel()
	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
