package grace

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// NewGracefulContext returns grace context that cancelled by sigint,
// sigterm and sighup.
func NewGracefulContext(l *zap.Logger) context.Context {
	return WithSignals(context.Background(), l, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

// WithSignals returns a child of parent cancelled by the first of the given
// signals.
func WithSignals(parent context.Context, l *zap.Logger, sigs ...os.Signal) context.Context {
	if l == nil {
		l = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)

		select {
		case sig := <-ch:
			l.Info("received signal", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}
