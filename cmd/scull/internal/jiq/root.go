package jiq

import (
	"bytes"
	"context"
	"fmt"
	"time"

	deferredconfig "github.com/nspcc-dev/scull/cmd/scull/config/deferred"
	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/nspcc-dev/scull/pkg/deferred"
	"github.com/nspcc-dev/scull/pkg/util"
	"github.com/nspcc-dev/scull/pkg/util/grace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	flagMode  = "mode"
	flagLimit = "limit"
	flagDelay = "delay"
)

// limitDefault keeps the report within a single page.
const limitDefault = 4096 - 128

// Root is the jiq command.
var Root = &cobra.Command{
	Use:   "jiq",
	Short: "Deferred work timeline",
	Long: `Repeatedly defer a callback which appends a timeline line to the report until
the report reaches the limit, then print it. Modes:
  work    - callback is submitted to the worker pool right away
  delayed - callback is submitted to the worker pool after the delay
  timer   - callback runs on timer expiration
  tasklet - callback runs in a dedicated goroutine right away`,
	Args: cobra.NoArgs,
	RunE: jiqFunc,
}

func init() {
	Root.Flags().String(flagMode, deferred.ModeWork.String(), "Deferral mode (work, delayed, timer, tasklet)")
	Root.Flags().Int(flagLimit, limitDefault, "Report size limit in bytes")
	Root.Flags().Duration(flagDelay, 0, "Delay of delayed and timer modes, taken from config if not set")
}

func jiqFunc(cmd *cobra.Command, _ []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := common.NewLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	modeStr, _ := cmd.Flags().GetString(flagMode)

	mode, err := deferred.ParseMode(modeStr)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt(flagLimit)

	delay, _ := cmd.Flags().GetDuration(flagDelay)
	if delay <= 0 {
		delay = deferredconfig.Delay(c)
	}

	pool, err := util.NewPool(deferredconfig.Workers(c))
	if err != nil {
		return err
	}
	defer pool.Release()

	q := deferred.New(pool, deferred.WithLogger(log))
	defer q.Close()

	ctx := grace.NewGracefulContext(log)

	log.Debug("starting deferred timeline",
		zap.Stringer("mode", mode),
		zap.Duration("delay", delay),
		zap.Int("limit", limit),
	)

	report, err := timeline(ctx, q, mode, delay, limit)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(report)

	return err
}

// timeline collects lines produced by repeated callback until the report
// exceeds limit.
func timeline(ctx context.Context, q *deferred.Queue, mode deferred.Mode, delay time.Duration, limit int) ([]byte, error) {
	var (
		buf   bytes.Buffer
		start = time.Now()
		prev  = start
	)

	fmt.Fprintf(&buf, "%10s %10s %8s\n", "time(us)", "delta(us)", "mode")

	done := q.Repeat(ctx, mode, delay, func() bool {
		now := time.Now()
		fmt.Fprintf(&buf, "%10d %10d %8s\n", now.Sub(start).Microseconds(), now.Sub(prev).Microseconds(), mode)
		prev = now

		return buf.Len() <= limit
	})

	if err := done.Wait(ctx); err != nil {
		return nil, err
	}

	// completion also happens on cancellation, the report is incomplete then
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", deferred.ErrInterrupted, err)
	}

	return buf.Bytes(), nil
}
