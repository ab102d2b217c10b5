package stress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb"
	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/nspcc-dev/scull/misc"
	"github.com/nspcc-dev/scull/pkg/metrics"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/nspcc-dev/scull/pkg/scull/device"
	"github.com/nspcc-dev/scull/pkg/util"
	"github.com/nspcc-dev/scull/pkg/util/grace"
	"github.com/nspcc-dev/scull/pkg/util/rand"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	flagWriters  = "writers"
	flagSize     = "size"
	flagChunk    = "chunk"
	flagDevice   = "device"
	flagProgress = "progress"
	flagHold     = "hold"
)

// Root is the stress command.
var Root = &cobra.Command{
	Use:   "stress",
	Short: "Concurrent write and verify",
	Long: `Run concurrent writers over disjoint regions of a device, read the data back
and verify it. Ctrl+C interrupts writers waiting for the device.`,
	Args: cobra.NoArgs,
	RunE: stressFunc,
}

func init() {
	Root.Flags().Int(flagWriters, 16, "Number of concurrent writers")
	Root.Flags().Uint64(flagSize, 64<<10, "Bytes written by every writer")
	Root.Flags().Int(flagChunk, 1000, "Size of a single write call")
	Root.Flags().Int(flagDevice, 0, "Device number")
	Root.Flags().Bool(flagProgress, true, "Show progress bar if output is a terminal")
	Root.Flags().Duration(flagHold, 0, "Keep devices and services alive after verification")
}

type params struct {
	writers int
	size    uint64
	chunk   int
}

// result holds number of bytes written and interrupted writers.
type result struct {
	written     atomic.Uint64
	interrupted atomic.Uint32
}

func stressFunc(cmd *cobra.Command, _ []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := common.NewLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var prm params

	prm.writers, _ = cmd.Flags().GetInt(flagWriters)
	prm.size, _ = cmd.Flags().GetUint64(flagSize)
	prm.chunk, _ = cmd.Flags().GetInt(flagChunk)

	if prm.writers <= 0 || prm.size == 0 || prm.chunk <= 0 {
		return errors.New("writers, size and chunk must be positive")
	}

	devNum, _ := cmd.Flags().GetInt(flagDevice)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, misc.Version)
	m.SetHealth(metrics.StateStarting)

	devices, err := common.NewRegistry(c,
		device.WithLogger(log),
		device.WithMetrics(m.ForStore),
	)
	if err != nil {
		return err
	}

	dev, err := devices.Device(devNum)
	if err != nil {
		return err
	}

	services := common.StartServices(c, log, reg)
	defer services.Stop()

	ctx := grace.NewGracefulContext(log)

	pool, err := util.NewPool(prm.writers)
	if err != nil {
		return err
	}
	defer pool.Release()

	total := uint64(prm.writers) * prm.size

	bar := pb.New64(int64(total))
	bar.Output = cmd.OutOrStdout()
	bar.SetUnits(pb.U_BYTES)

	showProgress, _ := cmd.Flags().GetBool(flagProgress)
	showProgress = showProgress && term.IsTerminal(int(os.Stdout.Fd()))

	m.SetHealth(metrics.StateReady)

	if showProgress {
		bar.Start()
	}

	start := time.Now()

	payloads, res, err := write(ctx, pool, dev, prm, func(n int) { bar.Add(n) })

	if showProgress {
		bar.Finish()
	}

	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	log.Info("writers finished",
		zap.Uint64("written", res.written.Load()),
		zap.Uint32("interrupted", res.interrupted.Load()),
		zap.Stringer("elapsed", elapsed),
	)

	if res.interrupted.Load() == 0 {
		if err := verify(ctx, dev, prm, payloads); err != nil {
			return err
		}

		cmd.Printf("Verified %d bytes written by %d writers in %s\n", total, prm.writers, elapsed)
	} else {
		cmd.Printf("Interrupted %d of %d writers, verification skipped\n", res.interrupted.Load(), prm.writers)
	}

	info, err := dev.Info(context.Background())
	if err != nil {
		return err
	}

	common.PrintInfo(cmd.OutOrStdout(), info)

	if hold, _ := cmd.Flags().GetDuration(flagHold); hold > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(hold):
		}
	}

	m.SetHealth(metrics.StateShuttingDown)

	return devices.Close(context.Background())
}

// write runs writers on the pool. Writer i fills [i*size, (i+1)*size).
func write(ctx context.Context, pool util.WorkerPool, dev *device.Device, prm params, progress func(int)) ([][]byte, *result, error) {
	var (
		wg       sync.WaitGroup
		res      = new(result)
		payloads = make([][]byte, prm.writers)
		errCh    = make(chan error, prm.writers)
	)

	for i := range payloads {
		payloads[i] = rand.Bytes(int(prm.size))
	}

	for i := 0; i < prm.writers; i++ {
		i := i

		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()

			err := writeRegion(ctx, dev, uint64(i)*prm.size, payloads[i], prm.chunk, res, progress)
			switch {
			case errors.Is(err, scull.ErrInterrupted):
				res.interrupted.Inc()
			case err != nil:
				errCh <- fmt.Errorf("writer %d: %w", i, err)
			}
		})
		if err != nil {
			wg.Done()
			return nil, nil, fmt.Errorf("submit writer %d: %w", i, err)
		}
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, nil, err
	}

	return payloads, res, nil
}

func writeRegion(ctx context.Context, dev *device.Device, off uint64, data []byte, chunk int, res *result, progress func(int)) error {
	f, err := dev.Open(ctx, os.O_RDWR)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(int64(off), io.SeekStart); err != nil {
		return err
	}

	for len(data) > 0 {
		n := min(chunk, len(data))

		written, err := f.WriteContext(ctx, data[:n])
		res.written.Add(uint64(written))
		progress(written)

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func verify(ctx context.Context, dev *device.Device, prm params, payloads [][]byte) error {
	f, err := dev.Open(ctx, os.O_RDONLY)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, prm.size)

	for i := range payloads {
		if _, err := f.Seek(int64(uint64(i)*prm.size), io.SeekStart); err != nil {
			return err
		}

		if _, err := io.ReadFull(readerFunc(func(p []byte) (int, error) {
			return f.ReadContext(ctx, p)
		}), buf); err != nil {
			return fmt.Errorf("read region %d: %w", i, err)
		}

		if !bytes.Equal(buf, payloads[i]) {
			return fmt.Errorf("region %d is corrupted", i)
		}
	}

	return nil
}

type readerFunc func([]byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) {
	return f(p)
}
