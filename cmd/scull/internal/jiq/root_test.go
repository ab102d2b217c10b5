package jiq

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/nspcc-dev/scull/pkg/deferred"
	"github.com/nspcc-dev/scull/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestTimeline(t *testing.T) {
	for _, mode := range []deferred.Mode{deferred.ModeWork, deferred.ModeDelayed, deferred.ModeTimer, deferred.ModeTasklet} {
		t.Run(mode.String(), func(t *testing.T) {
			pool, err := util.NewPool(2)
			require.NoError(t, err)
			t.Cleanup(pool.Release)

			q := deferred.New(pool)
			t.Cleanup(q.Close)

			const limit = 300

			report, err := timeline(context.Background(), q, mode, time.Millisecond, limit)
			require.NoError(t, err)
			require.Greater(t, len(report), limit)

			lines := strings.Split(strings.TrimSpace(string(report)), "\n")
			require.Greater(t, len(lines), 2)
			require.Contains(t, lines[0], "delta(us)")

			for _, l := range lines[1:] {
				require.True(t, strings.HasSuffix(l, mode.String()), l)
			}
		})
	}
}

func TestTimeline_Interrupted(t *testing.T) {
	q := deferred.New(util.NewPseudoWorkerPool())
	t.Cleanup(q.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := timeline(ctx, q, deferred.ModeTimer, time.Hour, 100)
	require.ErrorIs(t, err, deferred.ErrInterrupted)
}

func TestJiq(t *testing.T) {
	var out bytes.Buffer

	common.AddConfigFlag(Root)
	Root.SetOut(&out)
	Root.SetArgs([]string{"--mode", "delayed", "--delay", "1ms", "--limit", "200"})
	t.Cleanup(func() { Root.SetArgs(nil) })

	require.NoError(t, Root.Execute())
	require.Contains(t, out.String(), "delayed")

	out.Reset()
	Root.SetArgs([]string{"--mode", "tasklet", "--limit", "200"})
	require.NoError(t, Root.Execute())
	require.Contains(t, out.String(), "tasklet")

	Root.SetArgs([]string{"--mode", "softirq"})
	require.Error(t, Root.Execute())
}
