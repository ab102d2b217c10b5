package metrics_test

import (
	"context"
	"testing"

	"github.com/nspcc-dev/scull/pkg/metrics"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStoreMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	m := metrics.New(reg, "test")

	s := scull.New(
		scull.WithID("scull0"),
		scull.WithMetrics(m.ForStore()),
		scull.WithGeometry(scull.Geometry{QuantumSize: 8, QuantaPerSet: 4}),
	)

	_, err := s.Write(ctx, 40, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	require.NoError(t, testutil.GatherAndCompare(reg, expected(`
# HELP scull_store_quanta Number of allocated quanta
# TYPE scull_store_quanta gauge
scull_store_quanta{id="scull0"} 1
# HELP scull_store_sets Number of allocated quantum sets
# TYPE scull_store_sets gauge
scull_store_sets{id="scull0"} 2
# HELP scull_store_tail_bytes Logical length of the store
# TYPE scull_store_tail_bytes gauge
scull_store_tail_bytes{id="scull0"} 44
`), "scull_store_quanta", "scull_store_sets", "scull_store_tail_bytes"))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, s.Trim(cctx), scull.ErrInterrupted)

	require.NoError(t, testutil.GatherAndCompare(reg, expected(`
# HELP scull_store_interrupted_total Number of operations interrupted while waiting for the store
# TYPE scull_store_interrupted_total counter
scull_store_interrupted_total{id="scull0"} 1
`), "scull_store_interrupted_total"))

	n, err := testutil.GatherAndCount(reg, "scull_store_write_time")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg, "test")

	require.Panics(t, func() { metrics.New(reg, "test") })
}

func TestMetrics_State(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "v0.1.0")

	m.SetHealth(metrics.StateReady)

	require.NoError(t, testutil.GatherAndCompare(reg, expected(`
# HELP scull_state_health Current application state
# TYPE scull_state_health gauge
scull_state_health 2
# HELP scull_version Application version
# TYPE scull_version gauge
scull_version{version="v0.1.0"} 1
`), "scull_state_health", "scull_version"))
}
