package config_test

import (
	"testing"
	"time"

	"github.com/nspcc-dev/scull/cmd/scull/config"
	deferredconfig "github.com/nspcc-dev/scull/cmd/scull/config/deferred"
	loggerconfig "github.com/nspcc-dev/scull/cmd/scull/config/logger"
	metricsconfig "github.com/nspcc-dev/scull/cmd/scull/config/metrics"
	pprofconfig "github.com/nspcc-dev/scull/cmd/scull/config/pprof"
	ramdiskconfig "github.com/nspcc-dev/scull/cmd/scull/config/ramdisk"
	storeconfig "github.com/nspcc-dev/scull/cmd/scull/config/store"
	configtest "github.com/nspcc-dev/scull/cmd/scull/config/test"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/stretchr/testify/require"
)

const examplePath = "../../../config/example/scull"

func TestSections_Defaults(t *testing.T) {
	c := configtest.EmptyConfig()

	require.Equal(t, loggerconfig.LevelDefault, loggerconfig.Level(c))
	require.Equal(t, loggerconfig.EncodingDefault, loggerconfig.Encoding(c))

	require.Equal(t, scull.DefaultGeometry, storeconfig.Geometry(c))
	require.Equal(t, storeconfig.DevicesDefault, storeconfig.Devices(c))
	require.Zero(t, storeconfig.MemoryLimit(c))

	require.EqualValues(t, ramdiskconfig.SectorSizeDefault, ramdiskconfig.SectorSize(c))
	require.EqualValues(t, ramdiskconfig.SectorsDefault, ramdiskconfig.Sectors(c))

	require.Equal(t, deferredconfig.WorkersDefault, deferredconfig.Workers(c))
	require.Equal(t, deferredconfig.DelayDefault, deferredconfig.Delay(c))

	require.False(t, metricsconfig.Enabled(c))
	require.Equal(t, metricsconfig.AddressDefault, metricsconfig.Address(c))
	require.Equal(t, metricsconfig.ShutdownTimeoutDefault, metricsconfig.ShutdownTimeout(c))

	require.False(t, pprofconfig.Enabled(c))
	require.Equal(t, pprofconfig.AddressDefault, pprofconfig.Address(c))
	require.Equal(t, pprofconfig.ShutdownTimeoutDefault, pprofconfig.ShutdownTimeout(c))
}

func TestSections_Example(t *testing.T) {
	configtest.ForEachFileType(examplePath, func(c *config.Config) {
		require.Equal(t, "debug", loggerconfig.Level(c))
		require.Equal(t, "json", loggerconfig.Encoding(c))

		require.Equal(t, scull.Geometry{QuantumSize: 4096, QuantaPerSet: 500}, storeconfig.Geometry(c))
		require.Equal(t, 4, storeconfig.Devices(c))
		require.EqualValues(t, 64<<20, storeconfig.MemoryLimit(c))

		require.EqualValues(t, 1024, ramdiskconfig.SectorSize(c))
		require.EqualValues(t, 2048, ramdiskconfig.Sectors(c))

		require.Equal(t, 8, deferredconfig.Workers(c))
		require.Equal(t, 50*time.Millisecond, deferredconfig.Delay(c))

		require.True(t, metricsconfig.Enabled(c))
		require.Equal(t, "localhost:9191", metricsconfig.Address(c))
		require.Equal(t, 15*time.Second, metricsconfig.ShutdownTimeout(c))

		require.True(t, pprofconfig.Enabled(c))
		require.Equal(t, "localhost:6161", pprofconfig.Address(c))
		require.Equal(t, 15*time.Second, pprofconfig.ShutdownTimeout(c))
	})
}

func TestSections_Env(t *testing.T) {
	t.Setenv("SCULL_STORE_QUANTUM_SIZE", "1k")
	t.Setenv("SCULL_STORE_QSET_SIZE", "16")
	t.Setenv("SCULL_LOGGER_LEVEL", "warn")

	c := configtest.EmptyConfig()

	require.Equal(t, scull.Geometry{QuantumSize: 1024, QuantaPerSet: 16}, storeconfig.Geometry(c))
	require.Equal(t, "warn", loggerconfig.Level(c))
}
