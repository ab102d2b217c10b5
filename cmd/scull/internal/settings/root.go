package settings

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/scull/cmd/scull/config"
	deferredconfig "github.com/nspcc-dev/scull/cmd/scull/config/deferred"
	loggerconfig "github.com/nspcc-dev/scull/cmd/scull/config/logger"
	metricsconfig "github.com/nspcc-dev/scull/cmd/scull/config/metrics"
	pprofconfig "github.com/nspcc-dev/scull/cmd/scull/config/pprof"
	ramdiskconfig "github.com/nspcc-dev/scull/cmd/scull/config/ramdisk"
	storeconfig "github.com/nspcc-dev/scull/cmd/scull/config/store"
	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Root is the config command.
var Root = &cobra.Command{
	Use:   "config",
	Short: "Print effective configuration",
	Long:  `Print configuration with defaults applied to missing values as YAML.`,
	Args:  cobra.NoArgs,
	RunE:  configFunc,
}

type (
	loggerSection struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	}

	storeSection struct {
		QuantumSize uint64 `yaml:"quantum_size"`
		QSetSize    uint64 `yaml:"qset_size"`
		Devices     int    `yaml:"devices"`
		MemoryLimit uint64 `yaml:"memory_limit"`
	}

	ramdiskSection struct {
		SectorSize uint64 `yaml:"sector_size"`
		Sectors    uint64 `yaml:"sectors"`
	}

	deferredSection struct {
		Workers int           `yaml:"workers"`
		Delay   time.Duration `yaml:"delay"`
	}

	serviceSection struct {
		Enabled         bool          `yaml:"enabled"`
		Address         string        `yaml:"address"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	}

	effective struct {
		Logger     loggerSection   `yaml:"logger"`
		Store      storeSection    `yaml:"store"`
		Ramdisk    ramdiskSection  `yaml:"ramdisk"`
		Deferred   deferredSection `yaml:"deferred"`
		Prometheus serviceSection  `yaml:"prometheus"`
		Pprof      serviceSection  `yaml:"pprof"`
	}
)

func read(c *config.Config) effective {
	return effective{
		Logger: loggerSection{
			Level:    loggerconfig.Level(c),
			Encoding: loggerconfig.Encoding(c),
		},
		Store: storeSection{
			QuantumSize: storeconfig.QuantumSize(c),
			QSetSize:    storeconfig.QuantaPerSet(c),
			Devices:     storeconfig.Devices(c),
			MemoryLimit: storeconfig.MemoryLimit(c),
		},
		Ramdisk: ramdiskSection{
			SectorSize: ramdiskconfig.SectorSize(c),
			Sectors:    ramdiskconfig.Sectors(c),
		},
		Deferred: deferredSection{
			Workers: deferredconfig.Workers(c),
			Delay:   deferredconfig.Delay(c),
		},
		Prometheus: serviceSection{
			Enabled:         metricsconfig.Enabled(c),
			Address:         metricsconfig.Address(c),
			ShutdownTimeout: metricsconfig.ShutdownTimeout(c),
		},
		Pprof: serviceSection{
			Enabled:         pprofconfig.Enabled(c),
			Address:         pprofconfig.Address(c),
			ShutdownTimeout: pprofconfig.ShutdownTimeout(c),
		},
	}
}

func configFunc(cmd *cobra.Command, _ []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(read(c))
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
