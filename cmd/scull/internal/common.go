package common

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/scull/cmd/scull/config"
	loggerconfig "github.com/nspcc-dev/scull/cmd/scull/config/logger"
	storeconfig "github.com/nspcc-dev/scull/cmd/scull/config/store"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/nspcc-dev/scull/pkg/scull/device"
	"github.com/nspcc-dev/scull/pkg/util/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	flagConfig      = "config"
	flagConfigShort = "c"
	flagConfigUsage = "Path to the configuration file"
)

// AddConfigFlag adds persistent configuration file flag to the command.
// Repeated calls are no-op.
func AddConfigFlag(cmd *cobra.Command) {
	if cmd.PersistentFlags().Lookup(flagConfig) != nil {
		return
	}

	cmd.PersistentFlags().StringP(flagConfig, flagConfigShort, "", flagConfigUsage)
}

// Errf returns formatted error in errFmt format if err is not nil.
func Errf(errFmt string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(errFmt, err)
}

// ExitOnErr calls exitOnErrCode with code 1.
func ExitOnErr(cmd *cobra.Command, err error) {
	exitOnErrCode(cmd, err, 1)
}

// exitOnErrCode prints error via cmd and calls os.Exit with passed exit code.
// Does nothing if err is nil.
func exitOnErrCode(cmd *cobra.Command, err error, code int) {
	if err != nil {
		cmd.PrintErrln(err)
		os.Exit(code)
	}
}

// ReadConfig reads configuration from the file passed with the config flag.
// Empty configuration is returned if the flag is not set.
func ReadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(flagConfig)

	var opts []config.Option
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	return config.New(config.Prm{}, opts...)
}

// NewLogger creates application logger configured by the logger section.
func NewLogger(c *config.Config) (*zap.Logger, error) {
	var prm logger.Prm

	if err := prm.SetLevelString(loggerconfig.Level(c)); err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	if err := prm.SetEncoding(loggerconfig.Encoding(c)); err != nil {
		return nil, fmt.Errorf("invalid logger encoding: %w", err)
	}

	l, err := logger.NewLogger(&prm)
	if err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}

	return l.Logger, nil
}

// StoreOptions returns options of every store configured by the store
// section.
func StoreOptions(c *config.Config) ([]scull.Option, error) {
	g := storeconfig.Geometry(c)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store geometry %s: %w", g, err)
	}

	return []scull.Option{
		scull.WithGeometry(g),
		scull.WithMemoryLimit(storeconfig.MemoryLimit(c)),
	}, nil
}

// NewRegistry creates devices configured by the store section.
func NewRegistry(c *config.Config, opts ...device.Option) (*device.Registry, error) {
	storeOpts, err := StoreOptions(c)
	if err != nil {
		return nil, err
	}

	return device.NewRegistry(storeconfig.Devices(c),
		append([]device.Option{device.WithStoreOptions(storeOpts...)}, opts...)...,
	), nil
}
