package main

import (
	"os"

	"github.com/nspcc-dev/scull/cmd/internal/cmderr"
	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/nspcc-dev/scull/cmd/scull/internal/disk"
	"github.com/nspcc-dev/scull/cmd/scull/internal/jiq"
	"github.com/nspcc-dev/scull/cmd/scull/internal/locate"
	"github.com/nspcc-dev/scull/cmd/scull/internal/settings"
	"github.com/nspcc-dev/scull/cmd/scull/internal/stress"
	"github.com/nspcc-dev/scull/misc"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "scull",
	Short: "Sparse segmented memory store",
	Long: `scull keeps byte arrays in volatile memory split into quanta grouped into
quantum sets. The tool exercises stores, devices and the RAM disk built on them.`,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("scull"))

		return nil
	}

	return cmd.Usage()
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	common.AddConfigFlag(command)
	command.AddCommand(
		locate.Root,
		stress.Root,
		disk.Root,
		jiq.Root,
		settings.Root,
	)
}

func main() {
	err := command.Execute()
	cmderr.ExitOnErr(err)
}
