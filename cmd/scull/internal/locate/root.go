package locate

import (
	"fmt"
	"strconv"

	storeconfig "github.com/nspcc-dev/scull/cmd/scull/config/store"
	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Root is the locate command.
var Root = &cobra.Command{
	Use:   "locate <offset>...",
	Short: "Translate offsets",
	Long: `Translate byte offsets into quantum set, quantum and byte positions.
Geometry is taken from the configuration unless overridden by flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: locateFunc,
}

func init() {
	common.AddGeometryFlags(Root.Flags())
}

func locateFunc(cmd *cobra.Command, args []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	g := common.ApplyGeometryFlags(cmd.Flags(), storeconfig.Geometry(c))

	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid geometry %s: %w", g, err)
	}

	tbl := tablewriter.NewWriter(cmd.OutOrStdout())
	tbl.SetHeader([]string{"Offset", "Set", "Quantum", "Byte", "Remaining"})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, arg := range args {
		off, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", arg, err)
		}

		pos := scull.Locate(off, g)

		tbl.Append([]string{
			arg,
			strconv.FormatUint(pos.Set, 10),
			strconv.FormatUint(pos.Quantum, 10),
			strconv.FormatUint(pos.Byte, 10),
			strconv.FormatUint(pos.Remaining(g), 10),
		})
	}

	cmd.Printf("Geometry: %s\n", g)
	tbl.Render()

	return nil
}
