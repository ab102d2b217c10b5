package common

import (
	"io"
	"strconv"

	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/olekukonko/tablewriter"
)

// PrintInfo renders store statistics as a table.
func PrintInfo(w io.Writer, infos ...scull.Info) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Store", "Geometry", "Tail", "Sets", "Arrays", "Quanta", "Reserved"})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, i := range infos {
		tbl.Append([]string{
			i.ID,
			i.Geometry.String(),
			strconv.FormatUint(i.Tail, 10),
			strconv.FormatUint(i.Sets, 10),
			strconv.FormatUint(i.Arrays, 10),
			strconv.FormatUint(i.Quanta, 10),
			strconv.FormatUint(i.Reserved, 10),
		})
	}

	tbl.Render()
}
