package disk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	ramdiskconfig "github.com/nspcc-dev/scull/cmd/scull/config/ramdisk"
	common "github.com/nspcc-dev/scull/cmd/scull/internal"
	"github.com/nspcc-dev/scull/pkg/ramdisk"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/nspcc-dev/scull/pkg/util/grace"
	"github.com/nspcc-dev/scull/pkg/util/rand"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const flagCount = "count"

// Root is the disk command.
var Root = &cobra.Command{
	Use:   "disk",
	Short: "RAM disk check",
	Long: `Create a RAM disk, write patterns to random sectors and read them back.
Sectors which were not written must read as zeroes.`,
	Args: cobra.NoArgs,
	RunE: diskFunc,
}

func init() {
	Root.Flags().Int(flagCount, 16, "Number of sectors to write")
}

type sectorResult struct {
	sector uint64
	fill   byte
	ok     bool
}

func diskFunc(cmd *cobra.Command, _ []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := common.NewLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	storeOpts, err := common.StoreOptions(c)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt(flagCount)
	if count <= 0 {
		return errors.New("count must be positive")
	}

	store := scull.New(append(storeOpts, scull.WithID("ramdisk"), scull.WithLogger(log))...)
	defer func() { _ = store.Trim(context.Background()) }()

	d := ramdisk.New(store, ramdisk.Prm{
		SectorSize: ramdiskconfig.SectorSize(c),
		Sectors:    ramdiskconfig.Sectors(c),
		Logger:     log,
	})

	ctx := grace.NewGracefulContext(log)

	results, err := check(ctx, d, pickSectors(d.Sectors(), count))
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(cmd.OutOrStdout())
	tbl.SetHeader([]string{"Sector", "Pattern", "Status"})

	var failed int

	for _, r := range results {
		status := "OK"
		if !r.ok {
			status = "CORRUPTED"
			failed++
		}

		tbl.Append([]string{strconv.FormatUint(r.sector, 10), fmt.Sprintf("0x%02x", r.fill), status})
	}

	tbl.Render()

	info, err := store.Info(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Disk: %d sectors of %d bytes\n", d.Sectors(), d.SectorSize())
	common.PrintInfo(cmd.OutOrStdout(), info)

	if failed > 0 {
		return fmt.Errorf("%d of %d sectors are corrupted", failed, len(results))
	}

	return nil
}

// pickSectors returns up to count distinct random sectors in ascending order.
func pickSectors(total uint64, count int) []uint64 {
	if uint64(count) > total {
		count = int(total)
	}

	seen := make(map[uint64]struct{}, count)
	res := make([]uint64, 0, count)

	for len(res) < count {
		s := rand.Uint64() % total
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		res = append(res, s)
	}

	slices.Sort(res)

	return res
}

// check writes a pattern to every sector, then reads all of them back along
// with the following sector which must be either written or zeroed.
func check(ctx context.Context, d *ramdisk.Disk, sectors []uint64) ([]sectorResult, error) {
	size := int(d.SectorSize())
	written := make(map[uint64]byte, len(sectors))

	for i, s := range sectors {
		fill := byte(i%255 + 1)

		if err := d.WriteSectors(ctx, s, bytes.Repeat([]byte{fill}, size)); err != nil {
			return nil, fmt.Errorf("write sector %d: %w", s, err)
		}

		written[s] = fill
	}

	res := make([]sectorResult, 0, len(sectors))
	buf := make([]byte, size)

	for _, s := range sectors {
		if err := d.ReadSectors(ctx, s, buf); err != nil {
			return nil, fmt.Errorf("read sector %d: %w", s, err)
		}

		fill := written[s]
		ok := bytes.Equal(buf, bytes.Repeat([]byte{fill}, size))

		if next := s + 1; ok && next < d.Sectors() {
			if err := d.ReadSectors(ctx, next, buf); err != nil {
				return nil, fmt.Errorf("read sector %d: %w", next, err)
			}

			ok = bytes.Equal(buf, bytes.Repeat([]byte{written[next]}, size))
		}

		res = append(res, sectorResult{sector: s, fill: fill, ok: ok})
	}

	return res, nil
}
