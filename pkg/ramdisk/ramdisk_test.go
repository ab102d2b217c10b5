package ramdisk_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/nspcc-dev/scull/pkg/ramdisk"
	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newDisk(t *testing.T, prm ramdisk.Prm, opts ...scull.Option) (*ramdisk.Disk, *scull.Store) {
	s := scull.New(opts...)
	t.Cleanup(func() {
		require.NoError(t, s.Trim(context.Background()))
	})

	prm.Logger = zaptest.NewLogger(t)

	return ramdisk.New(s, prm), s
}

func pattern(sector uint64, size int) []byte {
	return bytes.Repeat([]byte{byte(sector + 1)}, size)
}

func TestDisk_Defaults(t *testing.T) {
	d, _ := newDisk(t, ramdisk.Prm{})

	require.EqualValues(t, ramdisk.DefaultSectorSize, d.SectorSize())
	require.EqualValues(t, ramdisk.DefaultSectors, d.Sectors())
	require.EqualValues(t, 512*1024, d.Size())
}

func TestDisk_Sectors(t *testing.T) {
	ctx := context.Background()
	d, s := newDisk(t, ramdisk.Prm{SectorSize: 512, Sectors: 64})

	// sectors cross quantum boundaries of the default geometry
	for _, sector := range []uint64{0, 7, 8, 63} {
		require.NoError(t, d.WriteSectors(ctx, sector, pattern(sector, 512)))
	}

	for _, sector := range []uint64{0, 7, 8, 63} {
		buf := make([]byte, 512)
		require.NoError(t, d.ReadSectors(ctx, sector, buf))
		require.Equal(t, pattern(sector, 512), buf)
	}

	t.Run("multiple sectors", func(t *testing.T) {
		buf := make([]byte, 3*512)
		require.NoError(t, d.ReadSectors(ctx, 6, buf))

		require.Equal(t, make([]byte, 512), buf[:512])
		require.Equal(t, pattern(7, 512), buf[512:1024])
		require.Equal(t, pattern(8, 512), buf[1024:])
	})

	t.Run("unwritten", func(t *testing.T) {
		buf := bytes.Repeat([]byte{0xff}, 512)
		require.NoError(t, d.ReadSectors(ctx, 30, buf))
		require.Equal(t, make([]byte, 512), buf)
	})

	info, err := s.Info(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 64*512, info.Tail)
}

func TestDisk_Empty(t *testing.T) {
	d, _ := newDisk(t, ramdisk.Prm{Sectors: 4})

	buf := bytes.Repeat([]byte{0xff}, 4*512)
	require.NoError(t, d.ReadSectors(context.Background(), 0, buf))
	require.Equal(t, make([]byte, len(buf)), buf)
}

func TestDisk_Holes(t *testing.T) {
	ctx := context.Background()
	d, _ := newDisk(t, ramdisk.Prm{SectorSize: 4, Sectors: 16},
		scull.WithGeometry(scull.Geometry{QuantumSize: 4, QuantaPerSet: 2}))

	require.NoError(t, d.WriteSectors(ctx, 9, []byte("abcd")))

	buf := bytes.Repeat([]byte{0xff}, 16*4)
	require.NoError(t, d.ReadSectors(ctx, 0, buf))

	exp := make([]byte, 16*4)
	copy(exp[36:], "abcd")
	require.Equal(t, exp, buf)
}

func TestDisk_InvalidRequests(t *testing.T) {
	ctx := context.Background()
	d, _ := newDisk(t, ramdisk.Prm{SectorSize: 512, Sectors: 8})

	require.ErrorIs(t, d.WriteSectors(ctx, 0, make([]byte, 100)), ramdisk.ErrUnaligned)
	require.ErrorIs(t, d.ReadSectors(ctx, 0, make([]byte, 513)), ramdisk.ErrUnaligned)

	require.ErrorIs(t, d.WriteSectors(ctx, 8, make([]byte, 512)), ramdisk.ErrBeyondEnd)
	require.ErrorIs(t, d.ReadSectors(ctx, 7, make([]byte, 1024)), ramdisk.ErrBeyondEnd)
	require.ErrorIs(t, d.ReadSectors(ctx, 1<<63, make([]byte, 512)), ramdisk.ErrBeyondEnd)

	require.NoError(t, d.ReadSectors(ctx, 8, nil))
	require.NoError(t, d.WriteSectors(ctx, 7, make([]byte, 512)))
}

func TestDisk_Interrupted(t *testing.T) {
	d, _ := newDisk(t, ramdisk.Prm{Sectors: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, d.WriteSectors(ctx, 0, make([]byte, 512)), scull.ErrInterrupted)
	require.ErrorIs(t, d.ReadSectors(ctx, 0, make([]byte, 512)), scull.ErrInterrupted)
}

func TestDisk_ReaderWriterAt(t *testing.T) {
	d, _ := newDisk(t, ramdisk.Prm{SectorSize: 512, Sectors: 16})

	data := []byte("not aligned at all")

	n, err := d.WriteAt(data, 4090)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	got := make([]byte, len(data)+4)
	n, err = d.ReadAt(got, 4088)
	require.NoError(t, err)
	require.Equal(t, len(got), n)
	require.Equal(t, append([]byte{0, 0}, append(data, 0, 0)...), got)

	t.Run("section reader", func(t *testing.T) {
		all, err := io.ReadAll(io.NewSectionReader(d, 0, d.Size()))
		require.NoError(t, err)
		require.Len(t, all, int(d.Size()))
		require.Equal(t, data, all[4090:4090+len(data)])
	})

	t.Run("tail", func(t *testing.T) {
		buf := make([]byte, 10)
		n, err := d.ReadAt(buf, d.Size()-4)
		require.ErrorIs(t, err, io.EOF)
		require.Equal(t, 4, n)

		_, err = d.ReadAt(buf, d.Size())
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := d.ReadAt(make([]byte, 1), -1)
		require.ErrorIs(t, err, scull.ErrInvalidArgument)

		_, err = d.WriteAt(make([]byte, 1), -1)
		require.ErrorIs(t, err, scull.ErrInvalidArgument)

		_, err = d.WriteAt(make([]byte, 10), d.Size()-4)
		require.ErrorIs(t, err, ramdisk.ErrBeyondEnd)
	})
}
