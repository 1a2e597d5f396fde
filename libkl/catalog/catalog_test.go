package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/catalog"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func words(gens ...[]int) []klcells.Word {
	out := make([]klcells.Word, len(gens))
	for i, g := range gens {
		out[i] = klcells.MustWord(g...)
	}
	return out
}

func sampleRecords() []*klcells.CellRecord {
	lc := words([]int{1, 3}, []int{2, 1, 3}, []int{1, 2, 1, 3}, []int{2, 1, 2, 1, 3}, []int{3, 2, 1, 2, 1, 3})
	rec1 := klcells.NewCellRecord("H3", klcells.LeftCell, lc[0], lc)
	rec1.AValue = 2
	rec1.SetIntersection(lc[:1])
	rec1.SetDistInv(lc[0])

	lc2 := words([]int{1, 3, 2}, []int{2, 1, 3, 2})
	rec2 := klcells.NewCellRecord("H3", klcells.LeftCell, lc2[0], lc2)

	rec3 := klcells.NewCellRecord("H4", klcells.TwoSidedCell, klcells.MustWord(1, 3), lc)
	return []*klcells.CellRecord{rec2, rec1, rec3}
}

func TestBasics(t *testing.T) {
	dir, err := os.MkdirTemp("", "junk*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx := klcells.NewCatalogContext()
	opts := klcells.CatalogOpts{
		DbPathName: path.Join(dir, "TestBasics"),
	}
	cat, err := catalog.OpenCatalog(ctx, opts)
	require.NoError(t, err)

	for _, rec := range sampleRecords() {
		require.NoError(t, cat.PutCell(rec))
	}
	require.EqualValues(t, 3, cat.NumCells())

	rec, err := cat.GetCell("H3", klcells.LeftCell, klcells.MustWord(1, 3))
	require.NoError(t, err)
	require.EqualValues(t, 2, rec.AValue)
	require.Len(t, rec.Words(), 5)
	require.Equal(t, "13", rec.DistInvWord().String())
	require.Equal(t, "13", rec.IntersectionWords()[0].String())

	_, err = cat.GetCell("H3", klcells.RightCell, klcells.MustWord(1, 3))
	require.ErrorIs(t, err, klcells.ErrCellNotFound)

	// ShortLex order of seed within a group, whatever the insertion order
	var seeds []string
	require.NoError(t, cat.Select("H3", func(rec *klcells.CellRecord) bool {
		seeds = append(seeds, rec.SeedWord().String())
		return true
	}))
	if diff := cmp.Diff([]string{"13", "132"}, seeds); diff != "" {
		t.Fatalf("seeds (-want +got):\n%s", diff)
	}

	total := 0
	require.NoError(t, cat.Select("", func(rec *klcells.CellRecord) bool {
		total++
		return true
	}))
	require.Equal(t, 3, total)

	total = 0
	require.NoError(t, cat.Select("", func(rec *klcells.CellRecord) bool {
		total++
		return false
	}))
	require.Equal(t, 1, total)

	require.NoError(t, cat.Close())

	// Reopen read-only and check the state survived
	opts.ReadOnly = true
	cat, err = catalog.OpenCatalog(ctx, opts)
	require.NoError(t, err)
	require.True(t, cat.IsReadOnly())
	require.EqualValues(t, 3, cat.NumCells())

	rec, err = cat.GetCell("H4", klcells.TwoSidedCell, klcells.MustWord(1, 3))
	require.NoError(t, err)
	require.Equal(t, klcells.TwoSidedCell, rec.CellSide())
	require.Nil(t, rec.DistInvWord())

	require.ErrorIs(t, cat.PutCell(sampleRecords()[0]), klcells.ErrCatalogReadOnly)

	ctx.Close()
	<-ctx.Done()
}

func TestInMemory(t *testing.T) {
	ctx := klcells.NewCatalogContext()
	defer ctx.Close()

	_, err := catalog.OpenCatalog(ctx, klcells.CatalogOpts{ReadOnly: true})
	require.ErrorIs(t, err, klcells.ErrBadCatalogParam)

	cat, err := catalog.OpenCatalog(ctx, klcells.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	rec := sampleRecords()[1]
	require.NoError(t, cat.PutCell(rec))
	require.NoError(t, cat.PutCell(rec))
	require.EqualValues(t, 1, cat.NumCells())

	// overwriting a cell keeps the count and replaces the record
	rec.SetDistInv(klcells.MustWord(1, 2, 1, 3))
	require.NoError(t, cat.PutCell(rec))
	require.EqualValues(t, 1, cat.NumCells())

	got, err := cat.GetCell("H3", klcells.LeftCell, klcells.MustWord(1, 3))
	require.NoError(t, err)
	if diff := cmp.Diff(rec.Words(), got.Words()); diff != "" {
		t.Fatalf("elements (-want +got):\n%s", diff)
	}

	require.Equal(t, "1213", got.DistInvWord().String())

	bad := klcells.NewCellRecord("", klcells.LeftCell, klcells.MustWord(1), nil)
	require.ErrorIs(t, cat.PutCell(bad), klcells.ErrBadCatalogParam)

	// seeds whose length does not fit the key's length byte are refused
	long := make([]int, 256)
	for i := range long {
		long[i] = 1 + i%2
	}
	bad = klcells.NewCellRecord("I2(inf)", klcells.LeftCell, klcells.MustWord(long...), nil)
	require.ErrorIs(t, cat.PutCell(bad), klcells.ErrBadCatalogParam)
	_, err = cat.GetCell("I2(inf)", klcells.LeftCell, klcells.MustWord(long...))
	require.ErrorIs(t, err, klcells.ErrBadCatalogParam)
	require.EqualValues(t, 1, cat.NumCells())
}
