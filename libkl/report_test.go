package libkl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestA2Cells(t *testing.T) {
	H3 := newTypeH(t, 3)
	report, err := A2Cells(H3, "H3", wd(31), klcells.DefaultCellOpts)
	require.NoError(t, err)

	assert.Equal(t, "13", report.Seed.String())
	assert.Equal(t, 2, report.AValue)
	assert.Len(t, report.TwoSided, 25)
	require.Len(t, report.LeftCells, 5)
	for i, lc := range report.LeftCells {
		requireWords(t, leftCellsH3[i], lc.Elements)
		requireWords(t, distInvsH3[i:i+1], lc.Intersection)
		assert.Equal(t, distInvsH3[i].String(), lc.DistInv.String())
	}

	recs := report.Records()
	require.Len(t, recs, 5)
	for i, rec := range recs {
		assert.Equal(t, "H3", rec.Group)
		assert.Equal(t, klcells.LeftCell, rec.CellSide())
		assert.EqualValues(t, 2, rec.AValue)
		assert.Equal(t, leftCellsH3[i][0].String(), rec.SeedWord().String())
		assert.Equal(t, distInvsH3[i].String(), rec.DistInvWord().String())
		requireWords(t, leftCellsH3[i], rec.Words())
	}
}

func TestWriteCellReport(t *testing.T) {
	lc := LeftCellReport{
		Elements:     wds(13, 213, 1213),
		Intersection: wds(13),
		DistInv:      wd(13),
	}
	var buf bytes.Buffer
	opts := klcells.DefaultPrintOpts
	opts.Label = "13"
	require.NoError(t, WriteCellReport(&buf, lc, opts))
	assert.Equal(t, "Cell 13: [13, 213, 1213].\nThe intersection: [13].\nThe distinguished involution: 13.\n\n", buf.String())

	buf.Reset()
	opts = klcells.PrintOpts{Label: "7", Digits: true}
	require.NoError(t, WriteCellReport(&buf, LeftCellReport{Elements: wds(1213)}, opts))
	assert.Equal(t, "Cell 7: [1213].\n\n", buf.String())

	lc.Elements = []klcells.Word{klcells.MustWord(1, 10)}
	assert.Error(t, WriteCellReport(&buf, lc, opts))
}

func TestWriteA2Report(t *testing.T) {
	H3 := newTypeH(t, 3)
	report, err := A2Cells(H3, "H3", wd(13), klcells.DefaultCellOpts)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := klcells.DefaultPrintOpts
	opts.Digits = true
	require.NoError(t, WriteA2Report(&buf, report, opts))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "************** H3 *****************\n\n"))
	assert.Contains(t, out, "The 2-sided cell of 13 in H3 has 25 elements.\n")
	assert.Contains(t, out, "The cell consists of 5 left cells.")
	assert.Contains(t, out, "Cell 1: [13, 213, 1213, 21213, 321213].\nThe intersection: [13].\nThe distinguished involution: 13.\n")
	assert.Contains(t, out, "Cell 5: [132123, 2132123, 12132123, 212132123, 3212132123].\n")
	assert.Equal(t, 5, strings.Count(out, "The distinguished involution: "))
}
