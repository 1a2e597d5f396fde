package libkl

import (
	"sort"
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinguishedInvolution(t *testing.T) {
	H3 := newTypeH(t, 3)
	for i, lc := range leftCellsH3 {
		d, err := CellDistinguishedInvolution(H3, lc)
		require.NoError(t, err)
		assert.Equal(t, distInvsH3[i].String(), d.String())
	}

	H4 := newTypeH(t, 4)
	d, err := DistinguishedInvolution(H4, wds(13, 132413))
	require.NoError(t, err)
	assert.Equal(t, "13", d.String())
}

func TestDistinguishedInvolutionFails(t *testing.T) {
	H3 := newTypeH(t, 3)
	_, err := DistinguishedInvolution(H3, nil)
	assert.True(t, errors.Is(err, klcells.ErrStructuralAssumption))

	// c_13 c_13 and c_2132 c_2132 share nothing
	_, err = DistinguishedInvolution(H3, wds(13, 2132))
	assert.True(t, errors.Is(err, klcells.ErrStructuralAssumption))
}

func TestDistinguishedInvolutionGeneric(t *testing.T) {
	I25 := newHecke(t, "I2(5)")
	d, err := DistinguishedInvolution(I25, wds(1, 121))
	require.NoError(t, err)
	assert.Equal(t, "1", d.String())

	hm := newHecke(t, "H3")
	C, err := TwoSidedCell(hm, wd(13), klcells.DefaultCellOpts)
	require.NoError(t, err)
	require.Len(t, C, 25)
	lcells, err := LeftCellsIn(hm, C, klcells.DefaultCellOpts)
	require.NoError(t, err)
	require.Len(t, lcells, 5)

	var got []string
	for _, lc := range lcells {
		d, err := CellDistinguishedInvolution(hm, lc)
		require.NoError(t, err)
		got = append(got, CanonicalWord(hm.Matrix(), d).String())
	}
	sort.Strings(got)
	want := wordStrings(distInvsH3)
	sort.Strings(want)
	assert.Equal(t, want, got)
}
