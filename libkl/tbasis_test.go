package libkl

import (
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tsCasesI25 = []struct {
	s   klcells.Generator
	w   uint64
	out string
}{
	{1, 21, "{1: 1, 21: -v^-1, 121: 1}"},
	{2, 21, "{21: v}"},
	{2, 1212, "{212: 1, 1212: -v^-1, 12121: 1}"},
	{1, 0, "{e: -v^-1, 1: 1}"},
	{1, 12121, "{12121: v}"},
}

func TestDihedralTsTimesCw(t *testing.T) {
	for _, tc := range tsCasesI25 {
		prod, err := DihedralTsTimesCw(5, tc.s, wd(tc.w))
		require.NoError(t, err)
		assert.Equal(t, tc.out, prod.String(), "T_%d c_%d", tc.s, tc.w)
	}

	prod, err := DihedralTsTimesCw(klcells.Infinity, 1, wd(21212))
	require.NoError(t, err)
	assert.Equal(t, "{1212: 1, 21212: -v^-1, 121212: 1}", prod.String())

	_, err = DihedralTsTimesCw(5, 3, wd(1))
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))
	_, err = DihedralTsTimesCw(5, 1, wd(11))
	assert.True(t, errors.Is(err, klcells.ErrBadWord))
	_, err = DihedralTsTimesCw(5, 1, wd(121212))
	assert.True(t, errors.Is(err, klcells.ErrBadWord))
}

func TestTsTimesCwGeneric(t *testing.T) {
	hm := newHecke(t, "I2(5)")
	for _, tc := range tsCasesI25 {
		prod, err := TsTimesCw(hm, tc.s, wd(tc.w))
		require.NoError(t, err)
		assert.Equal(t, tc.out, prod.String(), "T_%d c_%d", tc.s, tc.w)
	}
}

func TestTw0TimesCw(t *testing.T) {
	hm := newHecke(t, "I2(5)")
	w0 := wd(12121)
	cases := []struct {
		w   uint64
		out string
	}{
		{1, "{2121: -1, 12121: v}"},
		{21, "{121: -1, 12121: v^2}"},
	}
	for _, tc := range cases {
		prod, err := DihedralTw0TimesCw(5, wd(tc.w))
		require.NoError(t, err)
		assert.Equal(t, tc.out, prod.String(), "T_w0 c_%d", tc.w)

		prod, err = Tw0TimesCw(hm, w0, wd(tc.w))
		require.NoError(t, err)
		assert.Equal(t, tc.out, prod.String(), "T_w0 c_%d", tc.w)
	}

	prod, err := DihedralTProductTimesCw(5, wd(12), wd(1))
	require.NoError(t, err)
	generic, err := TProductTimesCw(hm, wd(12), wd(1))
	require.NoError(t, err)
	assert.True(t, prod.Equal(generic), "%v != %v", prod, generic)
}

func TestDihedralLeftCells(t *testing.T) {
	cells := DihedralLeftCells(5)
	require.Len(t, cells, 2)
	requireWords(t, wds(1, 21, 121, 2121), cells[0])
	requireWords(t, wds(2, 12, 212, 1212), cells[1])
}

func TestCactusReversesDihedralCells(t *testing.T) {
	for _, m := range []int{4, 5, 6} {
		for _, cell := range DihedralLeftCells(m) {
			for i, x := range cell {
				img, err := DihedralCactusImage(m, cell, x)
				require.NoError(t, err)
				assert.Equal(t, cell[len(cell)-1-i].String(), img.String(), "sigma(%v) in I2(%d)", x, m)
			}
		}
	}

	hm := newHecke(t, "I2(5)")
	cell := DihedralLeftCells(5)[1]
	images, err := CactusMap(hm, wd(12121), cell)
	require.NoError(t, err)
	requireWords(t, wds(1212, 212, 12, 2), images)
}

func TestCBasisIntoTBasis(t *testing.T) {
	grp, err := coxeter.NewGroupFromType("I2(5)", coxeter.DefaultOpts)
	require.NoError(t, err)
	C, err := CBasisIntoTBasis(grp, wd(121))
	require.NoError(t, err)
	assert.Equal(t, "{e: v^-3, 1: v^-2, 2: v^-2, 12: v^-1, 21: v^-1, 121: 1}", C.String())
}
