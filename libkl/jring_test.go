package libkl

import (
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// m(1,2) = 4, m(1,3) = 7, m(2,3) = ∞
var jMatrix = klcells.CoxeterMatrix{
	{1, 4, 7},
	{4, 1, klcells.Infinity},
	{7, klcells.Infinity, 1},
}

func TestDihedralProduct(t *testing.T) {
	cases := []struct {
		u, w uint64
		out  string
	}{
		{121, 23, "{}"},
		{121, 1, "{121: 1}"},
		{1, 121, "{121: 1}"},
		{121, 13, "{1213: 1}"},
		{232, 23232, "{232: 1, 23232: 1, 2323232: 1}"},
		{1313, 31313, "{13: 1, 1313: 1}"},
		{12, 21, "{1: 1, 121: 1}"},
		{121, 121, "{1: 1}"},
		{1212, 2121, "{}"},
	}
	for _, tc := range cases {
		prod, err := DihedralProduct(wd(tc.u), wd(tc.w), jMatrix)
		require.NoError(t, err)
		assert.Equal(t, tc.out, prod.String(), "t_%d t_%d", tc.u, tc.w)
	}

	prod, err := DihedralProduct(wd(121), wd(121), coxeter.Dihedral(5))
	require.NoError(t, err)
	assert.Equal(t, "{1: 1, 121: 1}", prod.String())

	_, err = DihedralProduct(wd(0), wd(1), jMatrix)
	assert.True(t, errors.Is(err, klcells.ErrBadWord))
	_, err = DihedralProduct(wd(1), wd(14), jMatrix)
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))
}

func TestDihedralSegments(t *testing.T) {
	requireWords(t, wds(121, 13, 323, 3434, 41), DihedralSegments(wd(1213234341)))
	requireWords(t, wds(1212), DihedralSegments(wd(1212)))
	requireWords(t, wds(1), DihedralSegments(wd(1)))
	requireWords(t, wds(21, 131), DihedralSegments(wd(2131)))
}

func TestLeftMultByDihedral(t *testing.T) {
	prod, err := LeftMultByDihedral(wd(121), wd(131), jMatrix)
	require.NoError(t, err)
	assert.Equal(t, "{12131: 1}", prod.String())

	prod, err = LeftMultByDihedral(wd(1313), wd(3131321), jMatrix)
	require.NoError(t, err)
	assert.Equal(t, "{1321: 1, 131321: 1}", prod.String())

	prod, err = LeftMultByDihedral(wd(12), wd(3131321), jMatrix)
	require.NoError(t, err)
	assert.True(t, prod.IsZero())
}

func TestTBasisProduct(t *testing.T) {
	prod, err := TBasisProduct(wd(1212), wd(21212), coxeter.Dihedral(7))
	require.NoError(t, err)
	assert.Equal(t, "{12: 1, 1212: 1}", prod.String())

	prod, err = TBasisProduct(wd(2131), wd(13), jMatrix)
	require.NoError(t, err)
	assert.Equal(t, "{213: 1, 21313: 1}", prod.String())

	prod, err = TBasisProduct(wd(12), wd(12), jMatrix)
	require.NoError(t, err)
	assert.True(t, prod.IsZero())
}

func TestJProduct(t *testing.T) {
	a := klcells.Term(wd(1212), klcells.LaurentOne)
	a.AddTerm(wd(2).Key(), klcells.Const(3))
	b := klcells.Term(wd(21212), klcells.LaurentOne)

	prod, err := JProduct(a, b, coxeter.Dihedral(7))
	require.NoError(t, err)
	assert.Equal(t, "{12: 1, 1212: 1, 21212: 3}", prod.String())

	_, err = JProduct(klcells.Term(wd(0), klcells.LaurentOne), b, coxeter.Dihedral(7))
	assert.True(t, errors.Is(err, klcells.ErrBadWord))
}
