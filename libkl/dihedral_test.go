package libkl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnetwoDecompose(t *testing.T) {
	cases := []struct {
		in   uint64
		p, m uint64
	}{
		{123, 12, 3},
		{1231, 121, 3},
		{12321, 12, 321},
		{345, 0, 345},
		{3213, 0, 3213},
		{2121, 2121, 0},
	}
	for _, tc := range cases {
		p, m := OnetwoDecompose(wd(tc.in))
		assert.Equal(t, wd(tc.p).String(), p.String(), "parabolic part of %d", tc.in)
		assert.Equal(t, wd(tc.m).String(), m.String(), "minimal part of %d", tc.in)
	}
}

func TestJustify(t *testing.T) {
	requireWords(t, wds(121, 34, 21, 5), LeftJustify(wd(12314215)))
	requireWords(t, wds(3, 21, 3, 21, 5), LeftJustify(wd(3213251)))
	requireWords(t, wds(12, 345, 121), RightJustify(wd(12314215)))
	requireWords(t, wds(12, 345, 121), RightJustify(wd(12134215)))
	requireWords(t, wds(3, 12, 345, 12), RightJustify(wd(31231452)))
	assert.Empty(t, LeftJustify(wd(0)))
}

func TestDihedralRuns(t *testing.T) {
	requireWords(t, wds(121, 34, 21, 5), DihedralRuns12(wd(12134215)))
	requireWords(t, wds(12, 21), DihedralRuns(wd(1221), 1, 2))
	requireWords(t, wds(345), DihedralRuns12(wd(345)))
	requireWords(t, wds(1, 232, 1), DihedralRuns(wd(12321), 2, 3))
	assert.Empty(t, DihedralRuns12(wd(0)))
}
