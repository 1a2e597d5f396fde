package libkl

import (
	"sort"
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wd(n uint64) klcells.Word {
	w, err := klcells.WordFromDigits(n)
	if err != nil {
		panic(err)
	}
	return w
}

func wds(ns ...uint64) []klcells.Word {
	out := make([]klcells.Word, len(ns))
	for i, n := range ns {
		out[i] = wd(n)
	}
	return out
}

func wordStrings(words []klcells.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}

func requireWords(t *testing.T, want, got []klcells.Word) {
	t.Helper()
	if diff := cmp.Diff(wordStrings(want), wordStrings(got)); diff != "" {
		t.Fatalf("words (-want +got):\n%s", diff)
	}
}

// heap canonical words of the fully commutative elements of H3
var fcH3 = []uint64{
	0, 1, 2, 3, 12, 13, 21, 23, 32, 121, 123, 132, 212, 213, 321, 1212, 1213, 1321, 2121, 2123, 2132, 3212,
	12123, 12132, 13212, 21213, 21321, 32121, 32123, 121321, 132123, 212132, 213212, 321213, 1213212, 2121321,
	2132123, 3212132, 12132123, 21213212, 32121321, 212132123, 321213212, 3212132123,
}

func TestCanonicalWord(t *testing.T) {
	M := coxeter.TypeH(4)
	cases := []struct {
		in, out uint64
	}{
		{1231, 1213},
		{132143, 132413},
		{31, 13},
		{2, 2},
		{0, 0},
		{3121, 1321},
	}
	for _, tc := range cases {
		assert.Equal(t, wd(tc.out).String(), CanonicalWord(M, wd(tc.in)).String(), "canonical %d", tc.in)
	}
}

func TestHeapLevels(t *testing.T) {
	h := NewHeap(coxeter.TypeH(4), wd(132143))
	require.Equal(t, 6, h.Len())
	assert.Equal(t, [][]int{{0, 1}, {2, 4}, {3, 5}}, h.Levels())
	assert.True(t, h.Less(0, 2))
	assert.True(t, h.Less(1, 5))
	assert.False(t, h.Less(0, 1))
	assert.False(t, h.Less(0, 4))
}

func TestAValue(t *testing.T) {
	H3 := coxeter.TypeH(3)
	assert.Equal(t, 0, AValue(H3, wd(0)))
	assert.Equal(t, 1, AValue(H3, wd(1)))
	assert.Equal(t, 1, AValue(H3, wd(121)))
	assert.Equal(t, 1, AValue(H3, wd(1212)))
	assert.Equal(t, 2, AValue(H3, wd(13)))
	assert.Equal(t, 2, AValue(H3, wd(321213)))
	assert.Equal(t, 2, AValue(coxeter.TypeH(4), wd(132413)))
	assert.Equal(t, 3, AValue(coxeter.TypeH(5), wd(135)))
}

func TestFullyCommutative(t *testing.T) {
	M := coxeter.TypeH(3)
	for _, n := range fcH3 {
		assert.True(t, IsFullyCommutative(M, wd(n)), "%d should be fully commutative", n)
	}
	for _, n := range []uint64{11, 232, 12121, 21212, 1232, 323} {
		assert.False(t, IsFullyCommutative(M, wd(n)), "%d should not be fully commutative", n)
	}
	assert.True(t, IsFullyCommutative(coxeter.TypeH(4), wd(132413)))
}

func TestFullyCommutativeH3(t *testing.T) {
	grp, err := coxeter.NewGroupFromType("H3", coxeter.DefaultOpts)
	require.NoError(t, err)
	w0, err := grp.LongestElement()
	require.NoError(t, err)
	all, err := grp.BruhatInterval(w0)
	require.NoError(t, err)
	require.Len(t, all, 120)

	var fc []string
	for _, w := range all {
		if IsFullyCommutative(grp.Matrix(), w) {
			fc = append(fc, CanonicalWord(grp.Matrix(), w).String())
		}
	}
	sort.Strings(fc)

	want := wordStrings(wds(fcH3...))
	sort.Strings(want)
	if diff := cmp.Diff(want, fc); diff != "" {
		t.Fatalf("fully commutative elements of H3 (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(len(fcH3)), FCCardinality(3).Int64())
}

func TestCardinalities(t *testing.T) {
	assert.Equal(t, "9", FCCardinality(2).String())
	assert.Equal(t, "44", FCCardinality(3).String())
	assert.Equal(t, "195", FCCardinality(4).String())
	assert.Equal(t, int64(19), SubregularCardinality(3))
	assert.Equal(t, wds(13), A2Pairs(3))
	requireWords(t, wds(13, 14, 24), A2Pairs(4))
}
