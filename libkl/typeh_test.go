package libkl

import (
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTypeH(t *testing.T, rank int) *TypeH {
	H, err := NewTypeH(rank)
	require.NoError(t, err)
	return H
}

func newHecke(t *testing.T, typeName string) *HeckeMultiplier {
	grp, err := coxeter.NewGroupFromType(typeName, coxeter.DefaultOpts)
	require.NoError(t, err)
	return NewHeckeMultiplier(grp)
}

func TestTypeHSTimesW(t *testing.T) {
	H := newTypeH(t, 7)
	cases := []struct {
		s   klcells.Generator
		w   uint64
		out string
	}{
		{1, 23, "{123: 1}"},
		{1, 1524, "{1524: v + v^-1}"},
		{3, 251432, "{3524132: 1}"},
		{6, 1472613, "{146213: 1}"},
		{3, 121, "{1321: 1}"},
		{2, 13, "{213: 1}"},
		{3, 212, "{3212: 1}"},
		{1, 213, "{13: 1, 1213: 1}"},
	}
	for _, tc := range cases {
		prod, err := H.STimesW(tc.s, wd(tc.w))
		require.NoError(t, err)
		assert.Equal(t, tc.out, prod.String(), "c_%d c_%d", tc.s, tc.w)
	}
}

func TestTypeHHigherAValueVanishes(t *testing.T) {
	H := newTypeH(t, 3)
	cases := []struct {
		s klcells.Generator
		w uint64
	}{
		{3, 1213},
		{3, 12132},
		{1, 321213},
		{3, 121321},
	}
	for _, tc := range cases {
		prod, err := H.STimesW(tc.s, wd(tc.w))
		require.NoError(t, err)
		assert.True(t, prod.IsZero(), "c_%d c_%d = %v", tc.s, tc.w, prod)
	}
}

func TestTypeHErrors(t *testing.T) {
	_, err := NewTypeH(1)
	assert.True(t, errors.Is(err, klcells.ErrBadCoxeterType))

	H := newTypeH(t, 3)
	_, err = H.STimesW(4, wd(13))
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))

	_, err = H.STimesW(1, wd(232))
	assert.True(t, errors.Is(err, klcells.ErrNotFullyCommutative))

	_, err = H.Canonical(wd(11))
	assert.True(t, errors.Is(err, klcells.ErrNotFullyCommutative))

	canon, err := H.Canonical(wd(1231))
	require.NoError(t, err)
	assert.Equal(t, "1213", canon.String())
}

func TestTypeHExpand(t *testing.T) {
	H := newTypeH(t, 4)
	poly, err := H.Expand(wd(121))
	require.NoError(t, err)
	assert.Equal(t, "{1: -1, 121: 1}", poly.String())

	poly, err = H.Expand(wd(2121))
	require.NoError(t, err)
	assert.Equal(t, "{21: -2, 2121: 1}", poly.String())

	_, err = H.Expand(wd(12121))
	assert.True(t, errors.Is(err, klcells.ErrNotFullyCommutative))
}

// keepA2 keeps the terms of C on fully commutative elements of a-value <= 2, keyed by heap canonical word.
func keepA2(M klcells.CoxeterMatrix, C klcells.Combination) map[string]string {
	out := make(map[string]string)
	for k, c := range C {
		w := k.Word()
		if !IsFullyCommutative(M, w) || AValue(M, w) > 2 {
			continue
		}
		out[CanonicalWord(M, w).String()] = c.String()
	}
	return out
}

// The closed form agrees with the generic Hecke multiplication of H3 modulo a-value > 2.
func TestTypeHAgreesWithHecke(t *testing.T) {
	H := newTypeH(t, 3)
	hm := newHecke(t, "H3")
	M := H.Matrix()

	checked := 0
	for _, n := range fcH3 {
		w := wd(n)
		if AValue(M, w) > 2 {
			continue
		}
		for s := klcells.Generator(1); s <= 3; s++ {
			closed, err := H.STimesW(s, w)
			require.NoError(t, err)
			generic, err := hm.STimesW(s, w)
			require.NoError(t, err)
			if diff := cmp.Diff(keepA2(M, generic), keepA2(M, closed)); diff != "" {
				t.Fatalf("c_%d c_%v (-generic +closed):\n%s", s, w, diff)
			}
			checked++
		}
	}
	assert.Greater(t, checked, 60)
}
