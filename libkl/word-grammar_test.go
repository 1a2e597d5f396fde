package libkl

import (
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWord(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"1213", "1213"},
		{"1,2,1", "121"},
		{" 1 2 1 3 ", "1213"},
		{"(12)^2 1", "12121"},
		{"(1 (23)^2)^2", "1232312323"},
		{"s10 s11 1", "[10,11,1]"},
		{"[1,10,2]", "[1,10,2]"},
		{"e", "e"},
		{"", "e"},
		{"e 1 e", "1"},
	}
	for _, tc := range cases {
		w, err := ParseWord(tc.in, 12)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.out, w.String(), "parse %q", tc.in)
	}
}

func TestParseWordErrors(t *testing.T) {
	_, err := ParseWord("1203", 0)
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))

	_, err = ParseWord("s0", 0)
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))

	_, err = ParseWord("14", 3)
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))

	_, err = ParseWord("1x2", 0)
	assert.True(t, errors.Is(err, klcells.ErrBadWord))

	_, err = ParseWord("(12", 0)
	assert.True(t, errors.Is(err, klcells.ErrBadWord))

	words, err := ParseWords([]string{"13", "2,1,3"}, 3)
	require.NoError(t, err)
	requireWords(t, wds(13, 213), words)

	_, err = ParseWords([]string{"13", "4"}, 3)
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))

	assert.Equal(t, "1213", MustParseWord("1 2 1 3").String())
	assert.Panics(t, func() { MustParseWord("x") })
}
