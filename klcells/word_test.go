package klcells

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigits(t *testing.T) {
	w := MustWord(2, 3, 1)
	n, err := w.Digits()
	require.NoError(t, err)
	assert.Equal(t, uint64(231), n)

	back, err := WordFromDigits(231)
	require.NoError(t, err)
	assert.True(t, back.Equal(w))

	n, err = Identity.Digits()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	e, err := WordFromDigits(0)
	require.NoError(t, err)
	assert.Len(t, e, 0)
}

func TestDigitsUnsupported(t *testing.T) {
	_, err := MustWord(1, 10, 2).Digits()
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))

	_, err = WordFromDigits(103)
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))

	long := make(Word, 20)
	for i := range long {
		long[i] = 1
	}
	_, err = long.Digits()
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestWordString(t *testing.T) {
	assert.Equal(t, "e", Identity.String())
	assert.Equal(t, "1213", MustWord(1, 2, 1, 3).String())
	assert.Equal(t, "[1,12,3]", MustWord(1, 12, 3).String())
}

func TestWordKeyRoundTrip(t *testing.T) {
	w := MustWord(4, 3, 2, 1, 2)
	k := w.Key()
	assert.Equal(t, 5, k.Len())
	assert.True(t, k.Word().Equal(w))
	assert.Equal(t, "43212", k.String())
}

func TestReverseAndRelabel(t *testing.T) {
	w := MustWord(1, 2, 3)
	assert.Equal(t, "321", w.Reverse().String())

	r, err := w.Relabel(4)
	require.NoError(t, err)
	assert.Equal(t, "432", r.String())

	_, err = MustWord(5).Relabel(4)
	assert.True(t, errors.Is(err, ErrBadGenerator))
}

func TestCompareWords(t *testing.T) {
	assert.Less(t, CompareWords(MustWord(3), MustWord(1, 2)), 0)
	assert.Less(t, CompareWords(MustWord(1, 3), MustWord(2, 1)), 0)
	assert.Equal(t, 0, CompareWords(MustWord(2, 1), MustWord(2, 1)))
	assert.Greater(t, CompareKeys(MustWord(1, 2, 1).Key(), MustWord(3, 2).Key()), 0)
	assert.Less(t, WordComparator(MustWord(1, 3).Key(), MustWord(1, 4).Key()), 0)
}

func TestWordHelpers(t *testing.T) {
	w := MustWord(3, 1, 2, 1)
	assert.Equal(t, 1, w.IndexOf(1))
	assert.Equal(t, -1, w.IndexOf(4))
	assert.Equal(t, Generator(3), w.MaxGenerator())
	assert.Equal(t, "23121", w.Prepend(2).String())
	assert.Equal(t, "312145", w.Concat(MustWord(4), MustWord(5)).String())
	assert.Error(t, w.Validate(2))
	assert.NoError(t, w.Validate(3))
}
