package klcells

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (

	// MaxRank is the largest number of generators a CoxeterMatrix may have.
	MaxRank = 32

	// MaxDigitRank is the largest rank whose generators can pass through the compact digit encoding.
	MaxDigitRank = 9

	// maxDigits is the longest word whose digit encoding still fits in a uint64.
	maxDigits = 19
)

// Generator is a one-based simple reflection index.
type Generator byte

// Word is an expression in the generators of a Coxeter group, read left to right.
//
// A Word is not necessarily reduced; canonical (reduced) words come from a Multiplier or Oracle.
type Word []Generator

// WordKey is the comparable form of a Word, used to key a Combination.
type WordKey string

// Identity is the empty word.
var Identity = Word{}

// Key returns the map key form of w.
func (w Word) Key() WordKey {
	buf := make([]byte, len(w))
	for i, g := range w {
		buf[i] = byte(g)
	}
	return WordKey(buf)
}

// Word returns the Word that formed this key.
func (k WordKey) Word() Word {
	w := make(Word, len(k))
	for i := 0; i < len(k); i++ {
		w[i] = Generator(k[i])
	}
	return w
}

func (k WordKey) String() string {
	return k.Word().String()
}

// Len is the number of letters in the keyed word.
func (k WordKey) Len() int {
	return len(k)
}

// Clone returns a copy of w that does not share storage.
func (w Word) Clone() Word {
	return append(Word{}, w...)
}

func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

// Reverse returns w read right to left.
//
// For a reduced word this is a reduced word for the inverse element.
func (w Word) Reverse() Word {
	N := len(w)
	rev := make(Word, N)
	for i, g := range w {
		rev[N-1-i] = g
	}
	return rev
}

// Concat returns the word w followed by each of the given words.
func (w Word) Concat(tails ...Word) Word {
	N := len(w)
	for _, tail := range tails {
		N += len(tail)
	}
	out := make(Word, 0, N)
	out = append(out, w...)
	for _, tail := range tails {
		out = append(out, tail...)
	}
	return out
}

// Prepend returns s·w as a new word.
func (w Word) Prepend(s Generator) Word {
	out := make(Word, 0, len(w)+1)
	out = append(out, s)
	return append(out, w...)
}

// IndexOf returns the position of the first s in w, or -1.
func (w Word) IndexOf(s Generator) int {
	for i, g := range w {
		if g == s {
			return i
		}
	}
	return -1
}

// Contains reports whether s appears in w.
func (w Word) Contains(s Generator) bool {
	return w.IndexOf(s) >= 0
}

// MaxGenerator returns the largest generator in w (0 for the identity).
func (w Word) MaxGenerator() Generator {
	max := Generator(0)
	for _, g := range w {
		if g > max {
			max = g
		}
	}
	return max
}

// Relabel applies the diagram automorphism i -> rank+1-i.
//
// This converts words between the two common labelings of the B, D, F, and H families.
func (w Word) Relabel(rank int) (Word, error) {
	out := make(Word, len(w))
	for i, g := range w {
		if g == 0 || int(g) > rank {
			return nil, errors.Wrapf(ErrBadGenerator, "generator %d outside rank %d", g, rank)
		}
		out[i] = Generator(rank + 1 - int(g))
	}
	return out, nil
}

// Validate checks that every generator of w lies in 1..rank.
func (w Word) Validate(rank int) error {
	for _, g := range w {
		if g == 0 || int(g) > rank {
			return errors.Wrapf(ErrBadGenerator, "generator %d in %v outside rank %d", g, w, rank)
		}
	}
	return nil
}

// String prints w as a digit string when every generator is a single digit, and as a bracketed list otherwise.
// The identity prints as "e".
func (w Word) String() string {
	if len(w) == 0 {
		return "e"
	}
	if w.MaxGenerator() <= MaxDigitRank {
		buf := make([]byte, len(w))
		for i, g := range w {
			buf[i] = '0' + byte(g)
		}
		return string(buf)
	}
	var str strings.Builder
	str.WriteByte('[')
	for i, g := range w {
		if i > 0 {
			str.WriteByte(',')
		}
		str.WriteString(strconv.Itoa(int(g)))
	}
	str.WriteByte(']')
	return str.String()
}

// Digits returns the compact integer encoding of w, e.g. (2,3,1) -> 231.
//
// The identity encodes as 0.  Any generator >= 10 yields ErrUnsupportedEncoding.
func (w Word) Digits() (uint64, error) {
	if len(w) > maxDigits {
		return 0, errors.Wrapf(ErrUnsupportedEncoding, "word of length %d does not fit a digit encoding", len(w))
	}
	n := uint64(0)
	for _, g := range w {
		if g == 0 || g > MaxDigitRank {
			return 0, errors.Wrapf(ErrUnsupportedEncoding, "generator %d is not a single digit", g)
		}
		n = 10*n + uint64(g)
	}
	return n, nil
}

// WordFromDigits inverts Word.Digits.
func WordFromDigits(n uint64) (Word, error) {
	if n == 0 {
		return Word{}, nil
	}
	var buf [maxDigits + 1]Generator
	i := len(buf)
	for ; n > 0; n /= 10 {
		d := n % 10
		if d == 0 {
			return nil, errors.Wrap(ErrUnsupportedEncoding, "digit 0 is not a generator")
		}
		i--
		buf[i] = Generator(d)
	}
	return append(Word{}, buf[i:]...), nil
}

// MustWord is a convenience for literals such as MustWord(1, 2, 1).
func MustWord(gens ...int) Word {
	w := make(Word, len(gens))
	for i, g := range gens {
		if g <= 0 || g > MaxRank {
			panic(errors.Wrapf(ErrBadGenerator, "generator %d", g))
		}
		w[i] = Generator(g)
	}
	return w
}

// CompareWords orders words by length and then lexicographically (ShortLex).
//
// For digit-encodable words this agrees with comparing their digit encodings.
func CompareWords(a, b Word) int {
	if d := len(a) - len(b); d != 0 {
		return d
	}
	for i := range a {
		if d := int(a[i]) - int(b[i]); d != 0 {
			return d
		}
	}
	return 0
}

// CompareKeys is CompareWords over WordKeys.
func CompareKeys(a, b WordKey) int {
	if d := len(a) - len(b); d != 0 {
		return d
	}
	return strings.Compare(string(a), string(b))
}

// WordComparator adapts CompareKeys for ordered containers holding WordKeys.
func WordComparator(A, B interface{}) int {
	return CompareKeys(A.(WordKey), B.(WordKey))
}
