package klcells

import (
	"sort"
	"strings"
)

// Combination is a sparse linear combination of basis elements keyed by canonical word.
//
// Lookups of absent keys read as zero and AddTerm never leaves a zero entry behind, so a Combination built
// only through AddTerm / AddScaled is always clean.
type Combination map[WordKey]Laurent

func NewCombination() Combination {
	return make(Combination)
}

// Term returns the single-term combination coeff * {w}.
func Term(w Word, coeff Laurent) Combination {
	C := make(Combination, 1)
	C.AddTerm(w.Key(), coeff)
	return C
}

// Get returns the coefficient of k (zero if absent).
func (C Combination) Get(k WordKey) Laurent {
	return C[k]
}

// AddTerm adds coeff to the coefficient of k, dropping the entry if the sum vanishes.
func (C Combination) AddTerm(k WordKey, coeff Laurent) {
	if coeff.IsZero() {
		return
	}
	sum := C[k].Add(coeff)
	if sum.IsZero() {
		delete(C, k)
	} else {
		C[k] = sum
	}
}

// AddScaled adds scale * src to C.
func (C Combination) AddScaled(src Combination, scale Laurent) {
	if scale.IsZero() {
		return
	}
	for k, c := range src {
		C.AddTerm(k, c.Mul(scale))
	}
}

// Add adds src to C.
func (C Combination) Add(src Combination) {
	C.AddScaled(src, LaurentOne)
}

// Clean removes zero entries in place and returns C.  Cleaning is idempotent.
func (C Combination) Clean() Combination {
	for k, c := range C {
		if c.IsZero() {
			delete(C, k)
		}
	}
	return C
}

func (C Combination) Clone() Combination {
	out := make(Combination, len(C))
	for k, c := range C {
		out[k] = c
	}
	return out
}

// Scale returns coeff * C as a new combination.
func (C Combination) Scale(coeff Laurent) Combination {
	out := make(Combination, len(C))
	out.AddScaled(C, coeff)
	return out
}

func (C Combination) IsZero() bool {
	for _, c := range C {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equal compares two combinations, treating absent and zero coefficients alike.
func (C Combination) Equal(other Combination) bool {
	for k, c := range C {
		if !c.Equal(other[k]) {
			return false
		}
	}
	for k, c := range other {
		if !c.Equal(C[k]) {
			return false
		}
	}
	return true
}

// Keys returns the keys with nonzero coefficients in ShortLex order.
func (C Combination) Keys() []WordKey {
	keys := make([]WordKey, 0, len(C))
	for k, c := range C {
		if !c.IsZero() {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return CompareKeys(keys[i], keys[j]) < 0
	})
	return keys
}

// Support returns the words with nonzero coefficients in ShortLex order.
func (C Combination) Support() []Word {
	keys := C.Keys()
	words := make([]Word, len(keys))
	for i, k := range keys {
		words[i] = k.Word()
	}
	return words
}

// Has reports whether w has a nonzero coefficient.
func (C Combination) Has(w Word) bool {
	return !C[w.Key()].IsZero()
}

// Rekey maps every key through fn, summing coefficients that collide.
func (C Combination) Rekey(fn func(w Word) Word) Combination {
	out := make(Combination, len(C))
	for k, c := range C {
		out.AddTerm(fn(k.Word()).Key(), c)
	}
	return out
}

// String prints C as "{13: v + v^-1, 1213: 1}" in ShortLex order.
func (C Combination) String() string {
	var str strings.Builder
	str.WriteByte('{')
	for i, k := range C.Keys() {
		if i > 0 {
			str.WriteString(", ")
		}
		str.WriteString(k.String())
		str.WriteString(": ")
		str.WriteString(C[k].String())
	}
	str.WriteByte('}')
	return str.String()
}
