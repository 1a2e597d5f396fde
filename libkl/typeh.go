package libkl

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
)

// maxTypeHSteps bounds the rewrite worklist of a single product.
const maxTypeHSteps = 1 << 22

// TypeH multiplies KL basis elements of fully commutative elements of H_n without a Coxeter oracle.
//
// Products are exact modulo the span of c_z with a(z) > 2, which is a two-sided ideal, so the results are exact
// for everything that stays within a-value <= 2.  Keys are heap canonical words.
type TypeH struct {
	rank int
	M    klcells.CoxeterMatrix
}

// NewTypeH returns the closed-form multiplier for H_rank (m(1,2) = 5).
func NewTypeH(rank int) (*TypeH, error) {
	if rank < 2 || rank >= klcells.MaxRank {
		return nil, errors.Wrapf(klcells.ErrBadCoxeterType, "H%d", rank)
	}
	return &TypeH{
		rank: rank,
		M:    coxeter.TypeH(rank),
	}, nil
}

func (H *TypeH) Matrix() klcells.CoxeterMatrix {
	return H.M
}

func (H *TypeH) Rank() int {
	return H.rank
}

// Canonical returns the heap canonical word of w, which must be a reduced fully commutative word.
func (H *TypeH) Canonical(w klcells.Word) (klcells.Word, error) {
	if err := w.Validate(H.rank); err != nil {
		return nil, err
	}
	heap := NewHeap(H.M, w)
	if !heap.IsFullyCommutative() {
		return nil, errors.Wrapf(klcells.ErrNotFullyCommutative, "%v in H%d", w, H.rank)
	}
	return heap.CanonicalWord(), nil
}

// Expand returns the f-basis expansion of c_w as a combination of generator products.
func (H *TypeH) Expand(w klcells.Word) (klcells.Combination, error) {
	y, err := H.Canonical(w)
	if err != nil {
		return nil, err
	}
	fs, err := FFactors(y)
	if err != nil {
		return nil, err
	}
	return FactorsToPoly(fs), nil
}

// todoKey is a pending product (monomial)·c_word.
type todoKey struct {
	mono klcells.WordKey
	word klcells.WordKey
}

// STimesW returns c_s·c_w.
func (H *TypeH) STimesW(s klcells.Generator, w klcells.Word) (klcells.Combination, error) {
	if s == 0 || int(s) > H.rank {
		return nil, errors.Wrapf(klcells.ErrBadGenerator, "generator %d outside H%d", s, H.rank)
	}
	y, err := H.Canonical(w)
	if err != nil {
		return nil, err
	}

	pending := make(map[todoKey]klcells.Laurent)
	todo := linkedlistqueue.New()
	push := func(key todoKey, c klcells.Laurent) {
		prev, queued := pending[key]
		if !queued {
			todo.Enqueue(key)
		}
		if sum := prev.Add(c); sum.IsZero() {
			delete(pending, key)
		} else {
			pending[key] = sum
		}
	}
	push(todoKey{klcells.Word{s}.Key(), y.Key()}, klcells.LaurentOne)

	done := klcells.NewCombination()
	for steps := 0; !todo.Empty(); steps++ {
		if steps > maxTypeHSteps {
			return nil, errors.Wrapf(klcells.ErrResourceExhausted, "c_%d c_%v did not settle", s, y)
		}
		item, _ := todo.Dequeue()
		key := item.(todoKey)
		c, ok := pending[key]
		if !ok {
			continue
		}
		delete(pending, key)

		if len(key.mono) == 0 {
			done.AddTerm(key.word, c)
			continue
		}
		mono := key.mono.Word()
		t, head := mono[len(mono)-1], mono[:len(mono)-1]
		terms, err := sOnce(t, key.word.Word())
		if err != nil {
			return nil, err
		}
		for tk, p := range terms {
			push(todoKey{head.Concat(tk.mono.Word()).Key(), tk.word}, p.Mul(c))
		}
	}

	out := klcells.NewCombination()
	for k, c := range done {
		out.AddTerm(CanonicalWord(H.M, k.Word()).Key(), c)
	}
	return out.Clean(), nil
}

// sOnce rewrites c_s·c_y as a sum of (monomial)·c_z terms in which every z is shorter than s·y or s·y itself.
//
// The cases follow the position of the first s in y and the neighbors of s that precede it:
//  1. s is absent from y, or two neighbors precede it: c_{sy}.
//  2. no neighbor precedes it (s is a left descent): (v + v^-1) c_y.
//  3. s >= 4, or s = 3 with neighbor 4: a star move through the f-factors of y.
//  4. s = 1, or s = 2 with neighbor 1: a star move inside <1,2>, governed by the parabolic part of the
//     remainder.
//  5. s = 2 with neighbor 3: drop the first 3.
//  6. s = 3 with neighbor 2: drop the first 2, or zero when the parabolic part of y is 121.
func sOnce(s klcells.Generator, y klcells.Word) (map[todoKey]klcells.Laurent, error) {
	d := klcells.NewCombination()
	var left []Factor

	switch idx := y.IndexOf(s); {
	case idx < 0:
		d.AddTerm(y.Prepend(s).Key(), klcells.LaurentOne)
	case len(neighborsBefore(s, y)) == 0:
		d.AddTerm(y.Key(), klcells.VPlusVInv)
	case len(neighborsBefore(s, y)) == 2:
		d.AddTerm(y.Prepend(s).Key(), klcells.LaurentOne)
	default:
		nb := y[firstNeighbor(s, y)]
		switch {
		case s > 3 || (s == 3 && nb == 4):
			fs, err := FFactors(y)
			if err != nil {
				return nil, err
			}
			n := firstNeighborFactor(s, fs)
			if n < 0 {
				return nil, errors.Wrapf(klcells.ErrStructuralAssumption, "no neighbor of %d among factors of %v", s, y)
			}
			left = fs[:n]
			d.AddTerm(FactorsToWord(fs[n+1:]).Key(), klcells.LaurentOne)

		case s == 1 || (s == 2 && nb == 1):
			other := 3 - s
			i := y.IndexOf(other)
			left = genFactors(y[:i])
			z := y[i:]
			p, _ := OnetwoDecompose(z)
			switch {
			case len(p) == 1:
				d.AddTerm(z.Prepend(s).Key(), klcells.LaurentOne)
			case len(p) == 4:
				d.AddTerm(z[1:].Key(), klcells.LaurentOne)
			default:
				d.AddTerm(z.Prepend(s).Key(), klcells.LaurentOne)
				d.AddTerm(z[1:].Key(), klcells.LaurentOne)
			}

		case s == 2 && nb == 3:
			i := y.IndexOf(3)
			left = genFactors(y[:i])
			d.AddTerm(y[i+1:].Key(), klcells.LaurentOne)

		case s == 3 && nb == 2:
			if p, _ := OnetwoDecompose(y); p.Equal(klcells.Word{1, 2, 1}) {
				return nil, nil
			}
			i := y.IndexOf(2)
			left = genFactors(y[:i])
			d.AddTerm(y[i+1:].Key(), klcells.LaurentOne)

		default:
			return nil, errors.Wrapf(klcells.ErrStructuralAssumption, "no rule for c_%d c_%v", s, y)
		}
	}

	terms := make(map[todoKey]klcells.Laurent, len(d))
	for k, c := range FactorsToPoly(left) {
		for j, p := range d {
			key := todoKey{k, j}
			if sum := terms[key].Add(p.Mul(c)); sum.IsZero() {
				delete(terms, key)
			} else {
				terms[key] = sum
			}
		}
	}
	return terms, nil
}

func firstNeighborFactor(s klcells.Generator, fs []Factor) int {
	for i, f := range fs {
		if f.Kind == FactorGen && isNeighbor(f.Gen, s) {
			return i
		}
	}
	return -1
}
