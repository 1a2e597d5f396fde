package libkl

import (
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// Products in the asymptotic ring J restricted to the subregular cell, where the basis element t_x is indexed by a
// word whose consecutive letters never commute and whose maximal alternating pieces are dihedral.
// Results are combinations with integer multiplicities.

// numbersFrom returns a, a-2, a-4, ... (n terms).
func numbersFrom(a, n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = a - 2*i
	}
	return out
}

func checkJWord(w klcells.Word, M klcells.CoxeterMatrix) error {
	if len(w) == 0 {
		return errors.Wrap(klcells.ErrBadWord, "J-ring elements are never the identity")
	}
	return w.Validate(M.Rank())
}

// DihedralProduct returns t_u·t_w for words u and w that each alternate between two generators.
//
// The product vanishes unless u ends where w starts.  When the overlap is a single letter the words simply join.
// Otherwise u = sts... of length k and w of length l collide in the pair {s,t} with m = m(s,t), and the product is
// the sum of the alternating words sts... of lengths:
//
//	k+l-1, k+l-3, ... (min(k,l) terms)        if m = ∞ or k+l < m+1
//	2m-k-l-1, 2m-k-l-3, ... (m-max(k,l) terms) otherwise
func DihedralProduct(u, w klcells.Word, M klcells.CoxeterMatrix) (klcells.Combination, error) {
	if err := checkJWord(u, M); err != nil {
		return nil, err
	}
	if err := checkJWord(w, M); err != nil {
		return nil, err
	}

	C := klcells.NewCombination()
	switch {
	case u[len(u)-1] != w[0]:
	case len(u) == 1:
		C.AddTerm(w.Key(), klcells.LaurentOne)
	case len(w) == 1:
		C.AddTerm(u.Key(), klcells.LaurentOne)
	case u[len(u)-2] != w[1]:
		C.AddTerm(u[:len(u)-1].Concat(w).Key(), klcells.LaurentOne)
	default:
		k, l := len(u), len(w)
		m := M.M(u[0], u[1])
		var lengths []int
		if m == klcells.Infinity || k+l < m+1 {
			lengths = numbersFrom(k+l-1, min(k, l))
		} else {
			lengths = numbersFrom(2*m-k-l-1, m-max(k, l))
		}
		for _, n := range lengths {
			C.AddTerm(DihedralString(u[0], u[1], n).Key(), klcells.LaurentOne)
		}
	}
	return C, nil
}

// firstDihedralSegment returns the length of the alternating prefix of w over the pair {w[0], w[1]}.
func firstDihedralSegment(w klcells.Word) int {
	if len(w) == 1 {
		return 1
	}
	n := 0
	for _, g := range w {
		if g != w[0] && g != w[1] {
			break
		}
		n++
	}
	return n
}

// DihedralSegments splits w into its maximal dihedral segments.
//
// Consecutive segments share one letter: 1213234341 gives 121, 13, 323, 3434, 41.
func DihedralSegments(w klcells.Word) []klcells.Word {
	var segs []klcells.Word
	for rest := w; len(rest) > 0; {
		n := firstDihedralSegment(rest)
		segs = append(segs, rest[:n].Clone())
		if n == len(rest) {
			break
		}
		rest = rest[n-1:]
	}
	return segs
}

// LeftMultByDihedral returns t_u·t_w for an alternating word u and any word w.
func LeftMultByDihedral(u, w klcells.Word, M klcells.CoxeterMatrix) (klcells.Combination, error) {
	if err := checkJWord(u, M); err != nil {
		return nil, err
	}
	if err := checkJWord(w, M); err != nil {
		return nil, err
	}
	n := firstDihedralSegment(w)
	if n == len(w) || u[len(u)-1] != w[0] {
		return DihedralProduct(u, w, M)
	}

	heads, err := DihedralProduct(u, w[:n], M)
	if err != nil {
		return nil, err
	}
	body := w[n-1:]
	C := klcells.NewCombination()
	for k, c := range heads {
		head := k.Word()
		C.AddTerm(head[:len(head)-1].Concat(body).Key(), c)
	}
	return C, nil
}

// TBasisProduct returns t_u·t_w by multiplying t_w on the left by the dihedral segments of u, last segment first.
func TBasisProduct(u, w klcells.Word, M klcells.CoxeterMatrix) (klcells.Combination, error) {
	if err := checkJWord(u, M); err != nil {
		return nil, err
	}
	if err := checkJWord(w, M); err != nil {
		return nil, err
	}
	C := klcells.Term(w, klcells.LaurentOne)
	if u[len(u)-1] != w[0] {
		return klcells.NewCombination(), nil
	}

	segs := DihedralSegments(u)
	for i := len(segs) - 1; i >= 0; i-- {
		next := klcells.NewCombination()
		for k, c := range C {
			prod, err := LeftMultByDihedral(segs[i], k.Word(), M)
			if err != nil {
				return nil, err
			}
			next.AddScaled(prod, c)
		}
		C = next.Clean()
	}
	return C, nil
}

// JProduct extends TBasisProduct bilinearly to combinations of t-basis elements.
func JProduct(a, b klcells.Combination, M klcells.CoxeterMatrix) (klcells.Combination, error) {
	out := klcells.NewCombination()
	for _, ka := range a.Keys() {
		for _, kb := range b.Keys() {
			prod, err := TBasisProduct(ka.Word(), kb.Word(), M)
			if err != nil {
				return nil, err
			}
			out.AddScaled(prod, a[ka].Mul(b[kb]))
		}
	}
	return out.Clean(), nil
}
