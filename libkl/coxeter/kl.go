package coxeter

import (
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

type klPair struct {
	x, w klcells.WordKey
}

type muEntry struct {
	z  klcells.Word
	mu int64
}

// KLPolynomial returns P_{x,w}(q) as a Laurent polynomial whose variable is q.
//
// For w = s·v with s a left descent:
//
//	P_{x,w} = q^(1-c) P_{sx,v} + q^c P_{x,v} - sum over z < v with sz < z of mu(z,v) q^((l(w)-l(z))/2) P_{x,z}
//
// where c = 1 if sx < x and 0 otherwise.
func (grp *Group) KLPolynomial(x, w klcells.Word) (klcells.Laurent, error) {
	x, err := grp.Reduce(x)
	if err != nil {
		return klcells.LaurentZero, err
	}
	w, err = grp.Reduce(w)
	if err != nil {
		return klcells.LaurentZero, err
	}
	return grp.klReduced(x, w)
}

func (grp *Group) klReduced(x, w klcells.Word) (klcells.Laurent, error) {
	if len(x) > len(w) {
		return klcells.LaurentZero, nil
	}
	if len(x) == len(w) {
		if x.Equal(w) {
			return klcells.LaurentOne, nil
		}
		return klcells.LaurentZero, nil
	}

	key := klPair{x.Key(), w.Key()}
	if P, ok := grp.kl[key]; ok {
		return P, nil
	}

	ivl, err := grp.intervalOfReduced(w)
	if err != nil {
		return klcells.LaurentZero, err
	}
	if !hasKey(ivl.has, key.x) {
		if err = grp.remember(1); err != nil {
			return klcells.LaurentZero, err
		}
		grp.kl[key] = klcells.LaurentZero
		return klcells.LaurentZero, nil
	}

	s, v := w[0], w[1:]
	sx, err := grp.Reduce(x.Prepend(s))
	if err != nil {
		return klcells.LaurentZero, err
	}
	c := 0
	if len(sx) < len(x) {
		c = 1
	}

	P1, err := grp.klReduced(sx, v)
	if err != nil {
		return klcells.LaurentZero, err
	}
	P2, err := grp.klReduced(x, v)
	if err != nil {
		return klcells.LaurentZero, err
	}
	P := P1.Shift(1 - c).Add(P2.Shift(c))

	mus, err := grp.muList(v)
	if err != nil {
		return klcells.LaurentZero, err
	}
	for _, entry := range mus {
		z := entry.z
		if len(z) < len(x) {
			continue
		}
		if desc, _ := grp.IsLeftDescent(s, z); !desc {
			continue
		}
		Pxz, err := grp.klReduced(x, z)
		if err != nil {
			return klcells.LaurentZero, err
		}
		if Pxz.IsZero() {
			continue
		}
		P = P.Sub(Pxz.Scale(entry.mu).Shift((len(w) - len(z)) / 2))
	}

	if err = grp.remember(1); err != nil {
		return klcells.LaurentZero, err
	}
	grp.kl[key] = P
	return P, nil
}

// muList returns every z < w with mu(z,w) != 0.
func (grp *Group) muList(w klcells.Word) ([]muEntry, error) {
	key := w.Key()
	if mus, ok := grp.muLists[key]; ok {
		return mus, nil
	}
	ivl, err := grp.intervalOfReduced(w)
	if err != nil {
		return nil, err
	}
	var mus []muEntry
	for _, z := range ivl.words {
		d := len(w) - len(z)
		if d%2 == 0 {
			continue
		}
		P, err := grp.klReduced(z, w)
		if err != nil {
			return nil, err
		}
		if mu := P.Coeff((d - 1) / 2); mu != 0 {
			mus = append(mus, muEntry{z, mu})
		}
	}
	if err = grp.remember(1 + len(mus)); err != nil {
		return nil, err
	}
	grp.muLists[key] = mus
	return mus, nil
}

// MuCoefficient returns mu(x,w): the coefficient of q^((l(w)-l(x)-1)/2) in P_{x,w}, or 0 unless x < w with
// l(w)-l(x) odd.
func (grp *Group) MuCoefficient(x, w klcells.Word) (int64, error) {
	x, err := grp.Reduce(x)
	if err != nil {
		return 0, err
	}
	w, err = grp.Reduce(w)
	if err != nil {
		return 0, err
	}
	d := len(w) - len(x)
	if d <= 0 || d%2 == 0 {
		return 0, nil
	}
	P, err := grp.klReduced(x, w)
	if err != nil {
		return 0, err
	}
	return P.Coeff((d - 1) / 2), nil
}

// MuNeighbors returns every z < w with mu(z,w) != 0 together with that mu.
func (grp *Group) MuNeighbors(w klcells.Word) ([]klcells.Word, []int64, error) {
	w, err := grp.Reduce(w)
	if err != nil {
		return nil, nil, err
	}
	mus, err := grp.muList(w)
	if err != nil {
		return nil, nil, err
	}
	words := make([]klcells.Word, len(mus))
	coeffs := make([]int64, len(mus))
	for i, entry := range mus {
		words[i] = entry.z
		coeffs[i] = entry.mu
	}
	return words, coeffs, nil
}

// KLPolynomialV returns p_{x,w}(v) = v^(l(x)-l(w)) P_{x,w}(v^2), the coefficient of H_x in the KL basis element c_w
// under the normalization (H_s - v)(H_s + v^-1) = 0.
func (grp *Group) KLPolynomialV(x, w klcells.Word) (klcells.Laurent, error) {
	x, err := grp.Reduce(x)
	if err != nil {
		return klcells.LaurentZero, err
	}
	w, err = grp.Reduce(w)
	if err != nil {
		return klcells.LaurentZero, err
	}
	P, err := grp.klReduced(x, w)
	if err != nil || P.IsZero() {
		return klcells.LaurentZero, err
	}
	if P.Lo < 0 {
		return klcells.LaurentZero, errors.Wrapf(klcells.ErrStructuralAssumption, "P_{%v,%v} has negative degree", x, w)
	}
	coeffs := make([]int64, 2*len(P.Coeffs)-1)
	for i, c := range P.Coeffs {
		coeffs[2*i] = c
	}
	return klcells.NewLaurent(2*P.Lo+len(x)-len(w), coeffs...), nil
}
