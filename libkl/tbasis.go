package libkl

import (
	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
)

// TsTimesCw returns T_s·c_w in the KL basis, using T_s = c_s - v^-1.
func TsTimesCw(m klcells.Multiplier, s klcells.Generator, w klcells.Word) (klcells.Combination, error) {
	y, err := m.Canonical(w)
	if err != nil {
		return nil, err
	}
	prod, err := m.STimesW(s, y)
	if err != nil {
		return nil, err
	}
	prod.AddTerm(y.Key(), klcells.LaurentVInv.Neg())
	return prod.Clean(), nil
}

// TProductTimesCw returns (T_t1 T_t2 ... T_tk)·c_w, applying the generators right to left.
func TProductTimesCw(m klcells.Multiplier, t klcells.Word, w klcells.Word) (klcells.Combination, error) {
	y, err := m.Canonical(w)
	if err != nil {
		return nil, err
	}
	C := klcells.Term(y, klcells.LaurentOne)
	for i := len(t) - 1; i >= 0; i-- {
		next := klcells.NewCombination()
		for k, c := range C {
			prod, err := TsTimesCw(m, t[i], k.Word())
			if err != nil {
				return nil, err
			}
			next.AddScaled(prod, c)
		}
		C = next.Clean()
	}
	return C, nil
}

// Tw0TimesCw returns T_{w0}·c_w for a reduced word w0 of the longest element.
func Tw0TimesCw(m klcells.Multiplier, w0 klcells.Word, w klcells.Word) (klcells.Combination, error) {
	return TProductTimesCw(m, w0, w)
}

// CactusImage returns sigma(x): the first element of the left cell (in the given order) that appears in T_{w0}·c_x.
func CactusImage(m klcells.Multiplier, w0 klcells.Word, cell []klcells.Word, x klcells.Word) (klcells.Word, error) {
	prod, err := Tw0TimesCw(m, w0, x)
	if err != nil {
		return nil, err
	}
	return firstInSupport(prod, cell, x)
}

func firstInSupport(prod klcells.Combination, cell []klcells.Word, x klcells.Word) (klcells.Word, error) {
	for _, y := range cell {
		if prod.Has(y) {
			return y, nil
		}
	}
	return nil, errors.Wrapf(klcells.ErrStructuralAssumption, "T_w0 c_%v meets no element of its cell", x)
}

// CactusMap returns sigma(x) for each x of a left cell, in the cell's order.
func CactusMap(m klcells.Multiplier, w0 klcells.Word, cell []klcells.Word) ([]klcells.Word, error) {
	images := make([]klcells.Word, len(cell))
	for i, x := range cell {
		img, err := CactusImage(m, w0, cell, x)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	return images, nil
}

// CBasisIntoTBasis returns c_w = sum over y <= w of p_{y,w} T_y, keyed by y.
func CBasisIntoTBasis(grp *coxeter.Group, w klcells.Word) (klcells.Combination, error) {
	below, err := grp.BruhatInterval(w)
	if err != nil {
		return nil, err
	}
	C := klcells.NewCombination()
	for _, y := range below {
		p, err := grp.KLPolynomialV(y, w)
		if err != nil {
			return nil, err
		}
		C.AddTerm(y.Key(), p)
	}
	return C, nil
}

// DihedralString returns the alternating word s t s t ... of length l.
func DihedralString(s, t klcells.Generator, l int) klcells.Word {
	w := make(klcells.Word, l)
	for i := range w {
		if i%2 == 0 {
			w[i] = s
		} else {
			w[i] = t
		}
	}
	return w
}

// dihedralCanonical keys elements of I2(m): the longest element is always written starting with 1.
func dihedralCanonical(m int, w klcells.Word) klcells.Word {
	if m != klcells.Infinity && len(w) == m {
		return DihedralString(1, 2, m)
	}
	return w
}

func checkDihedral(m int, w klcells.Word) error {
	if m != klcells.Infinity && m < 2 {
		return errors.Wrapf(klcells.ErrBadCoxeterType, "I2(%d)", m)
	}
	for i, g := range w {
		if g != 1 && g != 2 {
			return errors.Wrapf(klcells.ErrBadGenerator, "generator %d in I2(%d)", g, m)
		}
		if i > 0 && g == w[i-1] {
			return errors.Wrapf(klcells.ErrBadWord, "%v is not reduced", w)
		}
	}
	if m != klcells.Infinity && len(w) > m {
		return errors.Wrapf(klcells.ErrBadWord, "%v is longer than the longest element of I2(%d)", w, m)
	}
	return nil
}

// DihedralTsTimesCw is TsTimesCw in I2(m) by closed form, for alternating words w.
func DihedralTsTimesCw(m int, s klcells.Generator, w klcells.Word) (klcells.Combination, error) {
	if s != 1 && s != 2 {
		return nil, errors.Wrapf(klcells.ErrBadGenerator, "generator %d in I2(%d)", s, m)
	}
	if err := checkDihedral(m, w); err != nil {
		return nil, err
	}
	C := klcells.NewCombination()
	switch {
	case m != klcells.Infinity && len(w) == m:
		C.AddTerm(DihedralString(1, 2, m).Key(), klcells.LaurentV)
	case len(w) > 0 && w[0] == s:
		C.AddTerm(w.Key(), klcells.LaurentV)
	default:
		C.AddTerm(dihedralCanonical(m, w.Prepend(s)).Key(), klcells.LaurentOne)
		C.AddTerm(w.Key(), klcells.LaurentVInv.Neg())
		if len(w) > 1 {
			C.AddTerm(w[1:].Key(), klcells.LaurentOne)
		}
	}
	return C, nil
}

// DihedralTProductTimesCw is TProductTimesCw in I2(m) by closed form.
func DihedralTProductTimesCw(m int, t klcells.Word, w klcells.Word) (klcells.Combination, error) {
	if err := checkDihedral(m, w); err != nil {
		return nil, err
	}
	C := klcells.Term(dihedralCanonical(m, w), klcells.LaurentOne)
	for i := len(t) - 1; i >= 0; i-- {
		next := klcells.NewCombination()
		for k, c := range C {
			prod, err := DihedralTsTimesCw(m, t[i], k.Word())
			if err != nil {
				return nil, err
			}
			next.AddScaled(prod, c)
		}
		C = next.Clean()
	}
	return C, nil
}

// DihedralTw0TimesCw is Tw0TimesCw in I2(m) with w0 = 1212...
func DihedralTw0TimesCw(m int, w klcells.Word) (klcells.Combination, error) {
	return DihedralTProductTimesCw(m, DihedralString(1, 2, m), w)
}

// DihedralLeftCells returns the two left cells of I2(m) between the identity and w0: the non-identity elements
// ending in 1, and those ending in 2, each by increasing length.
func DihedralLeftCells(m int) [][]klcells.Word {
	cells := make([][]klcells.Word, 2)
	for end := klcells.Generator(1); end <= 2; end++ {
		for l := 1; l < m; l++ {
			if l%2 == 1 {
				cells[end-1] = append(cells[end-1], DihedralString(end, 3-end, l))
			} else {
				cells[end-1] = append(cells[end-1], DihedralString(3-end, end, l))
			}
		}
	}
	return cells
}

// DihedralCactusImage is CactusImage in I2(m) by closed form.
func DihedralCactusImage(m int, cell []klcells.Word, x klcells.Word) (klcells.Word, error) {
	prod, err := DihedralTw0TimesCw(m, x)
	if err != nil {
		return nil, err
	}
	return firstInSupport(prod, cell, x)
}
