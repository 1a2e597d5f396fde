package libkl

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// DistinguishedInvolution returns the one candidate common to the supports of c_{x^-1}·c_x over every candidate x.
//
// Candidates are normally the intersection of a left cell with its inverse, which holds the cell's distinguished
// involution.  Support terms outside the candidates (lower cells, for an exact multiplier) are ignored.  Anything
// other than exactly one common element fails with klcells.ErrStructuralAssumption.
func DistinguishedInvolution(m klcells.Multiplier, candidates []klcells.Word) (klcells.Word, error) {
	if len(candidates) == 0 {
		return nil, errors.Wrap(klcells.ErrStructuralAssumption, "no candidates for a distinguished involution")
	}

	inCandidates := treeset.NewWith(klcells.WordComparator)
	for _, x := range candidates {
		y, err := m.Canonical(x)
		if err != nil {
			return nil, err
		}
		inCandidates.Add(y.Key())
	}

	var common *treeset.Set
	for _, x := range candidates {
		inv, err := Inverse(m, x)
		if err != nil {
			return nil, err
		}
		prod, err := Product(m, inv, x)
		if err != nil {
			return nil, err
		}
		support := treeset.NewWith(klcells.WordComparator)
		for k := range prod {
			if !inCandidates.Contains(k) {
				continue
			}
			if common == nil || common.Contains(k) {
				support.Add(k)
			}
		}
		common = support
	}

	if common.Size() != 1 {
		return nil, errors.Wrapf(klcells.ErrStructuralAssumption, "supports of %v share %d elements", candidates, common.Size())
	}
	return common.Values()[0].(klcells.WordKey).Word(), nil
}

// CellDistinguishedInvolution returns the distinguished involution of a left cell.
func CellDistinguishedInvolution(m klcells.Multiplier, leftCell []klcells.Word) (klcells.Word, error) {
	both, err := CellIntersection(m, leftCell)
	if err != nil {
		return nil, err
	}
	return DistinguishedInvolution(m, both)
}
