package libkl

import (
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// HeckeMultiplier multiplies KL basis elements of any Coxeter group through an Oracle.
type HeckeMultiplier struct {
	oracle klcells.Oracle
}

func NewHeckeMultiplier(oracle klcells.Oracle) *HeckeMultiplier {
	return &HeckeMultiplier{
		oracle: oracle,
	}
}

// Oracle returns the oracle this multiplier consults.
func (hm *HeckeMultiplier) Oracle() klcells.Oracle {
	return hm.oracle
}

func (hm *HeckeMultiplier) Matrix() klcells.CoxeterMatrix {
	return hm.oracle.Matrix()
}

func (hm *HeckeMultiplier) Canonical(w klcells.Word) (klcells.Word, error) {
	red, err := hm.oracle.Reduce(w)
	return red, oracleErr(err)
}

// STimesW returns c_s·c_w:
//
//	(v + v^-1) c_w                                       if sw < w
//	c_{sw} + sum over x < w with sx < x of mu(x,w) c_x   otherwise
func (hm *HeckeMultiplier) STimesW(s klcells.Generator, w klcells.Word) (klcells.Combination, error) {
	w, err := hm.oracle.Reduce(w)
	if err != nil {
		return nil, oracleErr(err)
	}
	desc, err := hm.oracle.IsLeftDescent(s, w)
	if err != nil {
		return nil, oracleErr(err)
	}
	if desc {
		return klcells.Term(w, klcells.VPlusVInv), nil
	}

	sw, err := hm.oracle.Reduce(w.Prepend(s))
	if err != nil {
		return nil, oracleErr(err)
	}
	C := klcells.Term(sw, klcells.LaurentOne)

	below, err := hm.oracle.BruhatInterval(w)
	if err != nil {
		return nil, oracleErr(err)
	}
	for _, x := range below {
		if d := len(w) - len(x); d <= 0 || d%2 == 0 {
			continue
		}
		if desc, err = hm.oracle.IsLeftDescent(s, x); err != nil {
			return nil, oracleErr(err)
		} else if !desc {
			continue
		}
		mu, err := hm.oracle.MuCoefficient(x, w)
		if err != nil {
			return nil, oracleErr(err)
		}
		C.AddTerm(x.Key(), klcells.Const(mu))
	}
	return C, nil
}

// Expand returns BreakElement(w).
func (hm *HeckeMultiplier) Expand(w klcells.Word) (klcells.Combination, error) {
	return BreakElement(hm, w)
}

// oracleError marks an oracle failure as klcells.ErrOracleUnavailable while keeping its cause reachable.
type oracleError struct {
	cause error
}

func (err *oracleError) Error() string {
	return klcells.ErrOracleUnavailable.Error() + ": " + err.cause.Error()
}

func (err *oracleError) Unwrap() []error {
	return []error{klcells.ErrOracleUnavailable, err.cause}
}

func oracleErr(err error) error {
	if err == nil || errors.Is(err, klcells.ErrOracleUnavailable) {
		return err
	}
	return &oracleError{cause: err}
}
