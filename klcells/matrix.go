package klcells

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Infinity is the CoxeterMatrix entry for a pair of generators with no braid relation.
const Infinity = 0

// CoxeterMatrix holds m(s,t) for generators s,t (row/column i is generator i+1).
//
// Diagonal entries are 1, commuting pairs are 2, and Infinity (0) encodes m = ∞.
type CoxeterMatrix [][]int

// NewCoxeterMatrix returns the rank-n matrix where every pair commutes.
func NewCoxeterMatrix(rank int) CoxeterMatrix {
	M := make(CoxeterMatrix, rank)
	for i := range M {
		M[i] = make([]int, rank)
		for j := range M[i] {
			M[i][j] = 2
		}
		M[i][i] = 1
	}
	return M
}

func (M CoxeterMatrix) Rank() int {
	return len(M)
}

// M returns m(s,t).
func (M CoxeterMatrix) M(s, t Generator) int {
	return M[s-1][t-1]
}

// SetBond sets m(s,t) = m(t,s) = m.
func (M CoxeterMatrix) SetBond(s, t Generator, m int) CoxeterMatrix {
	M[s-1][t-1] = m
	M[t-1][s-1] = m
	return M
}

// Commutes reports whether s and t are distinct commuting generators.
func (M CoxeterMatrix) Commutes(s, t Generator) bool {
	return s != t && M[s-1][t-1] == 2
}

// Related reports whether positions holding s and t are comparable in a heap (s == t, or s and t do not commute).
func (M CoxeterMatrix) Related(s, t Generator) bool {
	return M[s-1][t-1] != 2
}

func (M CoxeterMatrix) Validate() error {
	N := len(M)
	if N == 0 || N > MaxRank {
		return errors.Wrapf(ErrBadCoxeterMatrix, "rank %d", N)
	}
	for i, row := range M {
		if len(row) != N {
			return errors.Wrapf(ErrBadCoxeterMatrix, "row %d has %d entries", i+1, len(row))
		}
		for j, m := range row {
			switch {
			case i == j && m != 1:
				return errors.Wrapf(ErrBadCoxeterMatrix, "diagonal entry %d is %d", i+1, m)
			case i != j && (m == 1 || m < 0):
				return errors.Wrapf(ErrBadCoxeterMatrix, "entry (%d,%d) is %d", i+1, j+1, m)
			case m != M[j][i]:
				return errors.Wrapf(ErrBadCoxeterMatrix, "entry (%d,%d) is not symmetric", i+1, j+1)
			}
		}
	}
	return nil
}

func (M CoxeterMatrix) Clone() CoxeterMatrix {
	out := make(CoxeterMatrix, len(M))
	for i, row := range M {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func (M CoxeterMatrix) Equal(other CoxeterMatrix) bool {
	if len(M) != len(other) {
		return false
	}
	for i, row := range M {
		if len(row) != len(other[i]) {
			return false
		}
		for j, m := range row {
			if m != other[i][j] {
				return false
			}
		}
	}
	return true
}

// String prints rows separated by ';', e.g. "1 5 2; 5 1 3; 2 3 1".
func (M CoxeterMatrix) String() string {
	var str strings.Builder
	for i, row := range M {
		if i > 0 {
			str.WriteString("; ")
		}
		for j, m := range row {
			if j > 0 {
				str.WriteByte(' ')
			}
			str.WriteString(strconv.Itoa(m))
		}
	}
	return str.String()
}
