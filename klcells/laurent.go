package klcells

import (
	"strconv"
	"strings"
)

// Laurent is an exact element of Z[v, v^-1].
//
// Coeffs[i] is the coefficient of v^(Lo+i).  A normalized Laurent has nonzero first and last coefficients,
// and the zero polynomial has no coefficients at all.  Laurent values are never mutated once formed.
type Laurent struct {
	Lo     int
	Coeffs []int64
}

var (
	LaurentZero = Laurent{}
	LaurentOne  = Mono(1, 0)
	LaurentV    = Mono(1, 1)
	LaurentVInv = Mono(1, -1)

	// VPlusVInv is v + v^-1, the eigenvalue of c_s acting on c_w when s is a left descent of w.
	VPlusVInv = Laurent{Lo: -1, Coeffs: []int64{1, 0, 1}}
)

// Mono returns coeff * v^exp.
func Mono(coeff int64, exp int) Laurent {
	if coeff == 0 {
		return Laurent{}
	}
	return Laurent{Lo: exp, Coeffs: []int64{coeff}}
}

// Const returns the constant polynomial k.
func Const(k int64) Laurent {
	return Mono(k, 0)
}

// NewLaurent forms a normalized Laurent from coefficients starting at v^lo.
func NewLaurent(lo int, coeffs ...int64) Laurent {
	return Laurent{Lo: lo, Coeffs: append([]int64(nil), coeffs...)}.normalize()
}

func (p Laurent) normalize() Laurent {
	i, j := 0, len(p.Coeffs)
	for i < j && p.Coeffs[i] == 0 {
		i++
	}
	for j > i && p.Coeffs[j-1] == 0 {
		j--
	}
	if i == j {
		return Laurent{}
	}
	return Laurent{Lo: p.Lo + i, Coeffs: p.Coeffs[i:j]}
}

func (p Laurent) IsZero() bool {
	return len(p.Coeffs) == 0
}

// Hi is the largest exponent with a nonzero coefficient (meaningless for zero).
func (p Laurent) Hi() int {
	return p.Lo + len(p.Coeffs) - 1
}

// Coeff returns the coefficient of v^exp.
func (p Laurent) Coeff(exp int) int64 {
	i := exp - p.Lo
	if i < 0 || i >= len(p.Coeffs) {
		return 0
	}
	return p.Coeffs[i]
}

// IsConst reports whether p is a constant, returning it.
func (p Laurent) IsConst() (int64, bool) {
	switch {
	case p.IsZero():
		return 0, true
	case len(p.Coeffs) == 1 && p.Lo == 0:
		return p.Coeffs[0], true
	}
	return 0, false
}

func (p Laurent) Equal(q Laurent) bool {
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	if len(p.Coeffs) == 0 {
		return true
	}
	if p.Lo != q.Lo {
		return false
	}
	for i, c := range p.Coeffs {
		if c != q.Coeffs[i] {
			return false
		}
	}
	return true
}

func (p Laurent) combine(q Laurent, qSign int64) Laurent {
	if q.IsZero() {
		return p
	}
	if p.IsZero() {
		return q.Scale(qSign)
	}
	lo := p.Lo
	if q.Lo < lo {
		lo = q.Lo
	}
	hi := p.Hi()
	if q.Hi() > hi {
		hi = q.Hi()
	}
	sum := make([]int64, hi-lo+1)
	for i, c := range p.Coeffs {
		sum[p.Lo-lo+i] += c
	}
	for i, c := range q.Coeffs {
		sum[q.Lo-lo+i] += qSign * c
	}
	return Laurent{Lo: lo, Coeffs: sum}.normalize()
}

func (p Laurent) Add(q Laurent) Laurent {
	return p.combine(q, 1)
}

func (p Laurent) Sub(q Laurent) Laurent {
	return p.combine(q, -1)
}

func (p Laurent) Neg() Laurent {
	return p.Scale(-1)
}

// Scale returns k * p.
func (p Laurent) Scale(k int64) Laurent {
	if k == 0 || p.IsZero() {
		return Laurent{}
	}
	out := make([]int64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = k * c
	}
	return Laurent{Lo: p.Lo, Coeffs: out}
}

// Shift returns v^k * p.
func (p Laurent) Shift(k int) Laurent {
	if p.IsZero() {
		return p
	}
	return Laurent{Lo: p.Lo + k, Coeffs: p.Coeffs}
}

func (p Laurent) Mul(q Laurent) Laurent {
	if p.IsZero() || q.IsZero() {
		return Laurent{}
	}
	prod := make([]int64, len(p.Coeffs)+len(q.Coeffs)-1)
	for i, a := range p.Coeffs {
		if a == 0 {
			continue
		}
		for j, b := range q.Coeffs {
			prod[i+j] += a * b
		}
	}
	return Laurent{Lo: p.Lo + q.Lo, Coeffs: prod}.normalize()
}

// Pow returns p^n for n >= 0.
func (p Laurent) Pow(n int) Laurent {
	out := LaurentOne
	for ; n > 0; n-- {
		out = out.Mul(p)
	}
	return out
}

// Bar applies v -> v^-1.
func (p Laurent) Bar() Laurent {
	N := len(p.Coeffs)
	if N == 0 {
		return p
	}
	out := make([]int64, N)
	for i, c := range p.Coeffs {
		out[N-1-i] = c
	}
	return Laurent{Lo: -p.Hi(), Coeffs: out}
}

// String prints p with descending exponents, e.g. "v^2 + 2 + v^-2".
func (p Laurent) String() string {
	if p.IsZero() {
		return "0"
	}
	var str strings.Builder
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		c := p.Coeffs[i]
		if c == 0 {
			continue
		}
		exp := p.Lo + i
		if str.Len() == 0 {
			if c < 0 {
				str.WriteByte('-')
			}
		} else if c < 0 {
			str.WriteString(" - ")
		} else {
			str.WriteString(" + ")
		}
		if c < 0 {
			c = -c
		}
		if c != 1 || exp == 0 {
			str.WriteString(strconv.FormatInt(c, 10))
		}
		switch exp {
		case 0:
		case 1:
			str.WriteByte('v')
		default:
			str.WriteString("v^")
			str.WriteString(strconv.Itoa(exp))
		}
	}
	return str.String()
}
