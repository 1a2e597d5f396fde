package coxeter

import (
	"math"
	"sort"

	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Opts bounds the work a Group will do before failing with klcells.ErrOracleUnavailable.
type Opts struct {
	MaxInterval int // max size of a Bruhat interval (0 means no limit)
	MaxLength   int // max length of an element (0 means no limit)
	MaxMemo     int // max memoized interval words and KL polynomials, summed (0 means no limit)
}

// DefaultOpts suits groups the size of H4 and the low-length part of affine groups.
var DefaultOpts = Opts{
	MaxInterval: 50000,
	MaxLength:   64,
	MaxMemo:     2000000,
}

// rootEpsilon separates negative roots from roundoff.  Root coefficients in the geometric representation are
// sums of products of 2cos(pi/m), so a genuinely negative root is never this close to zero.
const rootEpsilon = 1e-9

// Group is a Coxeter group oracle.
//
// Elements are tracked through the geometric (Tits) representation, used only to read the sign of roots.
// Canonical words are ShortLex normal forms, whose prefixes and suffixes are again normal forms.
// Bruhat intervals and Kazhdan-Lusztig polynomials are memoized.  A Group is not safe for concurrent use.
type Group struct {
	Name string

	M    klcells.CoxeterMatrix
	opts Opts
	rank int
	refl [][]float64 // refl[s-1] is the rank x rank matrix of s, row-major

	intervals map[klcells.WordKey]*interval
	kl        map[klPair]klcells.Laurent
	muLists   map[klcells.WordKey][]muEntry
	memo      int
}

type interval struct {
	words []klcells.Word
	has   map[klcells.WordKey]struct{}
}

// NewGroup returns an oracle for the given Coxeter matrix.
func NewGroup(name string, M klcells.CoxeterMatrix, opts Opts) (*Group, error) {
	if err := M.Validate(); err != nil {
		return nil, err
	}
	N := M.Rank()
	grp := &Group{
		Name:      name,
		M:         M.Clone(),
		opts:      opts,
		rank:      N,
		refl:      make([][]float64, N),
		intervals: make(map[klcells.WordKey]*interval),
		kl:        make(map[klPair]klcells.Laurent),
		muLists:   make(map[klcells.WordKey][]muEntry),
	}

	// s(a_t) = a_t + 2cos(pi/m(s,t)) a_s and s(a_s) = -a_s
	for s := 0; s < N; s++ {
		R := make([]float64, N*N)
		for i := 0; i < N; i++ {
			R[i*N+i] = 1
		}
		for t := 0; t < N; t++ {
			if t == s {
				R[s*N+t] = -1
				continue
			}
			R[s*N+t] = bondCoeff(M[s][t])
		}
		grp.refl[s] = R
	}
	return grp, nil
}

// NewGroupFromType parses a type name (see ParseType) and returns its oracle.
func NewGroupFromType(name string, opts Opts) (*Group, error) {
	M, err := ParseType(name)
	if err != nil {
		return nil, err
	}
	return NewGroup(name, M, opts)
}

func bondCoeff(m int) float64 {
	switch m {
	case klcells.Infinity:
		return 2
	case 2:
		return 0
	case 3:
		return 1
	}
	return 2 * math.Cos(math.Pi/float64(m))
}

func (grp *Group) Matrix() klcells.CoxeterMatrix {
	return grp.M
}

func (grp *Group) Rank() int {
	return grp.rank
}

func (grp *Group) identity() []float64 {
	N := grp.rank
	A := make([]float64, N*N)
	for i := 0; i < N; i++ {
		A[i*N+i] = 1
	}
	return A
}

// mulInto sets dst = A * B.
func (grp *Group) mulInto(dst, A, B []float64) {
	N := grp.rank
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			sum := 0.0
			for k := 0; k < N; k++ {
				sum += A[i*N+k] * B[k*N+j]
			}
			dst[i*N+j] = sum
		}
	}
}

func (grp *Group) checkWord(w klcells.Word) error {
	if err := w.Validate(grp.rank); err != nil {
		return errors.Wrapf(klcells.ErrOracleUnavailable, "%s: %v", grp.Name, err)
	}
	return nil
}

// inverseMatrix returns the matrix of w^-1 = a_k ... a_1 for w = a_1 ... a_k.
// Column s of this matrix is w^-1(a_s), which is negative exactly when s is a left descent of w.
func (grp *Group) inverseMatrix(w klcells.Word) []float64 {
	A := grp.identity()
	tmp := make([]float64, len(A))
	for _, g := range w {
		grp.mulInto(tmp, grp.refl[g-1], A)
		A, tmp = tmp, A
	}
	return A
}

func (grp *Group) negativeColumn(A []float64, s klcells.Generator) bool {
	N := grp.rank
	sum := 0.0
	for i := 0; i < N; i++ {
		sum += A[i*N+int(s)-1]
	}
	return sum < -rootEpsilon
}

// Reduce returns the ShortLex normal form of w.
func (grp *Group) Reduce(w klcells.Word) (klcells.Word, error) {
	if err := grp.checkWord(w); err != nil {
		return nil, err
	}
	A := grp.inverseMatrix(w)
	tmp := make([]float64, len(A))

	out := make(klcells.Word, 0, len(w))
	for {
		s := klcells.Generator(0)
		for t := 1; t <= grp.rank; t++ {
			if grp.negativeColumn(A, klcells.Generator(t)) {
				s = klcells.Generator(t)
				break
			}
		}
		if s == 0 {
			break
		}
		if len(out) > len(w) {
			return nil, errors.Wrapf(klcells.ErrOracleUnavailable, "%s: reduction of %v did not converge", grp.Name, w)
		}
		out = append(out, s)

		// (s·w')^-1 = w'^-1 · s
		grp.mulInto(tmp, A, grp.refl[s-1])
		A, tmp = tmp, A
	}
	if grp.opts.MaxLength > 0 && len(out) > grp.opts.MaxLength {
		return nil, errors.Wrapf(klcells.ErrOracleUnavailable, "%s: element length %d exceeds %d", grp.Name, len(out), grp.opts.MaxLength)
	}
	return out, nil
}

// IsLeftDescent reports whether l(s·w) < l(w).
func (grp *Group) IsLeftDescent(s klcells.Generator, w klcells.Word) (bool, error) {
	if err := grp.checkWord(append(w[:len(w):len(w)], s)); err != nil {
		return false, err
	}
	return grp.negativeColumn(grp.inverseMatrix(w), s), nil
}

// IsRightDescent reports whether l(w·s) < l(w).
func (grp *Group) IsRightDescent(w klcells.Word, s klcells.Generator) (bool, error) {
	return grp.IsLeftDescent(s, w.Reverse())
}

// LeftDescents returns the left descent set of w in increasing order.
func (grp *Group) LeftDescents(w klcells.Word) ([]klcells.Generator, error) {
	if err := grp.checkWord(w); err != nil {
		return nil, err
	}
	A := grp.inverseMatrix(w)
	var desc []klcells.Generator
	for t := 1; t <= grp.rank; t++ {
		if grp.negativeColumn(A, klcells.Generator(t)) {
			desc = append(desc, klcells.Generator(t))
		}
	}
	return desc, nil
}

// Length returns l(w).
func (grp *Group) Length(w klcells.Word) (int, error) {
	red, err := grp.Reduce(w)
	if err != nil {
		return 0, err
	}
	return len(red), nil
}

// Multiply returns the normal form of x·y.
func (grp *Group) Multiply(x, y klcells.Word) (klcells.Word, error) {
	return grp.Reduce(x.Concat(y))
}

// Inverse returns the normal form of w^-1.
func (grp *Group) Inverse(w klcells.Word) (klcells.Word, error) {
	return grp.Reduce(w.Reverse())
}

// LongestElement returns the normal form of w0, or ErrOracleUnavailable if the group looks infinite.
func (grp *Group) LongestElement() (klcells.Word, error) {
	maxLen := grp.opts.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultOpts.MaxLength
	}
	w := klcells.Word{}
	for {
		desc, err := grp.LeftDescents(w)
		if err != nil {
			return nil, err
		}
		if len(desc) == grp.rank {
			return w, nil
		}
		if len(w) >= maxLen {
			return nil, errors.Wrapf(klcells.ErrOracleUnavailable, "%s: no longest element within length %d", grp.Name, maxLen)
		}
		next := klcells.Generator(1)
		for _, d := range desc {
			if d != next {
				break
			}
			next++
		}
		if w, err = grp.Reduce(w.Prepend(next)); err != nil {
			return nil, err
		}
	}
}

// BruhatInterval returns every x <= w in ShortLex order, using [e, s·v] = [e,v] ∪ s[e,v] for s·v > v.
func (grp *Group) BruhatInterval(w klcells.Word) ([]klcells.Word, error) {
	ivl, err := grp.interval(w)
	if err != nil {
		return nil, err
	}
	return ivl.words, nil
}

// BruhatLeq reports whether x <= w in the Bruhat order.
func (grp *Group) BruhatLeq(x, w klcells.Word) (bool, error) {
	x, err := grp.Reduce(x)
	if err != nil {
		return false, err
	}
	ivl, err := grp.interval(w)
	if err != nil {
		return false, err
	}
	_, has := ivl.has[x.Key()]
	return has, nil
}

func (grp *Group) interval(w klcells.Word) (*interval, error) {
	w, err := grp.Reduce(w)
	if err != nil {
		return nil, err
	}
	return grp.intervalOfReduced(w)
}

func (grp *Group) intervalOfReduced(w klcells.Word) (*interval, error) {
	key := w.Key()
	if ivl := grp.intervals[key]; ivl != nil {
		return ivl, nil
	}

	var ivl *interval
	if len(w) == 0 {
		ivl = &interval{
			words: []klcells.Word{{}},
			has:   map[klcells.WordKey]struct{}{"": {}},
		}
	} else {
		sub, err := grp.intervalOfReduced(w[1:])
		if err != nil {
			return nil, err
		}
		s := w[0]
		ivl = &interval{
			words: append(make([]klcells.Word, 0, 2*len(sub.words)), sub.words...),
			has:   make(map[klcells.WordKey]struct{}, 2*len(sub.words)),
		}
		for k := range sub.has {
			ivl.has[k] = struct{}{}
		}
		for _, x := range sub.words {
			sx, err := grp.Reduce(x.Prepend(s))
			if err != nil {
				return nil, err
			}
			if k := sx.Key(); !hasKey(ivl.has, k) {
				ivl.has[k] = struct{}{}
				ivl.words = append(ivl.words, sx)
			}
		}
		if max := grp.opts.MaxInterval; max > 0 && len(ivl.words) > max {
			return nil, errors.Wrapf(klcells.ErrOracleUnavailable, "%s: Bruhat interval below %v exceeds %d elements", grp.Name, w, max)
		}
		sort.Slice(ivl.words, func(i, j int) bool {
			return klcells.CompareWords(ivl.words[i], ivl.words[j]) < 0
		})
	}

	if err := grp.remember(len(ivl.words)); err != nil {
		return nil, err
	}
	if len(ivl.words) >= 10000 {
		klog.V(2).Infof("%s: Bruhat interval below %v has %d elements", grp.Name, w, len(ivl.words))
	}
	grp.intervals[key] = ivl
	return ivl, nil
}

// remember accounts for n new memo entries, failing once the total passes MaxMemo.
func (grp *Group) remember(n int) error {
	grp.memo += n
	if max := grp.opts.MaxMemo; max > 0 && grp.memo > max {
		return errors.Wrapf(klcells.ErrOracleUnavailable, "%s: memo passed %d entries", grp.Name, max)
	}
	return nil
}

// MemoSize returns the number of memo entries held, as counted against MaxMemo.
func (grp *Group) MemoSize() int {
	return grp.memo
}

func hasKey(set map[klcells.WordKey]struct{}, k klcells.WordKey) bool {
	_, has := set[k]
	return has
}
