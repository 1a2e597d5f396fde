package libkl

import (
	"github.com/fine-structures/klcells/klcells"
)

// The helpers below work in H_n with the labeling m(1,2) = 5 and m(i,i+1) = 3, where two generators fail to
// commute exactly when they are adjacent integers.

// maxOnetwoSteps bounds the parabolic factor in <1,2>; a fully commutative element of I2(5) has length <= 4.
const maxOnetwoSteps = 4

func isNeighbor(a, b klcells.Generator) bool {
	return a == b+1 || b == a+1
}

func is12(g klcells.Generator) bool {
	return g == 1 || g == 2
}

// neighborsBefore returns the positions (at most two) of neighbors of s that precede the first s in y.
func neighborsBefore(s klcells.Generator, y klcells.Word) []int {
	var found []int
	end := y.IndexOf(s)
	for i := 0; i < end && len(found) < 2; i++ {
		if isNeighbor(y[i], s) {
			found = append(found, i)
		}
	}
	return found
}

// firstNeighbor returns the position of the first neighbor of s in y, or -1.
func firstNeighbor(s klcells.Generator, y klcells.Word) int {
	for i, g := range y {
		if isNeighbor(g, s) {
			return i
		}
	}
	return -1
}

func first12(y klcells.Word) int {
	for i, g := range y {
		if is12(g) {
			return i
		}
	}
	return -1
}

func removeFirst(s klcells.Generator, y klcells.Word) klcells.Word {
	i := y.IndexOf(s)
	out := make(klcells.Word, 0, len(y)-1)
	out = append(out, y[:i]...)
	return append(out, y[i+1:]...)
}

// OnetwoDecompose factors y = p·m where p lies in the parabolic subgroup <1,2> and is stripped from the left one
// generator at a time while the next 1 or 2 is a left descent, alternating, for at most four steps.
//
// A word with no 1 or 2 gives p = e and m = y.
func OnetwoDecompose(y klcells.Word) (parabolic, minimal klcells.Word) {
	parabolic = klcells.Word{}
	minimal = y
	f := first12(y)
	if f < 0 {
		return
	}
	s := y[f]
	for i := 0; i < maxOnetwoSteps; i++ {
		if !minimal.Contains(s) || len(neighborsBefore(s, minimal)) > 0 {
			break
		}
		parabolic = append(parabolic, s)
		minimal = removeFirst(s, minimal)
		s = 3 - s
	}
	return
}

// LeftJustify splits y into segments that alternate between <1,2>-parabolic factors and runs free of 1 and 2,
// pulling each <1,2> factor as far left as it goes.
func LeftJustify(y klcells.Word) []klcells.Word {
	var segs []klcells.Word
	remain := y
	for len(remain) > 0 {
		p, rest := OnetwoDecompose(remain)
		if len(p) > 0 {
			segs = append(segs, p)
		}
		f := first12(rest)
		if f < 0 {
			f = len(rest)
		}
		if f > 0 {
			segs = append(segs, rest[:f].Clone())
		}
		remain = rest[f:]
	}
	return segs
}

// RightJustify is LeftJustify performed from the right end.
func RightJustify(y klcells.Word) []klcells.Word {
	left := LeftJustify(y.Reverse())
	N := len(left)
	segs := make([]klcells.Word, N)
	for i, seg := range left {
		segs[N-1-i] = seg.Reverse()
	}
	return segs
}

// DihedralRuns splits w into maximal runs that either alternate between s and t or avoid both s and t.
//
// Concatenating the runs gives back w.
func DihedralRuns(w klcells.Word, s, t klcells.Generator) []klcells.Word {
	var runs []klcells.Word
	inPair := func(g klcells.Generator) bool { return g == s || g == t }

	start := 0
	for i := 1; i <= len(w); i++ {
		if i < len(w) {
			prev, cur := w[i-1], w[i]
			if inPair(prev) == inPair(cur) && !(inPair(cur) && prev == cur) {
				continue
			}
		}
		runs = append(runs, w[start:i].Clone())
		start = i
	}
	return runs
}

// DihedralRuns12 is DihedralRuns over the pair {1,2}.
func DihedralRuns12(w klcells.Word) []klcells.Word {
	return DihedralRuns(w, 1, 2)
}
