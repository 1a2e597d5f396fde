package libkl

import (
	"sort"

	"github.com/fine-structures/klcells/klcells"
)

// Heap is the partial order on the positions of a word: i precedes j when i < j and a chain of non-commuting
// generators links position i to position j.
//
// Heaps of words that differ only by commutations are isomorphic, so heap invariants are invariants of
// fully commutative elements.
type Heap struct {
	M      klcells.CoxeterMatrix
	Word   klcells.Word
	Height []int // Height[i] is the length of the longest chain ending at i (minimal positions have height 1)

	less [][]bool // less[i][j] iff i < j in the heap order
}

// NewHeap forms the heap of w with respect to M.
func NewHeap(M klcells.CoxeterMatrix, w klcells.Word) *Heap {
	N := len(w)
	h := &Heap{
		M:      M,
		Word:   w,
		Height: make([]int, N),
		less:   make([][]bool, N),
	}
	for i := range h.less {
		h.less[i] = make([]bool, N)
	}

	for j := 0; j < N; j++ {
		h.Height[j] = 1
		for i := j - 1; i >= 0; i-- {
			if M.Related(w[i], w[j]) {
				h.less[i][j] = true
			} else {
				for k := i + 1; k < j; k++ {
					if h.less[i][k] && h.less[k][j] {
						h.less[i][j] = true
						break
					}
				}
			}
			if h.less[i][j] && h.Height[i]+1 > h.Height[j] {
				h.Height[j] = h.Height[i] + 1
			}
		}
	}
	return h
}

// Len returns the number of positions.
func (h *Heap) Len() int {
	return len(h.Word)
}

// Less reports whether position i strictly precedes position j.
func (h *Heap) Less(i, j int) bool {
	return h.less[i][j]
}

// Levels groups positions by height, lowest level first.
func (h *Heap) Levels() [][]int {
	var levels [][]int
	for i, ht := range h.Height {
		for len(levels) < ht {
			levels = append(levels, nil)
		}
		levels[ht-1] = append(levels[ht-1], i)
	}
	return levels
}

// CanonicalWord reads the heap level by level from the bottom, each level in increasing generator order.
//
// Words with isomorphic heaps yield the same canonical word.
func (h *Heap) CanonicalWord() klcells.Word {
	out := make(klcells.Word, 0, len(h.Word))
	for _, level := range h.Levels() {
		start := len(out)
		for _, i := range level {
			out = append(out, h.Word[i])
		}
		run := out[start:]
		sort.Slice(run, func(i, j int) bool { return run[i] < run[j] })
	}
	return out
}

// AValue returns the size of the largest antichain of the heap.
//
// By Dilworth's theorem this is the number of positions minus a maximum matching of the strict order
// seen as a bipartite graph.
func (h *Heap) AValue() int {
	N := len(h.Word)
	matchedTo := make([]int, N)
	for i := range matchedTo {
		matchedTo[i] = -1
	}

	var seen []bool
	var augment func(i int) bool
	augment = func(i int) bool {
		for j := i + 1; j < N; j++ {
			if !h.less[i][j] || seen[j] {
				continue
			}
			seen[j] = true
			if matchedTo[j] < 0 || augment(matchedTo[j]) {
				matchedTo[j] = i
				return true
			}
		}
		return false
	}

	matching := 0
	for i := 0; i < N; i++ {
		seen = make([]bool, N)
		if augment(i) {
			matching++
		}
	}
	return N - matching
}

// IsFullyCommutative reports whether the word is reduced and fully commutative.
//
// That holds exactly when no covering relation joins two equal generators, and no convex chain alternates
// between generators s and t for m(s,t) >= 3 steps.
func (h *Heap) IsFullyCommutative() bool {
	N := len(h.Word)
	w := h.Word
	interval := make([]int, 0, N)

	for a := 0; a < N; a++ {
		for b := a + 1; b < N; b++ {
			if !h.less[a][b] {
				continue
			}
			interval = append(interval[:0], a)
			for k := a + 1; k < b; k++ {
				if h.less[a][k] && h.less[k][b] {
					interval = append(interval, k)
				}
			}
			interval = append(interval, b)

			if len(interval) == 2 {
				if w[a] == w[b] {
					return false
				}
				continue
			}

			s, t := w[a], w[interval[1]]
			m := h.M.M(s, t)
			if s == t || m == klcells.Infinity || m < 3 || len(interval) != m {
				continue
			}
			isChain := true
			for i := 1; i < len(interval) && isChain; i++ {
				if !h.less[interval[i-1]][interval[i]] {
					isChain = false
				}
				want := s
				if i%2 == 1 {
					want = t
				}
				if w[interval[i]] != want {
					isChain = false
				}
			}
			if isChain {
				return false
			}
		}
	}
	return true
}

// AValue returns the heap a-value of w (meaningful for reduced fully commutative words).
func AValue(M klcells.CoxeterMatrix, w klcells.Word) int {
	return NewHeap(M, w).AValue()
}

// CanonicalWord returns the heap normal form of w.
func CanonicalWord(M klcells.CoxeterMatrix, w klcells.Word) klcells.Word {
	return NewHeap(M, w).CanonicalWord()
}

// IsFullyCommutative reports whether w is a reduced word of a fully commutative element.
func IsFullyCommutative(M klcells.CoxeterMatrix, w klcells.Word) bool {
	return NewHeap(M, w).IsFullyCommutative()
}
