package libkl

import (
	"math/big"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// CellGraph is the exploration graph of a seed: vertices are the canonical words reachable by multiplying with
// generators, and z -> y whenever y != z appears in such a product of c_z.
type CellGraph struct {
	Side     klcells.CellSide
	Seed     klcells.Word
	Vertices []klcells.Word
	Edges    [][]int

	index map[klcells.WordKey]int
}

// IndexOf returns the vertex index of the canonical word w, or -1.
func (G *CellGraph) IndexOf(w klcells.Word) int {
	if i, ok := G.index[w.Key()]; ok {
		return i
	}
	return -1
}

// NumEdges returns the number of edges.
func (G *CellGraph) NumEdges() int {
	n := 0
	for _, out := range G.Edges {
		n += len(out)
	}
	return n
}

// ComponentOf returns the strongly connected component containing vertex v, in ShortLex order.
func (G *CellGraph) ComponentOf(v int) []klcells.Word {
	comps, compOf := components(len(G.Vertices), func(i int) []int { return G.Edges[i] }, v)
	return sortedWords(wordsAt(G.Vertices, comps[compOf[v]]))
}

// Cell returns the component containing the seed.
func (G *CellGraph) Cell() []klcells.Word {
	return G.ComponentOf(0)
}

func wordsAt(words []klcells.Word, idx []int) []klcells.Word {
	out := make([]klcells.Word, len(idx))
	for i, j := range idx {
		out[i] = words[j]
	}
	return out
}

func sortedWords(words []klcells.Word) []klcells.Word {
	set := treeset.NewWith(klcells.WordComparator)
	for _, w := range words {
		set.Add(w.Key())
	}
	out := make([]klcells.Word, 0, set.Size())
	for it := set.Iterator(); it.Next(); {
		out = append(out, it.Value().(klcells.WordKey).Word())
	}
	return out
}

// Explore builds the exploration graph of seed under left, right, or two-sided multiplication by generators.
//
// The closure is finite for the a-value 2 cells this is used on but not in general, so opts.MaxVertices bounds it.
func Explore(m klcells.Multiplier, seed klcells.Word, opts klcells.CellOpts) (*CellGraph, error) {
	M := m.Matrix()
	rank := M.Rank()

	y, err := m.Canonical(seed)
	if err != nil {
		return nil, err
	}
	if opts.AValue > 0 {
		if a := AValue(M, y); a != opts.AValue {
			return nil, errors.Wrapf(klcells.ErrStructuralAssumption, "%v has a-value %d, not %d", y, a, opts.AValue)
		}
	}
	side := opts.Side
	if side == 0 {
		side = klcells.LeftCell
	}

	G := &CellGraph{
		Side:  side,
		Seed:  y,
		index: make(map[klcells.WordKey]int),
	}
	addVertex := func(w klcells.Word) int {
		i := len(G.Vertices)
		G.index[w.Key()] = i
		G.Vertices = append(G.Vertices, w)
		G.Edges = append(G.Edges, nil)
		return i
	}
	addVertex(y)

	todo := linkedlistqueue.New()
	todo.Enqueue(0)
	for !todo.Empty() {
		item, _ := todo.Dequeue()
		zi := item.(int)
		z := G.Vertices[zi]
		linked := make(map[int]struct{})

		for s := 1; s <= rank; s++ {
			var prods []klcells.Combination
			if side == klcells.LeftCell || side == klcells.TwoSidedCell {
				prod, err := m.STimesW(klcells.Generator(s), z)
				if err != nil {
					return nil, err
				}
				prods = append(prods, prod)
			}
			if side == klcells.RightCell || side == klcells.TwoSidedCell {
				prod, err := WTimesS(m, z, klcells.Generator(s))
				if err != nil {
					return nil, err
				}
				prods = append(prods, prod)
			}

			for _, prod := range prods {
				for _, k := range prod.Keys() {
					yi, seen := G.index[k]
					if seen && yi == zi {
						continue
					}
					if !seen {
						if opts.MaxVertices > 0 && len(G.Vertices) >= opts.MaxVertices {
							return nil, errors.Wrapf(klcells.ErrResourceExhausted, "exploring %v passed %d vertices", y, opts.MaxVertices)
						}
						yi = addVertex(k.Word())
						todo.Enqueue(yi)
						if len(G.Vertices)%1000 == 0 {
							klog.V(2).Infof("exploring %v (%v): %d vertices, %d queued", y, side, len(G.Vertices), todo.Size())
						}
					}
					if _, dupe := linked[yi]; !dupe {
						linked[yi] = struct{}{}
						G.Edges[zi] = append(G.Edges[zi], yi)
					}
				}
			}
		}
	}
	return G, nil
}

// Cell returns the left, right, or two-sided cell of seed as selected by opts.Side.
func Cell(m klcells.Multiplier, seed klcells.Word, opts klcells.CellOpts) ([]klcells.Word, error) {
	if opts.Side == klcells.RightCell {
		return RightCell(m, seed, opts)
	}
	G, err := Explore(m, seed, opts)
	if err != nil {
		return nil, err
	}
	return G.Cell(), nil
}

// LeftCell returns the left cell of seed in ShortLex order.
func LeftCell(m klcells.Multiplier, seed klcells.Word, opts klcells.CellOpts) ([]klcells.Word, error) {
	opts.Side = klcells.LeftCell
	return Cell(m, seed, opts)
}

// RightCell returns the right cell of seed, the inverse of the left cell of seed^-1.
func RightCell(m klcells.Multiplier, seed klcells.Word, opts klcells.CellOpts) ([]klcells.Word, error) {
	inv, err := Inverse(m, seed)
	if err != nil {
		return nil, err
	}
	left, err := LeftCell(m, inv, opts)
	if err != nil {
		return nil, err
	}
	right, err := CellInverse(m, left)
	if err != nil {
		return nil, err
	}
	return sortedWords(right), nil
}

// TwoSidedCell returns the two-sided cell of seed in ShortLex order.
func TwoSidedCell(m klcells.Multiplier, seed klcells.Word, opts klcells.CellOpts) ([]klcells.Word, error) {
	opts.Side = klcells.TwoSidedCell
	return Cell(m, seed, opts)
}

// CellInverse returns the canonical inverse of each element, in the given order.
func CellInverse(m klcells.Multiplier, cell []klcells.Word) ([]klcells.Word, error) {
	out := make([]klcells.Word, len(cell))
	for i, w := range cell {
		inv, err := Inverse(m, w)
		if err != nil {
			return nil, err
		}
		out[i] = inv
	}
	return out, nil
}

// CellIntersection returns the elements of cell whose inverse is also in cell, in ShortLex order.
func CellIntersection(m klcells.Multiplier, cell []klcells.Word) ([]klcells.Word, error) {
	members := treeset.NewWith(klcells.WordComparator)
	for _, w := range cell {
		members.Add(w.Key())
	}
	both := treeset.NewWith(klcells.WordComparator)
	for _, w := range cell {
		inv, err := Inverse(m, w)
		if err != nil {
			return nil, err
		}
		if members.Contains(inv.Key()) {
			both.Add(w.Key())
		}
	}
	out := make([]klcells.Word, 0, both.Size())
	for it := both.Iterator(); it.Next(); {
		out = append(out, it.Value().(klcells.WordKey).Word())
	}
	return out, nil
}

// LeftCellsIn partitions a two-sided cell into its left cells, ordered by their smallest elements.
func LeftCellsIn(m klcells.Multiplier, cell []klcells.Word, opts klcells.CellOpts) ([][]klcells.Word, error) {
	remain := treeset.NewWith(klcells.WordComparator)
	for _, w := range cell {
		remain.Add(w.Key())
	}

	byMin := redblacktree.NewWith(klcells.WordComparator)
	for !remain.Empty() {
		it := remain.Iterator()
		it.First()
		first := it.Value().(klcells.WordKey)

		left, err := LeftCell(m, first.Word(), opts)
		if err != nil {
			return nil, err
		}
		for _, w := range left {
			remain.Remove(w.Key())
		}
		byMin.Put(left[0].Key(), left)
	}

	out := make([][]klcells.Word, 0, byMin.Size())
	for it := byMin.Iterator(); it.Next(); {
		out = append(out, it.Value().([]klcells.Word))
	}
	return out, nil
}

// A2Pairs returns the products ij (j >= i+2) of two commuting generators of H_n: 13, 14, ..., 24, ...
func A2Pairs(n int) []klcells.Word {
	var pairs []klcells.Word
	for i := 1; i <= n; i++ {
		for j := i + 2; j <= n; j++ {
			pairs = append(pairs, klcells.Word{klcells.Generator(i), klcells.Generator(j)})
		}
	}
	return pairs
}

// FCCardinality returns the number of fully commutative elements of H_n (including the identity):
// C(2n+2, n+1) - 2^(n+2) + n + 3.
func FCCardinality(n int) *big.Int {
	count := new(big.Int).Binomial(int64(2*n+2), int64(n+1))
	count.Sub(count, new(big.Int).Lsh(big.NewInt(1), uint(n+2)))
	return count.Add(count, big.NewInt(int64(n+3)))
}

// SubregularCardinality returns the number of subregular elements of H_n (including the identity): 2n^2 + 1.
func SubregularCardinality(n int) int64 {
	return 2*int64(n)*int64(n) + 1
}
