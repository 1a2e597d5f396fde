package libkl

// components returns the strongly connected components of the graph on vertices 0..N-1 reachable from the given
// roots, in reverse topological order: every edge leaving component i enters a component j <= i.
//
// Recursive Tarjan, as in kactl's SCC.h.
func components(N int, edges func(v int) []int, roots ...int) (comps [][]int, compOf []int) {
	val := make([]int, N)
	compOf = make([]int, N)
	for i := range compOf {
		compOf[i] = -1
	}
	time := 0
	var z []int

	var rec func(v int) int
	rec = func(v int) int {
		time++
		low := time
		val[v] = low
		stackH := len(z)
		z = append(z, v)

		for _, e := range edges(v) {
			if compOf[e] >= 0 {
				continue
			}
			eLow := val[e]
			if eLow == 0 {
				eLow = rec(e)
			}
			if eLow < low {
				low = eLow
			}
		}

		if low == val[v] {
			comp := append([]int(nil), z[stackH:]...)
			for _, x := range comp {
				compOf[x] = len(comps)
			}
			z = z[:stackH]
			comps = append(comps, comp)
		}
		val[v] = low
		return low
	}

	for _, r := range roots {
		if compOf[r] < 0 && val[r] == 0 {
			rec(r)
		}
	}
	return comps, compOf
}
