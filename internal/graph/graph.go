// Package graph builds the Tanner graph implied by a BIKE key and certifies
// candidate variable-node supports as absorbing sets.
package graph

import (
	"sort"

	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
)

// indexCounter is a vector-based multiplicity counter over a small,
// known-bounded index range, reimplemented from the reference's
// vector-based counter rather than reaching for a hash map.
type indexCounter struct {
	counts []int
}

func newIndexCounter(size int) *indexCounter {
	return &indexCounter{counts: make([]int, size)}
}

func (c *indexCounter) increment(idx int) {
	c.counts[idx]++
}

func (c *indexCounter) count(idx int) int {
	if idx < 0 || idx >= len(c.counts) {
		return 0
	}
	return c.counts[idx]
}

// Edges is the Tanner graph induced by a key: for each variable node
// v in [0, 2L), the W check nodes (indices in [0, L)) it is connected to.
type Edges struct {
	w      int
	l      int
	checks [][]int // checks[v] has length w
}

// Build constructs the edge table from a key: for k in [0, L) and i in
// [0, W), the k-th copy of block b (b=0 uses H0, b=1 uses H1) contributes
// variable v=(h_b[i]+k) mod L + b*L connected to check k.
func Build(k *keys.Key) *Edges {
	l := params.BlockLength
	w := params.BlockWeight
	n := params.CodeLength()

	checks := make([][]int, n)
	for v := range checks {
		checks[v] = make([]int, 0, w)
	}

	blocks := [2]*struct{ supp []uint32 }{
		{supp: k.H0.Support()},
		{supp: k.H1.Support()},
	}

	for b, blk := range blocks {
		for _, hi := range blk.supp {
			for kk := 0; kk < l; kk++ {
				v := (int(hi)+kk)%l + b*l
				checks[v] = append(checks[v], kk)
			}
		}
	}

	return &Edges{w: w, l: l, checks: checks}
}

// CheckMultiplicity returns m[c] = #{(v,c) : v in d, (v,c) in edges} for
// every check c in [0, L), given as a dense array indexed by check.
func (e *Edges) CheckMultiplicity(d []uint32) []int {
	counter := newIndexCounter(e.l)
	for _, v := range d {
		for _, c := range e.checks[v] {
			counter.increment(c)
		}
	}
	return counter.counts
}

// OddCheckNodes returns the sorted list of check nodes with odd multiplicity
// under candidate support d.
func (e *Edges) OddCheckNodes(d []uint32) []int {
	m := e.CheckMultiplicity(d)
	var odd []int
	for c, cnt := range m {
		if cnt%2 == 1 {
			odd = append(odd, c)
		}
	}
	sort.Ints(odd)
	return odd
}

// IsAbsorbing reports whether d is an absorbing set: every v in d has
// strictly fewer than ceil((W+1)/2) odd-multiplicity check neighbours among
// its own W incident checks.
func (e *Edges) IsAbsorbing(d []uint32) bool {
	m := e.CheckMultiplicity(d)
	majority := (e.w + 1 + 1) / 2 // ceil((W+1)/2)
	for _, v := range d {
		oddCount := 0
		for _, c := range e.checks[v] {
			if m[c]%2 == 1 {
				oddCount++
			}
		}
		if oddCount >= majority {
			return false
		}
	}
	return true
}
