package graph

import (
	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/decoder"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/ncw"
	"github.com/hastd/bikedfr/internal/threshold"
)

// cycleSentinel bounds the cycle finder's search when the caller has no
// stronger preference; a cycle that hasn't appeared within this many
// no-mask iterations is treated as "not found" rather than searched for
// indefinitely.
const cycleSentinel = 10000

// AbsorbingFailure is the result of certifying one decoding failure's
// stable diff as an absorbing set, optionally annotated with near-codeword
// overlap metrics.
type AbsorbingFailure struct {
	Supp         []uint32
	OddCheckNodes []int
	IsAbsorbing  bool
	Overlaps     *ncw.Overlaps
}

// symmetricDiff returns the sorted symmetric difference of two sorted
// supports.
func symmetricDiff(a, b []uint32) []uint32 {
	seen := map[uint32]bool{}
	for _, x := range a {
		seen[x] = !seen[x]
	}
	for _, x := range b {
		seen[x] = !seen[x]
	}
	out := make([]uint32, 0, len(seen))
	for x, in := range seen {
		if in {
			out = append(out, x)
		}
	}
	sortUint32(out)
	return out
}

func sortUint32(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// NewAbsorbingDecodingFailure certifies a decoding failure: it re-runs the
// decoder with cycle detection (a finite max_iters is always used, per the
// cycle finder's documented bound) to obtain the stable e_out, takes the
// symmetric difference against the planted error, certifies it against the
// key's Tanner graph, and — when computeOverlaps is set — annotates it with
// near-codeword overlap metrics.
func NewAbsorbingDecodingFailure(k *keys.Key, eIn *bitvec.SparseVector, oracle *threshold.Oracle, computeOverlaps bool) AbsorbingFailure {
	cyc := decoder.FindCycle(k, eIn, oracle, cycleSentinel)
	edges := Build(k)

	d := symmetricDiff(eIn.Support(), cyc.EOut)
	af := AbsorbingFailure{
		Supp:          d,
		OddCheckNodes: edges.OddCheckNodes(d),
		IsAbsorbing:   edges.IsAbsorbing(d),
	}
	if computeOverlaps {
		dVec := append([]uint32(nil), d...)
		overlaps := ncw.ComputeOverlaps(k, dVec)
		af.Overlaps = &overlaps
	}
	return af
}
