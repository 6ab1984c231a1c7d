package ncw

import (
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
)

// Overlaps reports, for each near-codeword class, the maximum overlap
// between a candidate support D and any shifted pattern of that class.
type Overlaps struct {
	C, N, TwoN int
}

func toSet(s []uint32) map[uint32]struct{} {
	m := make(map[uint32]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

func overlapCount(d map[uint32]struct{}, pattern []uint32) int {
	count := 0
	for _, v := range pattern {
		if _, ok := d[v]; ok {
			count++
		}
	}
	return count
}

// maxShiftedOverlapBlockwise returns the maximum, over all block-wise shifts
// in [0, BlockLength), of |D ∩ shift(pattern)|.
func maxShiftedOverlapBlockwise(d map[uint32]struct{}, pattern []uint32) int {
	best := 0
	for shift := uint32(0); shift < uint32(params.BlockLength); shift++ {
		shifted := shiftBlockwise(pattern, shift)
		if c := overlapCount(d, shifted); c > best {
			best = c
		}
	}
	return best
}

// patternsC returns the single deterministic pattern for class C.
func patternsC(k *keys.Key) [][]uint32 {
	return [][]uint32{baseSetC(k)}
}

// patternsN returns the two deterministic patterns for class N: h0
// unshifted, and h1 shifted into the second block.
func patternsN(k *keys.Key) [][]uint32 {
	r := uint32(params.BlockLength)
	h0 := k.H0.Support()
	h1Supp := k.H1.Support()
	h1shifted := make([]uint32, len(h1Supp))
	for i, v := range h1Supp {
		h1shifted[i] = v + r
	}
	return [][]uint32{h0, h1shifted}
}

// patterns2N returns the 4*BlockLength patterns for class 2N: every
// symmetric difference of an N-pattern with a block-wise shift of another
// N-pattern, ranging the shift over [0, BlockLength).
func patterns2N(k *keys.Key) [][]uint32 {
	base := patternsN(k)
	out := make([][]uint32, 0, 4*params.BlockLength)
	for _, pi := range base {
		for _, pj := range base {
			for shift := uint32(0); shift < uint32(params.BlockLength); shift++ {
				out = append(out, symmetricDifference(pi, shiftBlockwise(pj, shift)))
			}
		}
	}
	return out
}

// ComputeOverlaps computes NcwOverlaps{c,n,2n} for a candidate support D
// against the key's deterministic near-codeword patterns.
func ComputeOverlaps(k *keys.Key, d []uint32) Overlaps {
	dSet := toSet(d)
	var o Overlaps
	for _, p := range patternsC(k) {
		if v := maxShiftedOverlapBlockwise(dSet, p); v > o.C {
			o.C = v
		}
	}
	for _, p := range patternsN(k) {
		if v := maxShiftedOverlapBlockwise(dSet, p); v > o.N {
			o.N = v
		}
	}
	for _, p := range patterns2N(k) {
		if v := maxShiftedOverlapBlockwise(dSet, p); v > o.TwoN {
			o.TwoN = v
		}
	}
	return o
}
