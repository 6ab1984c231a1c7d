// Package ncw implements error-vector tagging: uniformly random error
// vectors, and vectors sampled from the near-codeword sets C, N, 2N defined
// relative to a specific key.
package ncw

import (
	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
)

// Class identifies one of the three near-codeword families.
type Class int

const (
	ClassC Class = iota
	ClassN
	Class2N
)

func (c Class) String() string {
	switch c {
	case ClassC:
		return "C"
	case ClassN:
		return "N"
	case Class2N:
		return "2N"
	}
	return "unknown"
}

// MaxL returns the largest overlap parameter l meaningful for the class:
// ErrorWeight for C and 2N, and BlockWeight for N (base set drawn from a
// single block).
func (c Class) MaxL() int {
	switch c {
	case ClassN:
		return params.BlockWeight
	default:
		return params.ErrorWeight
	}
}

// Set names a specific near-codeword set A_{t,l}(S).
type Set struct {
	Class Class
	L     int
	Delta int
}

// SourceKind distinguishes a tagged error vector's provenance.
type SourceKind int

const (
	SourceRandom SourceKind = iota
	SourceNearCodeword
	SourceOther
	SourceUnknown
)

// Source is the provenance tag attached to a tagged error vector.
type Source struct {
	Kind SourceKind
	NCW  Set // meaningful only when Kind == SourceNearCodeword
}

// Tagged is a sparse error vector of weight ErrorWeight together with its
// provenance.
type Tagged struct {
	Vector *bitvec.SparseVector
	Source Source
}

// RandomTagged draws t distinct indices from [0, n) uniformly and tags the
// result Random.
func RandomTagged(rng bitvec.RNG) *Tagged {
	v := bitvec.Random(params.ErrorWeight, uint32(params.CodeLength()), rng)
	return &Tagged{Vector: v, Source: Source{Kind: SourceRandom}}
}

// baseSetC returns h1.support ∪ (h0.support shifted into the second block),
// the base set for class C.
func baseSetC(k *keys.Key) []uint32 {
	r := uint32(params.BlockLength)
	base := make([]uint32, 0, 2*params.BlockWeight)
	base = append(base, k.H1.Support()...)
	for _, i := range k.H0.Support() {
		base = append(base, i+r)
	}
	return base
}

// baseSetN returns a single block's support, unshifted for h0 or shifted
// into the second block for h1, with the block chosen uniformly at random.
func baseSetN(k *keys.Key, rng bitvec.RNG) []uint32 {
	r := uint32(params.BlockLength)
	useH1 := rng.Uint64()&1 == 1
	if !useH1 {
		return append([]uint32(nil), k.H0.Support()...)
	}
	out := make([]uint32, 0, params.BlockWeight)
	for _, i := range k.H1.Support() {
		out = append(out, i+r)
	}
	return out
}

func symmetricDifference(a, b []uint32) []uint32 {
	inA := make(map[uint32]struct{}, len(a))
	for _, v := range a {
		inA[v] = struct{}{}
	}
	inB := make(map[uint32]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	result := make([]uint32, 0, len(a)+len(b))
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			result = append(result, v)
		}
	}
	for _, v := range b {
		if _, ok := inA[v]; !ok {
			result = append(result, v)
		}
	}
	return result
}

func shiftSet(set []uint32, shift uint32, mod uint32) []uint32 {
	out := make([]uint32, len(set))
	for i, v := range set {
		out[i] = (v + shift) % mod
	}
	return out
}

// baseSet2N builds the class-2N base set as the symmetric difference of two
// independently drawn class-N base sets, one cyclically shifted by a random
// block-wise amount, retrying until |B| >= l.
func baseSet2N(k *keys.Key, l int, rng bitvec.RNG) []uint32 {
	for {
		b1 := baseSetN(k, rng)
		b2 := baseSetN(k, rng)
		shift := uniformUint32(rng, uint32(params.BlockLength))
		b2 = shiftBlockwise(b2, shift)
		base := symmetricDifference(b1, b2)
		if len(base) >= l {
			return base
		}
	}
}

// uniformUint32 mirrors bitvec's unexported Lemire-rejection sampler; kept
// local since this package samples from arbitrary-sized base sets, not
// fixed-weight supports.
func uniformUint32(rng bitvec.RNG, bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	for {
		x := uint32(rng.Uint64())
		m := uint64(x) * uint64(bound)
		lo := uint32(m)
		if lo < bound {
			threshold := -bound % bound
			for lo < threshold {
				x = uint32(rng.Uint64())
				m = uint64(x) * uint64(bound)
				lo = uint32(m)
			}
		}
		return uint32(m >> 32)
	}
}

// sampleWithoutReplacement draws count distinct elements from pool (order
// irrelevant, duplicates impossible by construction) using rejection
// sampling over pool's indices.
func sampleWithoutReplacement(pool []uint32, count int, rng bitvec.RNG) []uint32 {
	chosen := make(map[int]struct{}, count)
	out := make([]uint32, 0, count)
	for len(out) < count {
		idx := int(uniformUint32(rng, uint32(len(pool))))
		if _, dup := chosen[idx]; dup {
			continue
		}
		chosen[idx] = struct{}{}
		out = append(out, pool[idx])
	}
	return out
}

// complement returns [0, n) minus base, as a sorted slice.
func complement(base []uint32, n uint32) []uint32 {
	in := make(map[uint32]struct{}, len(base))
	for _, v := range base {
		in[v] = struct{}{}
	}
	out := make([]uint32, 0, int(n)-len(base))
	for i := uint32(0); i < n; i++ {
		if _, ok := in[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// sampleFromBase constructs a weight-t support by drawing l indices from
// base and t-l from its complement, then applying a uniform block-wise
// cyclic shift, tagging the result NearCodeword{class, l, delta}.
func sampleFromBase(class Class, base []uint32, l int, rng bitvec.RNG) *Tagged {
	n := uint32(params.CodeLength())
	t := params.ErrorWeight
	fromBase := sampleWithoutReplacement(base, l, rng)
	fromOutside := sampleWithoutReplacement(complement(base, n), t-l, rng)

	supp := make([]uint32, 0, t)
	supp = append(supp, fromBase...)
	supp = append(supp, fromOutside...)

	shift := uniformUint32(rng, uint32(params.BlockLength))
	shifted := shiftBlockwise(supp, shift)

	v, err := bitvec.NewFromSupport(t, n, shifted)
	if err != nil {
		panic("ncw: sampled support violated SV invariants: " + err.Error())
	}
	delta := len(base) + t - 2*l
	return &Tagged{Vector: v, Source: Source{Kind: SourceNearCodeword, NCW: Set{Class: class, L: l, Delta: delta}}}
}

// shiftBlockwise applies a single shift in [0, BlockLength) to a support
// over [0, 2*BlockLength), shifting within each element's own block.
func shiftBlockwise(supp []uint32, shift uint32) []uint32 {
	r := uint32(params.BlockLength)
	out := make([]uint32, len(supp))
	for i, v := range supp {
		if v < r {
			out[i] = (v + shift) % r
		} else {
			out[i] = r + (v-r+shift)%r
		}
	}
	return out
}

// SampleC draws a tagged error vector from A_{t,l}(C).
func SampleC(k *keys.Key, l int, rng bitvec.RNG) *Tagged {
	return sampleFromBase(ClassC, baseSetC(k), l, rng)
}

// SampleN draws a tagged error vector from A_{t,l}(N).
func SampleN(k *keys.Key, l int, rng bitvec.RNG) *Tagged {
	return sampleFromBase(ClassN, baseSetN(k, rng), l, rng)
}

// Sample2N draws a tagged error vector from A_{t,l}(2N).
func Sample2N(k *keys.Key, l int, rng bitvec.RNG) *Tagged {
	return sampleFromBase(Class2N, baseSet2N(k, l, rng), l, rng)
}

// Sample draws a tagged error vector for the given class and overlap l.
func Sample(class Class, k *keys.Key, l int, rng bitvec.RNG) *Tagged {
	switch class {
	case ClassC:
		return SampleC(k, l, rng)
	case ClassN:
		return SampleN(k, l, rng)
	case Class2N:
		return Sample2N(k, l, rng)
	}
	panic("ncw: unknown class")
}
