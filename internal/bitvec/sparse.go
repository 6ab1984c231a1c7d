// Package bitvec implements fixed-weight sparse and fixed-length dense GF(2)
// vectors, the sampling and support operations the rest of this module
// builds on.
package bitvec

import (
	"fmt"
	"sort"
)

// SparseVector is a fixed-weight support of distinct indices in [0, Length).
// Its support is kept sorted ascending at all times except momentarily
// during construction.
type SparseVector struct {
	weight  int
	length  uint32
	support []uint32
}

// NewFromSupport validates support (length, bounds, distinctness) and
// returns a sorted SparseVector, or an error wrapping one of the sentinel
// errors in errors.go.
func NewFromSupport(weight int, length uint32, support []uint32) (*SparseVector, error) {
	if len(support) != weight {
		return nil, fmt.Errorf("%w: got %d indices, want %d", ErrWrongWeight, len(support), weight)
	}
	cp := make([]uint32, len(support))
	copy(cp, support)
	v := &SparseVector{weight: weight, length: length, support: cp}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.Sort()
	return v, nil
}

// Validate checks the three SV<W,L> invariants: correct count, in-range
// entries, pairwise distinctness.
func (v *SparseVector) Validate() error {
	if len(v.support) != v.weight {
		return fmt.Errorf("%w: got %d indices, want %d", ErrWrongWeight, len(v.support), v.weight)
	}
	seen := make(map[uint32]struct{}, len(v.support))
	for _, idx := range v.support {
		if idx >= v.length {
			return fmt.Errorf("%w: index %d >= length %d", ErrOutOfBounds, idx, v.length)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: %d", ErrRepeatedIndex, idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// Sort puts the support into ascending order in place.
func (v *SparseVector) Sort() {
	sort.Slice(v.support, func(i, j int) bool { return v.support[i] < v.support[j] })
}

// Sorted returns a sorted copy of v.
func (v *SparseVector) Sorted() *SparseVector {
	cp := &SparseVector{weight: v.weight, length: v.length, support: append([]uint32(nil), v.support...)}
	cp.Sort()
	return cp
}

func (v *SparseVector) Weight() int    { return v.weight }
func (v *SparseVector) Length() uint32 { return v.length }

// Get returns the i-th support entry (support is sorted).
func (v *SparseVector) Get(i int) uint32 { return v.support[i] }

// Support returns a copy of the sorted support slice.
func (v *SparseVector) Support() []uint32 {
	return append([]uint32(nil), v.support...)
}

// Contains reports whether idx is present in the support.
func (v *SparseVector) Contains(idx uint32) bool {
	for _, s := range v.support {
		if s == idx {
			return true
		}
	}
	return false
}

// insertSortedNoinc inserts value into array[:maxI] (extending to maxI+1
// entries) keeping the slice sorted, without perturbing value itself.
func insertSortedNoinc(array []uint32, value uint32, maxI int) {
	idx := 0
	for idx < maxI && array[idx] <= value {
		idx++
	}
	for j := maxI; j > idx; j-- {
		array[j] = array[j-1]
	}
	array[idx] = value
}

// insertSortedInc inserts value into array[:maxI], incrementing it past each
// array entry it is found not to precede so the final distribution over
// "not already present" values stays uniform (mirrors the reference's
// insert_sorted_inc used by uniform sparse-vector sampling).
func insertSortedInc(array []uint32, value uint32, maxI int) {
	idx := 0
	for idx < maxI && array[idx] <= value {
		idx++
		value++
	}
	for j := maxI; j > idx; j-- {
		array[j] = array[j-1]
	}
	array[idx] = value
}

// Random draws a uniformly random SparseVector of the given weight and
// length using rng.
func Random(weight int, length uint32, rng RNG) *SparseVector {
	supp := make([]uint32, weight)
	for i := 0; i < weight; i++ {
		r := uniformUint32(rng, length-uint32(i))
		insertSortedInc(supp, r, i)
	}
	return &SparseVector{weight: weight, length: length, support: supp}
}

// Dense converts v to its dense bit-vector image.
func (v *SparseVector) Dense() *DenseVector {
	d := NewDenseVector(int(v.length))
	for _, i := range v.support {
		d.Flip(int(i))
	}
	return d
}

// CyclicShift returns a new SparseVector with every entry shifted by shift
// modulo Length, re-sorted.
func (v *SparseVector) CyclicShift(shift uint32) *SparseVector {
	supp := make([]uint32, v.weight)
	for j := 0; j < v.weight; j++ {
		insertSortedNoinc(supp, (v.Get(j)+shift)%v.length, j)
	}
	return &SparseVector{weight: v.weight, length: v.length, support: supp}
}

// sortedIntersectionCount counts common elements of two sorted equal-length
// slices in O(weight).
func sortedIntersectionCount(a, b []uint32) int {
	i, j, count := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			count++
			i++
			j++
		}
	}
	return count
}

// ProductWeight returns |support(v) ∩ support(other)| for equal-weight,
// equal-length, sorted vectors.
func (v *SparseVector) ProductWeight(other *SparseVector) int {
	return sortedIntersectionCount(v.support, other.support)
}

// RelativeShifts returns the WxW matrix of (v[i]-other[j]) mod Length.
func (v *SparseVector) RelativeShifts(other *SparseVector) [][]uint32 {
	length := v.length
	shifts := make([][]uint32, v.weight)
	for i := 0; i < v.weight; i++ {
		shifts[i] = make([]uint32, other.weight)
		for j := 0; j < other.weight; j++ {
			a, b := v.Get(i), other.Get(j)
			if a < b {
				shifts[i][j] = length + a - b
			} else {
				shifts[i][j] = a - b
			}
		}
	}
	return shifts
}

// MaxShiftedProductWeightGeq reports whether some cyclic shift s satisfies
// |support(v) ∩ (support(other)+s)| >= threshold.
func (v *SparseVector) MaxShiftedProductWeightGeq(other *SparseVector, threshold uint8) bool {
	shifts := v.RelativeShifts(other)
	counts := make([]int, v.length)
	for i := range shifts {
		for _, s := range shifts[i] {
			counts[s]++
			if counts[s] >= int(threshold) {
				return true
			}
		}
	}
	return false
}

// ShiftsAboveThreshold reports whether some delta in [1, Length/2] is the
// (cyclic, unordered) difference of at least threshold pairs in the support.
func (v *SparseVector) ShiftsAboveThreshold(threshold uint8) bool {
	counts := make([]int, v.length)
	for i := 0; i < v.weight; i++ {
		for j := i + 1; j < v.weight; j++ {
			diff := v.Get(j) - v.Get(i)
			delta := diff
			if other := v.length - diff; other < delta {
				delta = other
			}
			counts[delta]++
			if counts[delta] >= int(threshold) {
				return true
			}
		}
	}
	return false
}
