// Package keys implements the QC-MDPC key model: a pair of circulant blocks
// (h0, h1), weak-key filters and the corresponding filtered random
// generators.
package keys

import (
	"errors"
	"fmt"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/params"
)

// ErrInvalidFilter is returned for an unrecognised weak-key filter code.
var ErrInvalidFilter = errors.New("keys: weak key filter must be in {-1, 0, 1, 2, 3}")

// ErrInvalidThreshold is returned when a non-Any filter is given a threshold
// below 2.
var ErrInvalidThreshold = errors.New("keys: weak key threshold must be >= 2")

// Key is a QC-MDPC key pair (h0, h1), each a weight-BlockWeight circulant
// block of length BlockLength.
type Key struct {
	H0, H1 *bitvec.SparseVector
}

// New wraps two already-validated blocks into a Key.
func New(h0, h1 *bitvec.SparseVector) *Key { return &Key{H0: h0, H1: h1} }

// FromSupport validates and sorts two raw supports into a Key.
func FromSupport(h0Supp, h1Supp []uint32) (*Key, error) {
	h0, err := bitvec.NewFromSupport(params.BlockWeight, params.BlockLength, h0Supp)
	if err != nil {
		return nil, fmt.Errorf("h0: %w", err)
	}
	h1, err := bitvec.NewFromSupport(params.BlockWeight, params.BlockLength, h1Supp)
	if err != nil {
		return nil, fmt.Errorf("h1: %w", err)
	}
	return &Key{H0: h0, H1: h1}, nil
}

// Validate re-checks both blocks' invariants (useful after user-supplied
// fixed keys are parsed from JSON).
func (k *Key) Validate() error {
	if err := k.H0.Validate(); err != nil {
		return fmt.Errorf("h0: %w", err)
	}
	if err := k.H1.Validate(); err != nil {
		return fmt.Errorf("h1: %w", err)
	}
	return nil
}

// Sorted returns a copy of k with both blocks sorted.
func (k *Key) Sorted() *Key {
	return &Key{H0: k.H0.Sorted(), H1: k.H1.Sorted()}
}

// IsWeakType2 reports whether either block has shifts-above-threshold.
func (k *Key) IsWeakType2(threshold uint8) bool {
	return k.H0.ShiftsAboveThreshold(threshold) || k.H1.ShiftsAboveThreshold(threshold)
}

// IsWeakType3 reports whether h0's shifted product weight against h1 meets
// threshold.
func (k *Key) IsWeakType3(threshold uint8) bool {
	return k.H0.MaxShiftedProductWeightGeq(k.H1, threshold)
}

// IsWeak reports whether k is weak by either the type-2 or type-3
// definition (the reference's combined is_weak predicate).
func (k *Key) IsWeak(threshold uint8) bool {
	return k.IsWeakType2(threshold) || k.IsWeakType3(threshold)
}

// WeakType identifies one of the three weak-key families.
type WeakType int

const (
	WeakType1 WeakType = 1
	WeakType2 WeakType = 2
	WeakType3 WeakType = 3
)

// Filter is a closed sum type describing which keys a trial should accept:
// Any, NonWeak(threshold), or Weak(type, threshold).
type Filter struct {
	Kind      FilterKind
	WeakType  WeakType
	Threshold uint8
}

// FilterKind distinguishes the Filter variants.
type FilterKind int

const (
	FilterAny FilterKind = iota
	FilterNonWeak
	FilterWeak
)

// NewFilter mirrors the reference's KeyFilter::new(filter, threshold): codes
// -1/0/1/2/3 map to NonWeak/Any/Weak(1)/Weak(2)/Weak(3); a threshold >=
// BlockWeight is tautological and collapses to Any regardless of the code.
func NewFilter(filter int8, threshold uint8) (Filter, error) {
	if filter != 0 && threshold < 2 {
		return Filter{}, ErrInvalidThreshold
	}
	if int(threshold) >= params.BlockWeight {
		return Filter{Kind: FilterAny}, nil
	}
	switch filter {
	case 0:
		return Filter{Kind: FilterAny}, nil
	case -1:
		return Filter{Kind: FilterNonWeak, Threshold: threshold}, nil
	case 1:
		return Filter{Kind: FilterWeak, WeakType: WeakType1, Threshold: threshold}, nil
	case 2:
		return Filter{Kind: FilterWeak, WeakType: WeakType2, Threshold: threshold}, nil
	case 3:
		return Filter{Kind: FilterWeak, WeakType: WeakType3, Threshold: threshold}, nil
	default:
		return Filter{}, ErrInvalidFilter
	}
}

// Matches reports whether k satisfies filter.
func (k *Key) Matches(filter Filter) bool {
	switch filter.Kind {
	case FilterAny:
		return true
	case FilterNonWeak:
		return !k.IsWeak(filter.Threshold)
	case FilterWeak:
		switch filter.WeakType {
		case WeakType1:
			return k.H0.ShiftsAboveThreshold(filter.Threshold) || k.H1.ShiftsAboveThreshold(filter.Threshold)
		case WeakType2:
			return k.IsWeakType2(filter.Threshold)
		case WeakType3:
			return k.IsWeakType3(filter.Threshold)
		}
	}
	return false
}

// Random draws a uniformly random key with no filter.
func Random(rng bitvec.RNG) *Key {
	return &Key{
		H0: bitvec.Random(params.BlockWeight, params.BlockLength, rng),
		H1: bitvec.Random(params.BlockWeight, params.BlockLength, rng),
	}
}

// RandomFiltered draws a key satisfying filter, using the appropriate
// generator (rejection sampling for NonWeak, direct construction for Weak).
func RandomFiltered(filter Filter, rng bitvec.RNG) *Key {
	switch filter.Kind {
	case FilterAny:
		return Random(rng)
	case FilterNonWeak:
		return RandomNonWeak(filter.Threshold, rng)
	case FilterWeak:
		switch filter.WeakType {
		case WeakType1:
			return RandomWeakType1(filter.Threshold, rng)
		case WeakType2:
			return RandomWeakType2(filter.Threshold, rng)
		case WeakType3:
			return RandomWeakType3(filter.Threshold, rng)
		}
	}
	return Random(rng)
}

// RandomNonWeak draws blocks until neither is weak-type-2 and the pair is
// not weak-type-3, mirroring the reference's rejection loop.
func RandomNonWeak(threshold uint8, rng bitvec.RNG) *Key {
	for {
		h0 := bitvec.RandomNonWeakType2(params.BlockWeight, params.BlockLength, threshold, rng)
		h1 := bitvec.RandomNonWeakType2(params.BlockWeight, params.BlockLength, threshold, rng)
		if !h0.MaxShiftedProductWeightGeq(h1, threshold) {
			return &Key{H0: h0, H1: h1}
		}
	}
}

// randomAssignWeakBlock builds a key from one weak block and one uniformly
// random block, randomly assigning the weak block to h0 or h1 (the
// reference's random_weak_type1/2 coin flip).
func randomAssignWeakBlock(weak *bitvec.SparseVector, rng bitvec.RNG) *Key {
	randomBlock := bitvec.Random(params.BlockWeight, params.BlockLength, rng)
	if rng.Uint64()&1 == 1 {
		return &Key{H0: weak, H1: randomBlock}
	}
	return &Key{H0: randomBlock, H1: weak}
}

// RandomWeakType1 draws a type-1 weak key.
func RandomWeakType1(threshold uint8, rng bitvec.RNG) *Key {
	weak := bitvec.RandomWeakType1(params.BlockWeight, params.BlockLength, threshold, rng)
	return randomAssignWeakBlock(weak, rng)
}

// RandomWeakType2 draws a type-2 weak key.
func RandomWeakType2(threshold uint8, rng bitvec.RNG) *Key {
	weak := bitvec.RandomWeakType2(params.BlockWeight, params.BlockLength, threshold, rng)
	return randomAssignWeakBlock(weak, rng)
}

// RandomWeakType3 draws a type-3 weak key directly as a shifted-overlap
// pair.
func RandomWeakType3(threshold uint8, rng bitvec.RNG) *Key {
	h0, h1 := bitvec.RandomWeakType3(params.BlockWeight, params.BlockLength, threshold, rng)
	return &Key{H0: h0, H1: h1}
}
