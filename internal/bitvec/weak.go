package bitvec

// distinctRandomFill appends count further uniformly random indices in
// [0, length) to supp, rejecting collisions with entries already present,
// and returns the extended, unsorted slice.
func distinctRandomFill(supp []uint32, count int, length uint32, rng RNG) []uint32 {
	present := make(map[uint32]struct{}, len(supp)+count)
	for _, v := range supp {
		present[v] = struct{}{}
	}
	for len(supp) < cap(supp) && count > 0 {
		cand := uniformUint32(rng, length)
		if _, dup := present[cand]; dup {
			continue
		}
		present[cand] = struct{}{}
		supp = append(supp, cand)
		count--
	}
	return supp
}

// weakArithmeticProgression builds a weight-length support containing a
// delta-spaced arithmetic progression of threshold+1 terms (guaranteeing
// threshold pairs share that one delta), padded with uniformly random
// distinct indices.
func weakArithmeticProgression(weight int, length uint32, threshold uint8, delta uint32, rng RNG) *SparseVector {
	runLen := int(threshold) + 1
	if runLen > weight {
		runLen = weight
	}
	start := uniformUint32(rng, length)
	supp := make([]uint32, 0, weight)
	for i := 0; i < runLen; i++ {
		supp = append(supp, (start+uint32(i)*delta)%length)
	}
	supp = distinctRandomFill(supp, weight-runLen, length, rng)
	v := &SparseVector{weight: weight, length: length, support: supp}
	v.Sort()
	return v
}

// RandomWeakType1 draws a support whose indices include a run of threshold+1
// consecutive integers (delta=1 arithmetic progression), so
// ShiftsAboveThreshold(threshold) holds. This re-derives Type-1 generation
// from the shift predicate directly rather than leaving it unimplemented.
func RandomWeakType1(weight int, length uint32, threshold uint8, rng RNG) *SparseVector {
	return weakArithmeticProgression(weight, length, threshold, 1, rng)
}

// RandomWeakType2 draws a support containing a run sharing a single random
// delta at least threshold times, so ShiftsAboveThreshold(threshold) holds.
func RandomWeakType2(weight int, length uint32, threshold uint8, rng RNG) *SparseVector {
	delta := 1 + uniformUint32(rng, length/2)
	return weakArithmeticProgression(weight, length, threshold, delta, rng)
}

// RandomWeakType3 draws a pair (v0, v1) such that
// v0.MaxShiftedProductWeightGeq(v1, threshold) holds: v0 is built to contain
// a shifted copy of threshold elements of v1's support.
func RandomWeakType3(weight int, length uint32, threshold uint8, rng RNG) (v0, v1 *SparseVector) {
	v1 = Random(weight, length, rng)
	shift := uniformUint32(rng, length)
	shared := int(threshold)
	if shared > weight {
		shared = weight
	}
	supp := make([]uint32, 0, weight)
	for i := 0; i < shared; i++ {
		supp = append(supp, (v1.Get(i)+shift)%length)
	}
	supp = distinctRandomFill(supp, weight-shared, length, rng)
	v0 = &SparseVector{weight: weight, length: length, support: supp}
	v0.Sort()
	return v0, v1
}

// RandomNonWeakType2 resamples uniformly at random until ShiftsAboveThreshold
// is false.
func RandomNonWeakType2(weight int, length uint32, threshold uint8, rng RNG) *SparseVector {
	for {
		v := Random(weight, length, rng)
		if !v.ShiftsAboveThreshold(threshold) {
			return v
		}
	}
}
