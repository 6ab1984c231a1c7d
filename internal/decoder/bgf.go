package decoder

import (
	"strconv"
	"strings"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/syndrome"
	"github.com/hastd/bikedfr/internal/threshold"
)

func maxUint8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// halfStep1 is the first phase of BGF's iteration 0: compute the ordinary
// BF(tau0) classification over every bit of both blocks, flipping "black"
// bits immediately and recording the black/gray masks (flat indices over
// [0, n)) for the subsequent masked half-steps.
func halfStep1(s *syndrome.Syndrome, k *keys.Key, oracle *threshold.Oracle, eOut *bitvec.DenseVector) (black, gray []bool, tau0 uint8) {
	r := params.BlockLength
	n := params.CodeLength()
	tau0 = oracle.Threshold(s.HammingWeight())
	upc0, upc1 := UPC(s, k)
	black = make([]bool, n)
	gray = make([]bool, n)
	tauGray := uint8(params.GrayThresholdDiff)

	blocks := [2]struct {
		upc []uint8
		h   *bitvec.SparseVector
	}{{upc0, k.H0}, {upc1, k.H1}}

	for b, blk := range blocks {
		for i := 0; i < r; i++ {
			u := blk.upc[i]
			if u+tauGray < tau0 {
				continue // below even the gray floor
			}
			idx := i + b*r
			if u >= tau0 {
				black[idx] = true
				eOut.Flip(idx)
				s.RecomputeFlippedBit(blk.h, uint32(i))
			} else {
				gray[idx] = true
			}
		}
	}
	return black, gray, tau0
}

// maskedStep applies BF-masked(mask, tauMask): recomputes UPC against the
// current syndrome and flips any masked-in bit whose count meets tauMask.
func maskedStep(s *syndrome.Syndrome, k *keys.Key, mask []bool, tauMask uint8, eOut *bitvec.DenseVector) {
	r := params.BlockLength
	upc0, upc1 := UPC(s, k)
	blocks := [2]struct {
		upc []uint8
		h   *bitvec.SparseVector
	}{{upc0, k.H0}, {upc1, k.H1}}
	for b, blk := range blocks {
		for i := 0; i < r; i++ {
			idx := i + b*r
			if mask[idx] && blk.upc[i] >= tauMask {
				eOut.Flip(idx)
				s.RecomputeFlippedBit(blk.h, uint32(i))
			}
		}
	}
}

// noMaskIter applies BF-no-mask(tau): recompute UPC, flip every bit meeting
// the syndrome-weight-derived threshold, with no black/gray restriction.
// Returns the threshold used and the maximum UPC value observed before any
// bit was flipped.
func noMaskIter(s *syndrome.Syndrome, k *keys.Key, oracle *threshold.Oracle, eOut *bitvec.DenseVector) (tau uint8, maxUPC uint8) {
	r := params.BlockLength
	tau = oracle.Threshold(s.HammingWeight())
	upc0, upc1 := UPC(s, k)
	blocks := [2]struct {
		upc []uint8
		h   *bitvec.SparseVector
	}{{upc0, k.H0}, {upc1, k.H1}}
	for b, blk := range blocks {
		for i := 0; i < r; i++ {
			maxUPC = maxUint8(maxUPC, blk.upc[i])
			if blk.upc[i] >= tau {
				idx := i + b*r
				eOut.Flip(idx)
				s.RecomputeFlippedBit(blk.h, uint32(i))
			}
		}
	}
	return tau, maxUPC
}

// Decode runs the full BGF decoder: the iteration-0 triple half-step
// followed by up to NbIter-1 no-mask iterations, terminating early once the
// residual syndrome reaches weight zero.
func Decode(k *keys.Key, s *syndrome.Syndrome, oracle *threshold.Oracle) (eOut *bitvec.DenseVector, success bool) {
	n := params.CodeLength()
	eOut = bitvec.NewDenseVector(n)

	black, gray, _ := halfStep1(s, k, oracle, eOut)
	tauMask := threshold.BFMaskedThreshold()
	maskedStep(s, k, black, tauMask, eOut)
	maskedStep(s, k, gray, tauMask, eOut)

	for iter := 1; iter < params.NbIter; iter++ {
		if s.HammingWeight() == 0 {
			break
		}
		noMaskIter(s, k, oracle, eOut)
	}
	return eOut, s.HammingWeight() == 0
}

// signature renders a sorted support as a comparable map key.
func signature(supp []uint32) string {
	var sb strings.Builder
	for i, v := range supp {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// FindCycle runs the decoder with cycle detection: after the iteration-0
// triple half-step, it applies BF-no-mask once per iteration up to
// maxIters, checking each new decoder-output support against every
// previously observed one. On a match it returns the cycle's start index and
// length together with the state at the repeat: the weight of e XOR e_out,
// the syndrome weight, the threshold for that syndrome weight, and the
// largest UPC value of that syndrome. If no repeat is observed within
// maxIters, Cycle is nil.
func FindCycle(k *keys.Key, e *bitvec.SparseVector, oracle *threshold.Oracle, maxIters int) *Cycle {
	n := params.CodeLength()
	s := syndrome.FromSparse(k, e)
	eOut := bitvec.NewDenseVector(n)

	black, gray, _ := halfStep1(s, k, oracle, eOut)
	tauMask := threshold.BFMaskedThreshold()
	maskedStep(s, k, black, tauMask, eOut)
	maskedStep(s, k, gray, tauMask, eOut)

	seen := map[string]int{}
	supp0 := eOut.Support()
	seen[signature(supp0)] = 0

	for iter := 1; iter <= maxIters; iter++ {
		if s.HammingWeight() == 0 {
			return &Cycle{Key: k, EIn: e, EOut: eOut.Support(), Cycle: nil}
		}
		noMaskIter(s, k, oracle, eOut)
		supp := eOut.Support()
		sig := signature(supp)
		if start, found := seen[sig]; found {
			common := 0
			for _, idx := range e.Support() {
				if eOut.Get(int(idx)) != 0 {
					common++
				}
			}
			var maxUPC uint8
			upc0, upc1 := UPC(s, k)
			for i := range upc0 {
				maxUPC = maxUint8(maxUPC, maxUint8(upc0[i], upc1[i]))
			}
			return &Cycle{
				Key:  k,
				EIn:  e,
				EOut: supp,
				Cycle: &CycleData{
					Start:          start,
					Length:         iter - start,
					Weight:         len(supp) + e.Weight() - 2*common,
					SyndromeWeight: s.HammingWeight(),
					Threshold:      oracle.Threshold(s.HammingWeight()),
					MaxUPC:         maxUPC,
				},
			}
		}
		seen[sig] = iter
	}
	return &Cycle{Key: k, EIn: e, EOut: eOut.Support(), Cycle: nil}
}

// DecodeTrial runs the decoder for a single trial and reports the full
// Result (used by the trial harness).
func DecodeTrial(k *keys.Key, e *bitvec.SparseVector, oracle *threshold.Oracle) Result {
	s := syndrome.FromSparse(k, e)
	eOut, success := Decode(k, s, oracle)
	return Result{Key: k, EIn: e, EOut: eOut.Support(), Success: success}
}
