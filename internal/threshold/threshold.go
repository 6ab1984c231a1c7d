// Package threshold implements the BGF decoder's per-syndrome-weight
// threshold oracle: an arbitrary-precision Bayesian decision rule
// precomputed once per process for every syndrome weight in [0, r].
package threshold

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/hastd/bikedfr/internal/params"
)

// ErrOverflow is returned when a computed threshold exceeds the uint8 range
// a single BGF threshold can hold.
var ErrOverflow = errors.New("threshold: computed value overflows uint8")

// ErrNaN is returned when an intermediate floating point computation is
// infinite or NaN.
var ErrNaN = errors.New("threshold: computation produced NaN or Inf")

// bigBinomial computes C(n, k) exactly using math/big.
func bigBinomial(n, k int64) *big.Int {
	if k < 0 || k > n {
		return big.NewInt(0)
	}
	if k > n-k {
		k = n - k
	}
	result := big.NewInt(1)
	num := new(big.Int)
	den := new(big.Int)
	for i := int64(0); i < k; i++ {
		num.SetInt64(n - i)
		result.Mul(result, num)
		den.SetInt64(i + 1)
		result.Div(result, den)
	}
	return result
}

// ComputeX computes the exact rational expectation
//
//	X = r * sum_{l in {3,5,...} ∩ [3,min(t,w))} (l-1)*C(w,l)*C(n-w,t-l) / C(n,t)
//
// using arbitrary-precision integers and a final big.Rat division, rounded
// to the nearest float64 only at the very end (mirroring the reference's
// malachite Natural/Rational pipeline rather than a float-from-the-start
// computation, which would overflow C(n,t) at BIKE-5 parameters).
func ComputeX(r, d, t int) (float64, error) {
	n := int64(2 * r)
	w := int64(2 * d)
	xPart := big.NewInt(0)
	upper := t
	if int(w) < upper {
		upper = int(w)
	}
	for l := int64(3); l < int64(upper); l += 2 {
		term := new(big.Int).Mul(big.NewInt(l-1), bigBinomial(w, l))
		term.Mul(term, bigBinomial(n-w, int64(t)-l))
		xPart.Add(xPart, term)
	}
	num := new(big.Int).Mul(big.NewInt(int64(r)), xPart)
	denom := bigBinomial(n, int64(t))
	x := new(big.Rat).SetFrac(num, denom)
	xf, _ := x.Float64()
	if math.IsNaN(xf) || math.IsInf(xf, 0) {
		return 0, ErrNaN
	}
	return xf, nil
}

// ExactThreshold computes the BGF threshold for a single syndrome weight ws,
// via the iterative inequality search from SPEC_FULL.md section 4.D: ws==0
// shortcuts straight to BFThresholdMin, otherwise tau scans upward from 1
// until the decision inequality first holds (or tau exceeds d), and only
// then is the result clamped below by BFThresholdMin — the floor is applied
// unconditionally to whatever the scan produced, not used as its starting
// point.
func ExactThreshold(ws int, r, d, t int, x float64) (uint8, error) {
	if ws == 0 {
		return params.BFThresholdMin(), nil
	}
	if ws > r {
		return 0, fmt.Errorf("threshold: syndrome weight %d exceeds block length %d", ws, r)
	}

	n := float64(2 * r)
	w := float64(2 * d)
	df := float64(d)
	tf := float64(t)

	pi1 := (float64(ws) + x) / (tf * df)
	pi0 := (w*float64(ws) - x) / ((n - tf) * df)

	tau := 1
	for tau <= d {
		lhs := tf * math.Pow(pi1, float64(tau)) * math.Pow(1-pi1, df-float64(tau))
		rhs := (n - tf) * math.Pow(pi0, float64(tau)) * math.Pow(1-pi0, df-float64(tau))
		if math.IsNaN(lhs) || math.IsNaN(rhs) {
			return 0, ErrNaN
		}
		if lhs >= rhs {
			break
		}
		tau++
	}
	if tau > math.MaxUint8 {
		return 0, ErrOverflow
	}
	th := uint8(tau)
	if min := params.BFThresholdMin(); th < min {
		th = min
	}
	return th, nil
}

// Oracle is the precomputed threshold table, one entry per syndrome weight
// in [0, r].
type Oracle struct {
	table []uint8
}

// NewOracle precomputes the full threshold table for the given parameters.
func NewOracle(r, d, t int) (*Oracle, error) {
	x, err := ComputeX(r, d, t)
	if err != nil {
		return nil, err
	}
	table := make([]uint8, r+1)
	for ws := 0; ws <= r; ws++ {
		tau, err := ExactThreshold(ws, r, d, t, x)
		if err != nil {
			return nil, fmt.Errorf("threshold for syndrome weight %d: %w", ws, err)
		}
		table[ws] = tau
	}
	return &Oracle{table: table}, nil
}

// Threshold returns the precomputed BGF threshold for syndrome weight ws.
func (o *Oracle) Threshold(ws int) uint8 { return o.table[ws] }

// BFMaskedThreshold is the constant masked threshold used by the black/gray
// half-steps of iteration 0.
func BFMaskedThreshold() uint8 { return params.BFMaskedThreshold() }

// BFThresholdMin is the floor every table entry is clamped to.
func BFThresholdMin() uint8 { return params.BFThresholdMin() }
