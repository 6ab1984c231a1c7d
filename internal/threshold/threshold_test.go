package threshold

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/params"
)

func TestComputeXKnownValue(t *testing.T) {
	x, err := ComputeX(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	require.NoError(t, err)
	assert.InDelta(t, 10.2859814049302, x, 1e-9)
}

func TestOracleFloorAndMonotoneLowerBound(t *testing.T) {
	oracle, err := NewOracle(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	require.NoError(t, err)
	min := params.BFThresholdMin()
	assert.Equal(t, min, oracle.Threshold(0))
	for ws := 0; ws <= params.BlockLength; ws++ {
		assert.GreaterOrEqual(t, oracle.Threshold(ws), min)
	}
}

func TestComputeXBike5Params(t *testing.T) {
	// BIKE-5 parameters exercise the arbitrary-precision path: a
	// float64-from-the-start computation of C(n,t) would overflow here.
	x, err := ComputeX(40973, 137, 264)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(x))
	assert.False(t, math.IsInf(x, 0))
}

// thresholdsNoMinKnown is the unclamped tau-scan result (before the
// BFThresholdMin floor is applied) for every syndrome weight in [0, 587],
// for (r, d, t) = (587, 15, 18).
var thresholdsNoMinKnown = []uint8{
	1, 2, 2, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 11, 11, 11, 11,
	11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
	11, 11, 11, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13,
	13, 13, 14, 14, 14, 14, 14, 14, 15, 15, 15, 15, 15, 15, 15, 13, 13, 13, 13, 13, 13, 13, 13, 13,
	13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13, 13,
	13, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
	11, 11, 11, 11, 11, 11, 11, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 5, 5, 5, 5, 5, 5, 5, 5, 5, 3, 3, 3, 3, 3, 3, 3, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
}

func TestKnownThresholds(t *testing.T) {
	r, d, t := params.BlockLength, params.BlockWeight, params.ErrorWeight
	x, err := ComputeX(r, d, t)
	require.NoError(t, err)
	oracle, err := NewOracle(r, d, t)
	require.NoError(t, err)

	min := params.BFThresholdMin()
	for ws := 0; ws <= r; ws++ {
		got, err := ExactThreshold(ws, r, d, t, x)
		require.NoError(t, err)
		want := thresholdsNoMinKnown[ws]
		if want < min {
			want = min
		}
		assert.Equal(t, want, got, "ws=%d", ws)
		assert.Equal(t, got, oracle.Threshold(ws), "ws=%d", ws)
	}
}
