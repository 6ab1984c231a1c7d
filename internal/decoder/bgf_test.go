package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/syndrome"
	"github.com/hastd/bikedfr/internal/threshold"
)

func sparseFrom(t *testing.T, weight int, supp []uint32) *bitvec.SparseVector {
	t.Helper()
	v, err := bitvec.NewFromSupport(weight, uint32(params.CodeLength()), supp)
	require.NoError(t, err)
	return v
}

func blockSparse(t *testing.T, supp []uint32) *bitvec.SparseVector {
	t.Helper()
	v, err := bitvec.NewFromSupport(params.BlockWeight, params.BlockLength, supp)
	require.NoError(t, err)
	return v
}

func newOracle(t *testing.T) *threshold.Oracle {
	t.Helper()
	o, err := threshold.NewOracle(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	require.NoError(t, err)
	return o
}

func TestDecodeScenarioS1Fails(t *testing.T) {
	h0 := blockSparse(t, []uint32{41, 57, 63, 158, 163, 180, 194, 213, 234, 276, 337, 428, 451, 485, 573})
	h1 := blockSparse(t, []uint32{55, 84, 127, 185, 194, 218, 260, 374, 382, 394, 404, 509, 528, 537, 580})
	k := keys.New(h0, h1)

	e := sparseFrom(t, params.ErrorWeight, []uint32{10, 62, 157, 283, 460, 503, 533, 564, 715, 806, 849, 858, 916, 991, 996, 1004, 1078, 1096})

	oracle := newOracle(t)
	s := syndrome.FromSparse(k, e)
	eOut, success := Decode(k, s, oracle)

	assert.False(t, success)
	expected := []uint32{10, 62, 157, 283, 460, 503, 533, 564, 644, 663, 672, 777, 858, 907, 940, 982, 991, 996, 1004, 1078, 1104, 1116, 1126}
	assert.Equal(t, expected, eOut.Support())
}

func TestFindCycleScenarioS2(t *testing.T) {
	h0 := blockSparse(t, []uint32{93, 99, 105, 121, 126, 141, 156, 193, 194, 197, 264, 301, 360, 400, 429})
	h1 := blockSparse(t, []uint32{100, 117, 189, 191, 211, 325, 340, 386, 440, 461, 465, 474, 534, 565, 578})
	k := keys.New(h0, h1)

	e := sparseFrom(t, params.ErrorWeight, []uint32{16, 73, 89, 201, 346, 522, 547, 553, 574, 575, 613, 619, 637, 713, 955, 960, 983, 1008})

	oracle := newOracle(t)
	cyc := FindCycle(k, e, oracle, 100)

	require.NotNil(t, cyc.Cycle)
	assert.Equal(t, 25, cyc.Cycle.Start)
	assert.Equal(t, 2, cyc.Cycle.Length)
	assert.Equal(t, 19, cyc.Cycle.Weight)
	assert.Equal(t, 101, cyc.Cycle.SyndromeWeight)
	assert.Equal(t, uint8(8), cyc.Cycle.Threshold)
	assert.Equal(t, uint8(11), cyc.Cycle.MaxUPC)

	expected := []uint32{67, 73, 201, 242, 459, 481, 501, 507, 547, 575, 637, 759, 922, 955, 1008}
	assert.Equal(t, expected, cyc.EOut)
}

func TestDecodeSuccessImpliesZeroSyndrome(t *testing.T) {
	rng := newTestRNG(42)
	k := keys.Random(rng)
	e := bitvec.Random(params.ErrorWeight, uint32(params.CodeLength()), rng)
	oracle := newOracle(t)

	s := syndrome.FromSparse(k, e)
	_, success := Decode(k, s, oracle)
	if success {
		assert.Equal(t, 0, s.HammingWeight())
	}
}

func TestFindCycleIsDeterministic(t *testing.T) {
	rng := newTestRNG(7)
	k := keys.Random(rng)
	e := bitvec.Random(params.ErrorWeight, uint32(params.CodeLength()), rng)
	oracle := newOracle(t)

	c1 := FindCycle(k, e, oracle, 200)
	c2 := FindCycle(k, e, oracle, 200)
	assert.Equal(t, c1.EOut, c2.EOut)
	assert.Equal(t, c1.Cycle, c2.Cycle)
}
