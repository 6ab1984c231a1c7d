package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/threshold"
)

func blockSparse(t *testing.T, supp []uint32) *bitvec.SparseVector {
	t.Helper()
	v, err := bitvec.NewFromSupport(params.BlockWeight, params.BlockLength, supp)
	require.NoError(t, err)
	return v
}

// These two exercise IsAbsorbing directly against an already-known diff
// array: the stable diff that the decoder produces for the same key and
// planted error used by the NewAbsorbingDecodingFailure tests below. They
// check the subgraph predicate in isolation.
func TestIsAbsorbingSubgraphPositiveExample(t *testing.T) {
	h0 := blockSparse(t, []uint32{0, 11, 14, 53, 69, 134, 190, 213, 218, 245, 378, 408, 411, 480, 545})
	h1 := blockSparse(t, []uint32{26, 104, 110, 137, 207, 252, 258, 310, 326, 351, 367, 459, 461, 506, 570})
	k := keys.New(h0, h1)

	d := []uint32{130, 351, 527, 541}
	edges := Build(k)
	assert.True(t, edges.IsAbsorbing(d))
}

func TestIsAbsorbingSubgraphNegativeExample(t *testing.T) {
	h0 := blockSparse(t, []uint32{337, 180, 234, 163, 573, 63, 276, 451, 428, 57, 213, 41, 158, 194, 485})
	h1 := blockSparse(t, []uint32{260, 528, 580, 127, 537, 84, 404, 218, 374, 394, 509, 194, 382, 55, 185})
	k := keys.New(h0, h1)

	d := []uint32{644, 663, 672, 715, 777, 806, 849, 907, 916, 940, 982, 1096, 1104, 1116, 1126}
	edges := Build(k)
	assert.False(t, edges.IsAbsorbing(d))
}

// These drive a DecodingFailure's planted error through the full
// re-decode-and-diff pipeline, the way cmd/bikeanalyze actually certifies
// an absorbing set, rather than assuming the diff is already in hand.
func TestNewAbsorbingDecodingFailurePositiveExample(t *testing.T) {
	h0 := blockSparse(t, []uint32{0, 11, 14, 53, 69, 134, 190, 213, 218, 245, 378, 408, 411, 480, 545})
	h1 := blockSparse(t, []uint32{26, 104, 110, 137, 207, 252, 258, 310, 326, 351, 367, 459, 461, 506, 570})
	k := keys.New(h0, h1)

	eSupp := []uint32{16, 37, 83, 130, 186, 289, 351, 460, 481, 527, 558, 662, 724, 772, 1008, 1011, 1038, 1072}
	eIn, err := bitvec.NewFromSupport(params.ErrorWeight, uint32(params.CodeLength()), eSupp)
	require.NoError(t, err)
	oracle, err := threshold.NewOracle(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	require.NoError(t, err)

	af := NewAbsorbingDecodingFailure(k, eIn, oracle, false)
	assert.True(t, af.IsAbsorbing)
}

func TestNewAbsorbingDecodingFailureNegativeExample(t *testing.T) {
	h0 := blockSparse(t, []uint32{337, 180, 234, 163, 573, 63, 276, 451, 428, 57, 213, 41, 158, 194, 485})
	h1 := blockSparse(t, []uint32{260, 528, 580, 127, 537, 84, 404, 218, 374, 394, 509, 194, 382, 55, 185})
	k := keys.New(h0, h1)

	eSupp := []uint32{1078, 283, 10, 62, 460, 806, 715, 157, 1096, 849, 503, 996, 533, 1004, 564, 991, 858, 916}
	eIn, err := bitvec.NewFromSupport(params.ErrorWeight, uint32(params.CodeLength()), eSupp)
	require.NoError(t, err)
	oracle, err := threshold.NewOracle(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	require.NoError(t, err)

	af := NewAbsorbingDecodingFailure(k, eIn, oracle, false)
	assert.False(t, af.IsAbsorbing)
}

func TestEmptySupportIsAbsorbing(t *testing.T) {
	h0 := blockSparse(t, []uint32{93, 99, 105, 121, 126, 141, 156, 193, 194, 197, 264, 301, 360, 400, 429})
	h1 := blockSparse(t, []uint32{100, 117, 189, 191, 211, 325, 340, 386, 440, 461, 465, 474, 534, 565, 578})
	k := keys.New(h0, h1)

	edges := Build(k)
	assert.True(t, edges.IsAbsorbing(nil))
	assert.Empty(t, edges.OddCheckNodes(nil))
}
