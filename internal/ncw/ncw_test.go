package ncw

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
)

type mathRandAdapter struct{ r *rand.Rand }

func (a mathRandAdapter) Uint64() uint64 { return a.r.Uint64() }

func newTestRNG(seed int64) bitvec.RNG { return mathRandAdapter{rand.New(rand.NewSource(seed))} }

func TestShiftBlockwiseIdentity(t *testing.T) {
	supp := []uint32{0, 100, 586, 587, 700, 1173}
	assert.Equal(t, supp, shiftBlockwise(supp, 0))
	assert.Equal(t, supp, shiftBlockwise(supp, uint32(params.BlockLength)))
}

func TestSampledVectorsHaveWeightT(t *testing.T) {
	rng := newTestRNG(5)
	k := keys.Random(rng)
	for _, class := range []Class{ClassC, ClassN, Class2N} {
		l := class.MaxL() / 2
		tagged := Sample(class, k, l, rng)
		assert.Equal(t, params.ErrorWeight, tagged.Vector.Weight())
		require.NoError(t, tagged.Vector.Validate())
		assert.Equal(t, class, tagged.Source.NCW.Class)
		assert.Equal(t, l, tagged.Source.NCW.L)
	}
}

func TestRandomTaggedIsTaggedRandom(t *testing.T) {
	rng := newTestRNG(6)
	tagged := RandomTagged(rng)
	assert.Equal(t, SourceRandom, tagged.Source.Kind)
	assert.Equal(t, params.ErrorWeight, tagged.Vector.Weight())
}

func TestComputeOverlapsNonNegative(t *testing.T) {
	rng := newTestRNG(8)
	k := keys.Random(rng)
	d := []uint32{1, 2, 3, uint32(params.BlockLength) + 1}
	o := ComputeOverlaps(k, d)
	assert.GreaterOrEqual(t, o.C, 0)
	assert.GreaterOrEqual(t, o.N, 0)
	assert.GreaterOrEqual(t, o.TwoN, 0)
}

func TestComputeOverlapsClassifyExample(t *testing.T) {
	h0, err := bitvec.NewFromSupport(params.BlockWeight, params.BlockLength,
		[]uint32{13, 26, 58, 68, 69, 73, 117, 133, 190, 239, 346, 483, 508, 545, 576})
	require.NoError(t, err)
	h1, err := bitvec.NewFromSupport(params.BlockWeight, params.BlockLength,
		[]uint32{10, 103, 108, 141, 273, 337, 342, 343, 377, 451, 465, 473, 496, 546, 556})
	require.NoError(t, err)
	k := keys.New(h0, h1)

	supp := []uint32{7, 42, 99, 107, 114, 159, 181, 235, 274, 325, 432, 569, 575, 770, 887, 900, 945, 955}
	o := ComputeOverlaps(k, supp)
	assert.Equal(t, Overlaps{C: 4, N: 6, TwoN: 8}, o)
}
