package decoder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/syndrome"
)

type mathRandAdapter struct{ r *rand.Rand }

func (a mathRandAdapter) Uint64() uint64 { return a.r.Uint64() }

func newTestRNG(seed int64) bitvec.RNG { return mathRandAdapter{rand.New(rand.NewSource(seed))} }

func TestScalarAndBatchedUPCAgree(t *testing.T) {
	rng := newTestRNG(1)
	k := keys.Random(rng)
	e := bitvec.Random(params.ErrorWeight, uint32(params.CodeLength()), rng)
	s := syndrome.FromSparse(k, e)

	scalar := scalarUPC(s, k.H0)
	batched := batchedUPC(s, k.H0)
	require.Equal(t, len(scalar), len(batched))
	assert.Equal(t, scalar, batched)
}

func TestUPCAllOnesSyndromeIsConstantD(t *testing.T) {
	rng := newTestRNG(2)
	k := keys.Random(rng)
	s := syndrome.Zero()
	for i := 0; i < params.BlockLength; i++ {
		s.SetOne(i)
	}
	upc0, upc1 := UPC(s, k)
	for i := 0; i < params.BlockLength; i++ {
		assert.Equal(t, uint8(params.BlockWeight), upc0[i])
		assert.Equal(t, uint8(params.BlockWeight), upc1[i])
	}
}
