package keys

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hastd/bikedfr/internal/bitvec"
)

type mathRandAdapter struct{ r *rand.Rand }

func (a mathRandAdapter) Uint64() uint64 { return a.r.Uint64() }

func newTestRNG(seed int64) bitvec.RNG { return mathRandAdapter{rand.New(rand.NewSource(seed))} }

func TestNewFilter(t *testing.T) {
	f, err := NewFilter(0, 0)
	require.NoError(t, err)
	assert.Equal(t, FilterAny, f.Kind)

	_, err = NewFilter(-1, 1)
	require.ErrorIs(t, err, ErrInvalidThreshold)

	f, err = NewFilter(-1, 4)
	require.NoError(t, err)
	assert.Equal(t, FilterNonWeak, f.Kind)
	assert.Equal(t, uint8(4), f.Threshold)

	// threshold >= BlockWeight is tautological, collapses to Any.
	f, err = NewFilter(2, 15)
	require.NoError(t, err)
	assert.Equal(t, FilterAny, f.Kind)

	_, err = NewFilter(9, 4)
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestRandomNonWeakIsNotWeak(t *testing.T) {
	rng := newTestRNG(1)
	const threshold = 3
	for i := 0; i < 200; i++ {
		k := RandomNonWeak(threshold, rng)
		assert.False(t, k.IsWeak(threshold))
	}
}

func TestRandomWeakKeysAreWeak(t *testing.T) {
	rng := newTestRNG(2)
	const threshold = 7
	for i := 0; i < 200; i++ {
		assert.True(t, RandomWeakType1(threshold, rng).IsWeak(threshold))
		assert.True(t, RandomWeakType2(threshold, rng).IsWeak(threshold))
		assert.True(t, RandomWeakType3(threshold, rng).IsWeak(threshold))
	}
}

func TestFromSupportExample(t *testing.T) {
	k, err := FromSupport(
		[]uint32{6, 25, 77, 145, 165, 212, 230, 232, 247, 261, 306, 341, 449, 466, 493},
		[]uint32{35, 108, 119, 159, 160, 163, 221, 246, 249, 286, 310, 360, 484, 559, 580},
	)
	require.NoError(t, err)
	require.NoError(t, k.Validate())
	assert.True(t, k.Matches(Filter{Kind: FilterNonWeak, Threshold: 4}))
}
