package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedHexRoundTrip(t *testing.T) {
	hex := "b439d3f5b9f2d127effcc98ed2a70806441de9e5b3bc4f6d32ec2b963af03fee"
	seed, err := SeedFromHex(hex)
	require.NoError(t, err)
	assert.Equal(t, hex, seed.String())
}

func TestSeedFromHexRejectsWrongLength(t *testing.T) {
	_, err := SeedFromHex("abcd")
	assert.ErrorIs(t, err, ErrSeedFormat)
}

func TestGlobalSeedWriteOnceOrCompareEqual(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	s1 := Seed{1, 2, 3}
	got, err := GetOrInsertGlobalSeed(s1)
	require.NoError(t, err)
	assert.Equal(t, s1, got)

	got, err = GetOrInsertGlobalSeed(s1)
	require.NoError(t, err)
	assert.Equal(t, s1, got)

	s2 := Seed{9, 9, 9}
	_, err = GetOrInsertGlobalSeed(s2)
	assert.ErrorIs(t, err, ErrSeedConflict)

	final, set := GlobalSeed()
	assert.True(t, set)
	assert.Equal(t, s1, final)
}

func TestWorkerIDsAreSequential(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)
	for i := uint32(0); i < 5; i++ {
		assert.Equal(t, i, NextWorkerID())
	}
	assert.Equal(t, uint32(5), GlobalThreadCount())
}

func TestJumpChangesState(t *testing.T) {
	seed := Seed{1, 2, 3, 4, 5}
	base := NewFromSeed(seed)
	first := base.Uint64()

	jumped := FromSeedWithJumps(seed, 1)
	jumpedFirst := jumped.Uint64()
	assert.NotEqual(t, first, jumpedFirst)

	// Jumping by 0 is the identity.
	same := FromSeedWithJumps(seed, 0)
	assert.Equal(t, NewFromSeed(seed).Uint64(), same.Uint64())
}
