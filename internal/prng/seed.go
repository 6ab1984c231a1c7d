package prng

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrSeedFormat is returned when a hex string is not exactly 64 characters
// of valid hexadecimal.
var ErrSeedFormat = errors.New("prng: seed must be a 64-character hex string")

// ErrSeedConflict is returned when a different seed is set after the
// process-wide seed has already been initialised.
var ErrSeedConflict = errors.New("prng: global seed already set to a different value")

// Seed is a 256-bit PRNG seed.
type Seed [32]byte

// SeedFromHex parses a 64-character hex string into a Seed.
func SeedFromHex(s string) (Seed, error) {
	var seed Seed
	if len(s) != 64 {
		return seed, fmt.Errorf("%w: got %d characters", ErrSeedFormat, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("%w: %v", ErrSeedFormat, err)
	}
	copy(seed[:], b)
	return seed, nil
}

// String renders the seed as 64 lowercase hex characters.
func (s Seed) String() string { return hex.EncodeToString(s[:]) }

// RandomSeed draws a fresh seed from the OS entropy source.
func RandomSeed() (Seed, error) {
	var seed Seed
	if _, err := rand.Read(seed[:]); err != nil {
		return seed, fmt.Errorf("prng: reading OS entropy: %w", err)
	}
	return seed, nil
}

var (
	globalSeedMu  sync.Mutex
	globalSeedSet bool
	globalSeed    Seed
	workerCounter uint32
)

// GetOrInsertGlobalSeed returns the process-wide seed, initialising it to
// candidate on first call. A later call with a different candidate returns
// ErrSeedConflict and leaves the first seed in place.
func GetOrInsertGlobalSeed(candidate Seed) (Seed, error) {
	globalSeedMu.Lock()
	defer globalSeedMu.Unlock()
	if !globalSeedSet {
		globalSeed = candidate
		globalSeedSet = true
		return globalSeed, nil
	}
	if globalSeed != candidate {
		return globalSeed, ErrSeedConflict
	}
	return globalSeed, nil
}

// GlobalSeed returns the process-wide seed and whether it has been set.
func GlobalSeed() (Seed, bool) {
	globalSeedMu.Lock()
	defer globalSeedMu.Unlock()
	return globalSeed, globalSeedSet
}

// NextWorkerID atomically reserves and returns the next zero-based worker
// sequence index for the process.
func NextWorkerID() uint32 {
	return atomic.AddUint32(&workerCounter, 1) - 1
}

// GlobalThreadCount returns the number of worker ids reserved so far.
func GlobalThreadCount() uint32 {
	return atomic.LoadUint32(&workerCounter)
}

// resetForTest clears process-wide state; only used by this package's own
// tests, which must not run in parallel with each other.
func resetForTest() {
	globalSeedMu.Lock()
	globalSeedSet = false
	globalSeed = Seed{}
	globalSeedMu.Unlock()
	atomic.StoreUint32(&workerCounter, 0)
}
