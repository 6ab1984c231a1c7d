package decoder

import (
	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
)

// Result is the outcome of one decoding trial: the key and tagged error it
// was run against, and whether the decoder recovered it.
type Result struct {
	Key     *keys.Key
	EIn     *bitvec.SparseVector
	EOut    []uint32 // sorted support; need not have weight == len(EIn.Support())
	Success bool
}

// CycleData describes a detected cycle of the no-mask BGF iteration (a
// length of 1 is a fixed point).
type CycleData struct {
	Start          int
	Length         int
	Weight         int
	SyndromeWeight int
	Threshold      uint8
	MaxUPC         uint8
}

// Cycle is the result of running the decoder with cycle detection: the
// planted error, the decoder's support at the point a repeat was observed
// (or at maxIters if none was), and the cycle metadata (nil if no repeat was
// observed within the iteration budget).
type Cycle struct {
	Key   *keys.Key
	EIn   *bitvec.SparseVector
	EOut  []uint32
	Cycle *CycleData
}
