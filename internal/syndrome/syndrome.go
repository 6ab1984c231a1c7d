// Package syndrome implements the length-r dense syndrome vector, padded for
// the decoder's SIMD-friendly UPC kernel.
package syndrome

import (
	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
)

// Syndrome is a DenseVector of logical length BlockLength, backed by
// SizeAVX() bytes of storage so the UPC kernel can read (i+j) without
// wrapping after DuplicateUpTo.
type Syndrome struct {
	dv *bitvec.DenseVector
}

// Zero returns an all-zero syndrome.
func Zero() *Syndrome {
	return &Syndrome{dv: bitvec.NewPaddedDenseVector(params.BlockLength, params.SizeAVX())}
}

// blockOf returns which of h0 (0) / h1 (1) the given planted-error index i
// belongs to, and i's offset within that block.
func blockOf(i uint32) (block int, offset uint32) {
	if i < params.BlockLength {
		return 0, i
	}
	return 1, i - params.BlockLength
}

// FromSparse constructs the syndrome s = H*e^T for key k and sparse error e
// (support over [0, 2*BlockLength)): for each i in e's support, flips
// position (i'+j) mod BlockLength for every j in h_block(i).support, where
// i' is i's offset within its block.
func FromSparse(k *keys.Key, e *bitvec.SparseVector) *Syndrome {
	s := Zero()
	for _, idx := range e.Support() {
		block, offset := blockOf(idx)
		h := k.H0
		if block == 1 {
			h = k.H1
		}
		for _, j := range h.Support() {
			pos := (offset + j) % params.BlockLength
			s.dv.Flip(int(pos))
		}
	}
	return s
}

// FromDense is the O(n*d) construction from a dense error vector.
func FromDense(k *keys.Key, e *bitvec.DenseVector) *Syndrome {
	s := Zero()
	for idx := 0; idx < e.Len(); idx++ {
		if e.Get(idx) == 0 {
			continue
		}
		block, offset := blockOf(uint32(idx))
		h := k.H0
		if block == 1 {
			h = k.H1
		}
		for _, j := range h.Support() {
			pos := (offset + j) % params.BlockLength
			s.dv.Flip(int(pos))
		}
	}
	return s
}

func (s *Syndrome) Get(i int) uint8    { return s.dv.Get(i) }
func (s *Syndrome) Flip(i int)         { s.dv.Flip(i) }
func (s *Syndrome) SetZero(i int)      { s.dv.SetZero(i) }
func (s *Syndrome) SetOne(i int)       { s.dv.SetOne(i) }
func (s *Syndrome) SetAllZero()        { s.dv.SetAllZero() }
func (s *Syndrome) HammingWeight() int { return s.dv.HammingWeight() }

// Contents returns the raw (padded) backing storage.
func (s *Syndrome) Contents() []uint8 { return s.dv.Contents() }

// ContentsWithBuffer returns the backing storage after duplicating the
// first bufLen bits into the padded tail, so a kernel can read indices up
// to BlockLength+bufLen-1 without wrapping.
func (s *Syndrome) ContentsWithBuffer(bufLen int) []uint8 {
	s.dv.DuplicateUpTo(bufLen)
	return s.dv.Contents()
}

// DuplicateUpTo copies the first k logical bits into the padded tail.
func (s *Syndrome) DuplicateUpTo(k int) { s.dv.DuplicateUpTo(k) }

// RecomputeFlippedBit XORs h's support (shifted by pos) into the syndrome,
// used by the decoder when it flips bit pos of block b.
func (s *Syndrome) RecomputeFlippedBit(h *bitvec.SparseVector, pos uint32) {
	for _, j := range h.Support() {
		idx := (pos + j) % params.BlockLength
		s.dv.Flip(int(idx))
	}
}

// Duplicate returns an independent copy of s.
func (s *Syndrome) Duplicate() *Syndrome { return &Syndrome{dv: s.dv.Duplicate()} }

// Equal reports bitwise equality over the logical length.
func (s *Syndrome) Equal(other *Syndrome) bool {
	for i := 0; i < params.BlockLength; i++ {
		if s.Get(i) != other.Get(i) {
			return false
		}
	}
	return true
}
