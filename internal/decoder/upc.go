// Package decoder implements the BGF (Black-Gray-Flip) bit-flipping decoder:
// the unsatisfied-parity-check kernel (scalar and SIMD-dispatched batched
// paths), the black/gray masked iteration structure, and the cycle finder
// used to certify "stable" decoder output for absorbing-set analysis.
package decoder

import (
	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/syndrome"
)

// computeUPC is the active UPC kernel, chosen at process start by
// initSIMDSelection (upc_amd64.go) or left at the scalar default
// (upc_generic.go) depending on build tags and runtime CPU features.
var computeUPC = scalarUPC

// simdAvailable reports whether the batched SIMD-dispatch path was selected;
// exposed for tests that must exercise both paths.
var simdAvailable = false

// scalarUPC computes upc[i] = sum_{j in h.support} s[(i+j) mod r] for
// i in [0, r), reading past r via the syndrome's duplicated padding so no
// modulo is needed in the inner loop.
func scalarUPC(s *syndrome.Syndrome, h *bitvec.SparseVector) []uint8 {
	r := params.BlockLength
	s.DuplicateUpTo(r - 1)
	buf := s.Contents()
	upc := make([]uint8, r)
	for _, j := range h.Support() {
		jj := int(j)
		for i := 0; i < r; i++ {
			upc[i] += buf[i+jj]
		}
	}
	return upc
}

// batchedUPC is functionally identical to scalarUPC but processes i in
// AvxBuffLen-wide batches, the portable analogue of the reference's
// eight-lane AVX2 kernel (see SPEC_FULL.md section 4.E). Both paths must
// produce bit-identical output; this is verified in upc_test.go.
func batchedUPC(s *syndrome.Syndrome, h *bitvec.SparseVector) []uint8 {
	r := params.BlockLength
	s.DuplicateUpTo(r - 1)
	buf := s.Contents()
	upc := make([]uint8, r)
	supp := h.Support()
	for base := 0; base < r; base += params.AvxBuffLen {
		end := base + params.AvxBuffLen
		if end > r {
			end = r
		}
		for _, j := range supp {
			jj := int(j)
			for i := base; i < end; i++ {
				upc[i] += buf[i+jj]
			}
		}
	}
	return upc
}

// UPC computes the unsatisfied-parity-check array for both key blocks.
func UPC(s *syndrome.Syndrome, k *keys.Key) (upc0, upc1 []uint8) {
	return computeUPC(s, k.H0), computeUPC(s, k.H1)
}
