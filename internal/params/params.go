// Package params holds the compile-time QC-MDPC/BIKE code parameters shared
// by every other package in this module. They mirror the reference
// implementation's BLOCK_LENGTH/BLOCK_WEIGHT/ERROR_WEIGHT/NB_ITER constants.
package params

// Default BIKE-1-level parameters.
const (
	BlockLength = 587 // r: circulant block length, prime
	BlockWeight = 15  // d: weight of each circulant block
	ErrorWeight = 18  // t: Hamming weight of the planted error
	NbIter      = 7   // number of BGF decoder iterations
	GrayThresholdDiff = 3
)

// CodeLength is n = 2r, the full code length.
func CodeLength() int { return 2 * BlockLength }

// RowLength is the length of one row of the parity-check matrix in its
// quasi-cyclic representation, 2r.
func RowLength() int { return 2 * BlockLength }

// RowWeight is the weight of one row of the parity-check matrix, 2d.
func RowWeight() int { return 2 * BlockWeight }

// TannerGraphEdges is the total edge count of the Tanner graph, d*2r.
func TannerGraphEdges() int { return BlockWeight * RowLength() }

// AvxBuffLen is the number of 256-bit lanes processed per outer UPC step by
// the batched SIMD-dispatch path.
const AvxBuffLen = 8

// LaneBytes is the width in bytes of one AVX2 lane (256 bits).
const LaneBytes = 32

// SizeAVX is the padded storage length (in bytes) of a syndrome buffer. The
// UPC kernel reads s[(i+j)] for i,j both in [0, BlockLength), i.e. indices up
// to 2*BlockLength-2; after DuplicateUpTo(BlockLength-1) that whole range
// must be addressable without wrapping, so storage must be at least
// 2*BlockLength bytes, further rounded up to a whole number of
// AvxBuffLen*LaneBytes-byte batches for the SIMD dispatch path.
func SizeAVX() int {
	minBytes := 2 * BlockLength
	batch := AvxBuffLen * LaneBytes
	return ((minBytes + batch - 1) / batch) * batch
}

// BFThresholdMin is the minimum BGF threshold, ceil((d+1)/2).
func BFThresholdMin() uint8 {
	return uint8((BlockWeight + 2) / 2)
}

// BFMaskedThreshold is the constant threshold used for the masked black/gray
// half-steps of iteration 0, BFThresholdMin()+1.
func BFMaskedThreshold() uint8 {
	return BFThresholdMin() + 1
}
