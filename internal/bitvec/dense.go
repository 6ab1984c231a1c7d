package bitvec

// DenseVector is a fixed-length bit sequence over GF(2). Storage may be
// padded beyond the logical length (see NewPaddedDenseVector) so a
// SIMD-friendly kernel can read past the end without wrapping; only indices
// in [0, Len()) are semantically meaningful.
type DenseVector struct {
	length int
	bits   []uint8
}

// NewDenseVector returns an all-zero dense vector of exactly length bits of
// storage.
func NewDenseVector(length int) *DenseVector {
	return &DenseVector{length: length, bits: make([]uint8, length)}
}

// NewPaddedDenseVector returns an all-zero dense vector whose logical length
// is `length` but whose backing storage is `storageLen` bytes (storageLen
// must be >= length); the padded tail is populated by DuplicateUpTo.
func NewPaddedDenseVector(length, storageLen int) *DenseVector {
	return &DenseVector{length: length, bits: make([]uint8, storageLen)}
}

// Len returns the logical (semantic) length.
func (d *DenseVector) Len() int { return d.length }

// StorageLen returns the full backing-slice length, which may exceed Len().
func (d *DenseVector) StorageLen() int { return len(d.bits) }

func (d *DenseVector) Get(i int) uint8 { return d.bits[i] }

func (d *DenseVector) Flip(i int) { d.bits[i] ^= 1 }

func (d *DenseVector) SetOne(i int) { d.bits[i] = 1 }

func (d *DenseVector) SetZero(i int) { d.bits[i] = 0 }

func (d *DenseVector) SetAllZero() {
	for i := range d.bits {
		d.bits[i] = 0
	}
}

// Support returns the sorted list of set-bit indices within the logical
// length.
func (d *DenseVector) Support() []uint32 {
	supp := make([]uint32, 0)
	for i := 0; i < d.length; i++ {
		if d.bits[i] != 0 {
			supp = append(supp, uint32(i))
		}
	}
	return supp
}

// HammingWeight returns the number of set bits within the logical length.
func (d *DenseVector) HammingWeight() int {
	count := 0
	for i := 0; i < d.length; i++ {
		if d.bits[i] != 0 {
			count++
		}
	}
	return count
}

// DuplicateUpTo copies the first k bits of the logical content into the
// region immediately following the logical length, so a kernel reading
// index i+j for i+j up to length+k-1 never needs an explicit modulo. The
// backing storage must have room (StorageLen() >= Len()+k).
func (d *DenseVector) DuplicateUpTo(k int) {
	for i := 0; i < k; i++ {
		d.bits[d.length+i] = d.bits[i]
	}
}

// XorWith XORs other's logical content into d in place; both must share the
// same logical length.
func (d *DenseVector) XorWith(other *DenseVector) {
	for i := 0; i < d.length; i++ {
		d.bits[i] ^= other.bits[i]
	}
}

// Contents returns the raw backing slice (no copy, includes any padding).
func (d *DenseVector) Contents() []uint8 { return d.bits }

// Duplicate returns an independent copy of d.
func (d *DenseVector) Duplicate() *DenseVector {
	cp := &DenseVector{length: d.length, bits: append([]uint8(nil), d.bits...)}
	return cp
}
