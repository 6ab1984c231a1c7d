package bitvec

import "errors"

// ErrWrongLength names a mismatch between a support's declared length and
// the vector's length parameter. No function in this package returns it: a
// wrong element count is reported as ErrWrongWeight.
var ErrWrongLength = errors.New("bitvec: wrong length")

// ErrOutOfBounds is returned when a support index falls outside [0, length).
var ErrOutOfBounds = errors.New("bitvec: index out of bounds")

// ErrRepeatedIndex is returned when a support contains a duplicate index.
var ErrRepeatedIndex = errors.New("bitvec: repeated index")

// ErrWrongWeight is returned when a support's element count does not match
// the vector's declared weight.
var ErrWrongWeight = errors.New("bitvec: wrong weight")
