//go:build !amd64 || noasm

package decoder

// On non-amd64 targets (or when built with -tags noasm) there is no SIMD
// dispatch to select: computeUPC stays at its scalarUPC default.
func initSIMDSelection() {}

func init() {
	initSIMDSelection()
}
