//go:build amd64 && !noasm

package decoder

import "golang.org/x/sys/cpu"

// initSIMDSelection mirrors the teacher corpus's own dispatch idiom
// (simdpack.go's initSIMDSelection): probe the running CPU once at package
// init and wire computeUPC to the batched path if AVX2 is advertised,
// otherwise leave the scalar default in place.
func initSIMDSelection() {
	if cpu.X86.HasAVX2 {
		computeUPC = batchedUPC
		simdAvailable = true
	}
}

func init() {
	initSIMDSelection()
}
