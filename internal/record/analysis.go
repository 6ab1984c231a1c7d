package record

import "github.com/hastd/bikedfr/internal/graph"

// NcwOverlaps mirrors ncw.Overlaps for JSON serialisation.
type NcwOverlaps struct {
	C    int `json:"C"`
	N    int `json:"N"`
	TwoN int `json:"2N"`
}

// AbsorbingFailure is the offline per-failure analysis output: the stable
// diff's support, its odd check nodes, and optional near-codeword overlaps.
type AbsorbingFailure struct {
	Supp          []uint32     `json:"supp"`
	OddCheckNodes []int        `json:"odd_check_nodes"`
	IsAbsorbing   bool         `json:"is_absorbing"`
	Overlaps      *NcwOverlaps `json:"overlaps,omitempty"`
}

// FromGraphFailure projects a graph.AbsorbingFailure into its JSON shape.
func FromGraphFailure(af graph.AbsorbingFailure) AbsorbingFailure {
	out := AbsorbingFailure{
		Supp:          af.Supp,
		OddCheckNodes: af.OddCheckNodes,
		IsAbsorbing:   af.IsAbsorbing,
	}
	if af.Overlaps != nil {
		out.Overlaps = &NcwOverlaps{C: af.Overlaps.C, N: af.Overlaps.N, TwoN: af.Overlaps.TwoN}
	}
	return out
}

// AnalysisRecord aggregates an offline analysis pass's results: the decoder
// parameters it was run against, how many failures were certified
// absorbing, how many were classified in total, and the per-failure detail.
type AnalysisRecord struct {
	R             int                `json:"r"`
	D             int                `json:"d"`
	T             int                `json:"t"`
	NumAbsorbing  int                `json:"num_absorbing"`
	NumClassified int                `json:"num_classified"`
	Failures      []AbsorbingFailure `json:"failures"`
}
