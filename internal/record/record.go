// Package record defines the JSON-serialisable run output: parameters,
// per-failure records, and the aggregate DataRecord checkpoint/final shape.
package record

import (
	"github.com/hastd/bikedfr/internal/decoder"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/ncw"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/prng"
)

// FixedKey is the nullable {h0, h1} payload for a run pinned to one key.
type FixedKey struct {
	H0 []uint32 `json:"h0"`
	H1 []uint32 `json:"h1"`
}

// CycleData mirrors decoder.CycleData for JSON serialisation.
type CycleData struct {
	Start          int   `json:"start"`
	Length         int   `json:"length"`
	Weight         int   `json:"weight"`
	SyndromeWeight int   `json:"syndrome_weight"`
	Threshold      uint8 `json:"threshold"`
	MaxUPC         uint8 `json:"max_upc"`
}

func cycleDataFrom(c *decoder.CycleData) *CycleData {
	if c == nil {
		return nil
	}
	return &CycleData{
		Start:          c.Start,
		Length:         c.Length,
		Weight:         c.Weight,
		SyndromeWeight: c.SyndromeWeight,
		Threshold:      c.Threshold,
		MaxUPC:         c.MaxUPC,
	}
}

// DecodingFailure is the canonical (sorted-support) projection of one
// failed trial, optionally annotated with the worker that produced it.
type DecodingFailure struct {
	H0       []uint32   `json:"h0"`
	H1       []uint32   `json:"h1"`
	ESupp    []uint32   `json:"e_supp"`
	ESource  Provenance `json:"e_source"`
	Thread   *int       `json:"thread,omitempty"`
}

// FromResult projects a decoder.Result and its tagged error source into a
// DecodingFailure, attaching workerID when the trial ran on a worker.
func FromResult(res decoder.Result, source ncw.Source, workerID *int) DecodingFailure {
	return DecodingFailure{
		H0:      res.Key.H0.Sorted().Support(),
		H1:      res.Key.H1.Sorted().Support(),
		ESupp:   res.EIn.Sorted().Support(),
		ESource: Provenance(source),
		Thread:  workerID,
	}
}

// DataRecord is the aggregate run output: parameters, filter, counts, the
// (capped) failure list, seed, elapsed time and optional worker count.
type DataRecord struct {
	R                  int               `json:"r"`
	D                  int               `json:"d"`
	T                  int               `json:"t"`
	Iterations         int               `json:"iterations"`
	GrayThresholdDiff  int               `json:"gray_threshold_diff"`
	BFThresholdMin     uint8             `json:"bf_threshold_min"`
	BFMaskedThreshold  uint8             `json:"bf_masked_threshold"`
	KeyFilter          KeyFilter         `json:"key_filter"`
	FixedKey           *FixedKey         `json:"fixed_key"`
	NumFailures        int64             `json:"num_failures"`
	NumTrials          int64             `json:"num_trials"`
	DecodingFailures   []DecodingFailure `json:"decoding_failures"`
	Seed               string            `json:"seed"`
	Runtime            Duration          `json:"runtime"`
	ThreadCount        *int              `json:"thread_count"`
}

// NewDataRecord builds a DataRecord header from the fixed compile-time
// parameters and the given filter/fixed-key/thread-count settings; callers
// fill in counts, failures, seed and runtime as a run progresses.
func NewDataRecord(filter keys.Filter, fixedKey *keys.Key, threadCount *int) DataRecord {
	var fk *FixedKey
	if fixedKey != nil {
		fk = &FixedKey{H0: fixedKey.H0.Sorted().Support(), H1: fixedKey.H1.Sorted().Support()}
	}
	return DataRecord{
		R:                 params.BlockLength,
		D:                 params.BlockWeight,
		T:                 params.ErrorWeight,
		Iterations:        params.NbIter,
		GrayThresholdDiff: params.GrayThresholdDiff,
		BFThresholdMin:    params.BFThresholdMin(),
		BFMaskedThreshold: params.BFMaskedThreshold(),
		KeyFilter:         KeyFilter(filter),
		FixedKey:          fk,
		ThreadCount:       threadCount,
	}
}

// DecodingFailureRatio returns NumFailures/NumTrials, or 0 if no trials ran.
func (r DataRecord) DecodingFailureRatio() float64 {
	if r.NumTrials == 0 {
		return 0
	}
	return float64(r.NumFailures) / float64(r.NumTrials)
}

// SetSeed stamps the record's seed field from a prng.Seed.
func (r *DataRecord) SetSeed(s prng.Seed) {
	r.Seed = s.String()
}
