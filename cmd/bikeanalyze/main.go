// Command bikeanalyze is the offline companion to bikedfr: it reads a JSON
// array of recorded decoding failures on standard input, certifies each
// failure's stable diff against the key's Tanner graph, and writes either
// the per-failure detail or an aggregate summary to standard output.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/graph"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/record"
	"github.com/hastd/bikedfr/internal/threshold"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "bikeanalyze:", err)
		os.Exit(1)
	}
}

func run(argv []string, in io.Reader, out io.Writer) error {
	fs := pflag.NewFlagSet("bikeanalyze", pflag.ContinueOnError)
	aggregate := fs.BoolP("aggregate", "a", false, "emit a single AnalysisRecord instead of a per-failure array")
	overlaps := fs.BoolP("overlaps", "o", false, "also compute near-codeword overlap metrics for each failure")
	if err := fs.Parse(argv); err != nil {
		return err
	}

	var failures []record.DecodingFailure
	dec := json.NewDecoder(in)
	if err := dec.Decode(&failures); err != nil {
		return fmt.Errorf("decode decoding failures: %w", err)
	}

	oracle, err := threshold.NewOracle(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	if err != nil {
		return fmt.Errorf("build threshold oracle: %w", err)
	}

	results := make([]record.AbsorbingFailure, 0, len(failures))
	numAbsorbing := 0
	for i, f := range failures {
		af, err := analyzeFailure(f, oracle, *overlaps)
		if err != nil {
			return fmt.Errorf("failure %d: %w", i, err)
		}
		if af.IsAbsorbing {
			numAbsorbing++
		}
		results = append(results, af)
	}

	enc := json.NewEncoder(out)
	if *aggregate {
		ar := record.AnalysisRecord{
			R:             params.BlockLength,
			D:             params.BlockWeight,
			T:             params.ErrorWeight,
			NumAbsorbing:  numAbsorbing,
			NumClassified: len(results),
			Failures:      results,
		}
		return enc.Encode(ar)
	}
	return enc.Encode(results)
}

// analyzeFailure rebuilds the key and planted error from a recorded failure
// and certifies its stable diff, validating that the failure's supports were
// produced against this build's compile-time block length and block weight.
func analyzeFailure(f record.DecodingFailure, oracle *threshold.Oracle, computeOverlaps bool) (record.AbsorbingFailure, error) {
	h0, err := bitvec.NewFromSupport(params.BlockWeight, uint32(params.BlockLength), f.H0)
	if err != nil {
		return record.AbsorbingFailure{}, fmt.Errorf("h0 does not match this build's block length/weight: %w", err)
	}
	h1, err := bitvec.NewFromSupport(params.BlockWeight, uint32(params.BlockLength), f.H1)
	if err != nil {
		return record.AbsorbingFailure{}, fmt.Errorf("h1 does not match this build's block length/weight: %w", err)
	}
	eIn, err := bitvec.NewFromSupport(params.ErrorWeight, uint32(params.CodeLength()), f.ESupp)
	if err != nil {
		return record.AbsorbingFailure{}, fmt.Errorf("e_supp does not match this build's error weight: %w", err)
	}

	k := keys.New(h0, h1)
	af := graph.NewAbsorbingDecodingFailure(k, eIn, oracle, computeOverlaps)
	return record.FromGraphFailure(af), nil
}
