// Package appconfig translates command-line flags into validated run
// settings for the trial harness and the offline analysis tool.
package appconfig

import (
	"github.com/spf13/pflag"
)

// Args is the raw, unvalidated command-line surface, parsed with pflag the
// way the teacher corpus wires its own flag sets.
type Args struct {
	NumberStr        string
	WeakKeys         int8
	WeakKeyThreshold uint8
	FixedKey         string
	NCW              string
	NCWOverlap       int
	NCWOverlapSet    bool
	Output           string
	Overwrite        bool
	Parallel         bool
	RecordMax        float64
	SaveFreq         float64
	SaveFreqSet      bool
	Seed             string
	SeedIndex        uint32
	SeedIndexSet     bool
	Threads          int
	ThreadsSet       bool
	Verbose          int
}

// ParseArgs registers and parses the CLI flags for the trial-running binary
// into an Args value. The number-of-trials and save-frequency flags are
// kept as strings/float64 (scientific notation, as the reference accepts)
// rather than plain integers so "1.75e4" parses the same way.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Args, error) {
	var a Args
	fs.StringVarP(&a.NumberStr, "number", "N", "", "number of trials (required)")
	fs.Int8VarP(&a.WeakKeys, "weak-keys", "w", 0, "weak key filter (-1: non-weak only; 0: no filter; 1-3: type 1-3 only)")
	fs.Uint8VarP(&a.WeakKeyThreshold, "weak-key-threshold", "T", 3, "weak key threshold")
	fs.StringVar(&a.FixedKey, "fixed-key", "", "always use the specified key (JSON)")
	fs.StringVarP(&a.NCW, "ncw", "S", "", "use error vectors from near-codeword set A_{t,l}(S)")
	fs.IntVarP(&a.NCWOverlap, "ncw-overlap", "l", 0, "overlap parameter l in A_{t,l}(S)")
	fs.StringVarP(&a.Output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&a.Overwrite, "overwrite", false, "overwrite output file without creating a backup")
	fs.BoolVar(&a.Parallel, "parallel", false, "run in parallel with automatically chosen thread count")
	fs.Float64VarP(&a.RecordMax, "recordmax", "m", 10000.0, "max number of decoding failures recorded")
	fs.Float64VarP(&a.SaveFreq, "savefreq", "s", 0, "save-to-disk frequency (default: only at end)")
	fs.StringVar(&a.Seed, "seed", "", "PRNG seed as a 256-bit hex string (default: random)")
	fs.Uint32Var(&a.SeedIndex, "seed-index", 0, "initialize PRNG to match a specific thread index (single-threaded only)")
	fs.IntVar(&a.Threads, "threads", 0, "number of threads (ignores --parallel)")
	fs.CountVarP(&a.Verbose, "verbose", "v", "print statistics and/or decoding failures (repeat for more verbose, max 3)")

	if err := fs.Parse(argv); err != nil {
		return Args{}, err
	}
	a.NCWOverlapSet = fs.Changed("ncw-overlap")
	a.SaveFreqSet = fs.Changed("savefreq")
	a.SeedIndexSet = fs.Changed("seed-index")
	a.ThreadsSet = fs.Changed("threads")
	return a, nil
}
