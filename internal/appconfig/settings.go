package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/ncw"
	"github.com/hastd/bikedfr/internal/prng"
)

// MinSaveFrequency is the floor applied to any explicitly requested save
// frequency; requests below it are clamped up, never rejected.
const MinSaveFrequency uint64 = 10000

// MaxThreadCount bounds an explicit --threads request.
const MaxThreadCount = 1024

var (
	ErrInvalidFixedKey = errors.New("appconfig: fixed key does not match key filter")
	ErrNCWDependency   = errors.New("appconfig: ncw-overlap requires ncw to be set")
	ErrNCWRange        = errors.New("appconfig: ncw-overlap out of range for the selected class")
)

// OutputKind distinguishes where a run's records should be written.
type OutputKind int

const (
	OutputStdout OutputKind = iota
	OutputFile
	OutputVoid
)

// OutputTo is the fully resolved output sink.
type OutputTo struct {
	Kind OutputKind
	Path string
}

// TrialSettings bundles the per-trial sampling configuration: which keys to
// accept, an optional pinned key, and an optional near-codeword class/l.
type TrialSettings struct {
	KeyFilter  keys.Filter
	FixedKey   *keys.Key
	NCWClass   ncw.Class
	HasNCW     bool
	NCWOverlap int
	HasOverlap bool
}

// NewTrialSettings validates a candidate TrialSettings: a fixed key must
// pass the filter, and an overlap request must name a class and stay within
// that class's max_l.
func NewTrialSettings(filter keys.Filter, fixedKey *keys.Key, ncwClass ncw.Class, hasNCW bool, overlap int, hasOverlap bool) (TrialSettings, error) {
	if fixedKey != nil {
		if err := fixedKey.Validate(); err != nil {
			return TrialSettings{}, fmt.Errorf("appconfig: fixed key support invalid: %w", err)
		}
		if !fixedKey.Matches(filter) {
			return TrialSettings{}, ErrInvalidFixedKey
		}
	}
	if hasOverlap {
		if !hasNCW {
			return TrialSettings{}, ErrNCWDependency
		}
		if overlap > ncwClass.MaxL() {
			return TrialSettings{}, ErrNCWRange
		}
	}
	return TrialSettings{
		KeyFilter:  filter,
		FixedKey:   fixedKey,
		NCWClass:   ncwClass,
		HasNCW:     hasNCW,
		NCWOverlap: overlap,
		HasOverlap: hasOverlap,
	}, nil
}

// Settings is the fully resolved, validated run configuration.
type Settings struct {
	NumTrials     uint64
	TrialSettings TrialSettings
	saveFrequency uint64 // 0 means "unset"; SaveFrequency() falls back to NumTrials
	RecordMax     uint64
	Verbose       int
	Seed          *prng.Seed
	SeedIndex     *uint32
	Threads       int
	Output        OutputTo
	Overwrite     bool
}

// SaveFrequency returns the effective checkpoint cadence: the explicit
// value if set, otherwise the full trial count (checkpoint only at the end).
func (s Settings) SaveFrequency() uint64 {
	if s.saveFrequency == 0 {
		return s.NumTrials
	}
	return s.saveFrequency
}

// Parallel reports whether the run should use more than one worker.
func (s Settings) Parallel() bool { return s.Threads != 1 }

type fixedKeyJSON struct {
	H0 []uint32 `json:"h0"`
	H1 []uint32 `json:"h1"`
}

// FromArgs translates parsed CLI flags into a validated Settings, mirroring
// the reference's Args -> Settings translation (scientific-notation trial
// counts, clamped save frequency, thread-count defaulting tied to
// --parallel).
func FromArgs(a Args) (Settings, error) {
	numberF, err := parseSciFloat(a.NumberStr)
	if err != nil {
		return Settings{}, fmt.Errorf("appconfig: -N/--number must be a number: %w", err)
	}

	filter, err := keys.NewFilter(a.WeakKeys, a.WeakKeyThreshold)
	if err != nil {
		return Settings{}, fmt.Errorf("appconfig: invalid weak-key filter: %w", err)
	}

	var fixedKey *keys.Key
	if a.FixedKey != "" {
		var raw fixedKeyJSON
		if err := json.Unmarshal([]byte(a.FixedKey), &raw); err != nil {
			return Settings{}, fmt.Errorf("appconfig: --fixed-key should be valid JSON representing a key: %w", err)
		}
		k, err := keys.FromSupport(raw.H0, raw.H1)
		if err != nil {
			return Settings{}, fmt.Errorf("appconfig: --fixed-key invalid: %w", err)
		}
		fixedKey = k.Sorted()
	}

	var ncwClass ncw.Class
	hasNCW := a.NCW != ""
	if hasNCW {
		ncwClass, err = ncwClassFromFlag(a.NCW)
		if err != nil {
			return Settings{}, err
		}
	}

	trialSettings, err := NewTrialSettings(filter, fixedKey, ncwClass, hasNCW, a.NCWOverlap, a.NCWOverlapSet)
	if err != nil {
		return Settings{}, err
	}

	var saveFreq uint64
	if a.SaveFreqSet {
		sf := uint64(a.SaveFreq)
		if sf < MinSaveFrequency {
			sf = MinSaveFrequency
		}
		saveFreq = sf
	}

	var seed *prng.Seed
	if a.Seed != "" {
		s, err := prng.SeedFromHex(a.Seed)
		if err != nil {
			return Settings{}, fmt.Errorf("appconfig: --seed should be a 256-bit hex string: %w", err)
		}
		seed = &s
	}

	var seedIndex *uint32
	if a.SeedIndexSet {
		idx := a.SeedIndex
		seedIndex = &idx
	}

	// Default if --threads isn't given: 1 unless --parallel is set, in which
	// case 0 (meaning "let the pool decide", mirroring Rayon's auto-sizing).
	threads := 1
	if a.Parallel {
		threads = 0
	}
	if a.ThreadsSet {
		threads = a.Threads
		if threads < 1 {
			threads = 1
		}
		if threads > MaxThreadCount {
			threads = MaxThreadCount
		}
	}

	output := OutputTo{Kind: OutputStdout}
	if a.Output != "" {
		output = OutputTo{Kind: OutputFile, Path: a.Output}
	}

	return Settings{
		NumTrials:     uint64(numberF),
		TrialSettings: trialSettings,
		saveFrequency: saveFreq,
		RecordMax:     uint64(a.RecordMax),
		Verbose:       a.Verbose,
		Seed:          seed,
		SeedIndex:     seedIndex,
		Threads:       threads,
		Output:        output,
		Overwrite:     a.Overwrite,
	}, nil
}

func ncwClassFromFlag(s string) (ncw.Class, error) {
	switch s {
	case "C", "c":
		return ncw.ClassC, nil
	case "N", "n":
		return ncw.ClassN, nil
	case "2N", "2n":
		return ncw.Class2N, nil
	default:
		return 0, fmt.Errorf("appconfig: unrecognised --ncw class %q", s)
	}
}

func parseSciFloat(s string) (float64, error) {
	var f float64
	if s == "" {
		return 0, errors.New("missing value")
	}
	_, err := fmt.Sscanf(s, "%g", &f)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}
