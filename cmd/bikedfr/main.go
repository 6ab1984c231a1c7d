// Command bikedfr measures the decoding failure rate of the BGF decoder
// over a configurable number of random trials, writing a JSON record of
// the run (and any decoding failures observed) to stdout, a file, or
// nowhere.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/hastd/bikedfr/internal/appconfig"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/trial"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bikedfr:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	fs := pflag.NewFlagSet("bikedfr", pflag.ContinueOnError)
	args, err := appconfig.ParseArgs(fs, argv)
	if err != nil {
		return err
	}
	settings, err := appconfig.FromArgs(args)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(verboseToLevel(settings.Verbose))

	if settings.Verbose >= 1 {
		printStartSummary(settings)
	}

	sink := trial.NewSink(settings.Output, settings.Overwrite)
	var metrics *trial.Metrics
	if os.Getenv("BIKEDFR_METRICS") != "" {
		metrics = trial.NewMetrics(prometheus.DefaultRegisterer)
	}

	start := time.Now()
	var rec interface {
		DecodingFailureRatio() float64
	}
	if settings.Parallel() {
		r, err := trial.RunParallel(settings, sink, metrics)
		if err != nil {
			return err
		}
		rec = r
	} else {
		r, err := trial.RunSingleThreaded(settings, sink, metrics)
		if err != nil {
			return err
		}
		rec = r
	}
	elapsed := time.Since(start)

	if settings.Verbose >= 1 {
		printEndSummary(settings, rec.DecodingFailureRatio(), elapsed)
	}
	return nil
}

func verboseToLevel(v int) zerolog.Level {
	switch {
	case v >= 2:
		return zerolog.InfoLevel
	case v >= 1:
		return zerolog.WarnLevel
	default:
		return zerolog.Disabled
	}
}

func printStartSummary(settings appconfig.Settings) {
	log.Warn().
		Int("r", params.BlockLength).
		Int("d", params.BlockWeight).
		Int("t", params.ErrorWeight).
		Uint64("num_trials", settings.NumTrials).
		Int("threads", settings.Threads).
		Msg("starting bikedfr run")
}

func printEndSummary(settings appconfig.Settings, dfr float64, elapsed time.Duration) {
	var log2dfr float64
	if dfr > 0 {
		log2dfr = math.Log2(dfr)
	} else {
		log2dfr = math.Inf(-1)
	}
	avgMicros := float64(elapsed.Microseconds())
	if settings.NumTrials > 0 {
		avgMicros /= float64(settings.NumTrials)
	}
	log.Warn().
		Float64("dfr", dfr).
		Float64("log2_dfr", log2dfr).
		Dur("runtime", elapsed).
		Float64("avg_trial_us", avgMicros).
		Msg("bikedfr run complete")
}
