package trial

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hastd/bikedfr/internal/appconfig"
	"github.com/hastd/bikedfr/internal/prng"
	"github.com/hastd/bikedfr/internal/record"
	"github.com/hastd/bikedfr/internal/threshold"
)

// progress is one worker's per-batch report: how many trials it ran and
// how many of them failed.
type progress struct {
	trials   uint64
	failures uint64
}

// failureMsg pairs a recorded failure with the worker id that produced it.
type failureMsg struct {
	workerID int
	failure  record.DecodingFailure
}

// RunParallel spawns a worker pool of the configured width, each running
// independent batches of trials on its own RNG substream, and multiplexes
// their output through a dedicated recorder loop. Workers report failures
// and per-batch progress over two channels; the recorder drains failures
// preferentially while the capped record list has room, then processes
// progress updates, writing a checkpoint after each one. Dropping interest
// in the failure channel (by no longer receiving from it once the cap is
// hit) is this harness's cooperative-cancellation signal to the workers,
// whose sends are best-effort.
func RunParallel(settings appconfig.Settings, sink *Sink, metrics *Metrics) (record.DataRecord, error) {
	seed, err := resolveSeed(settings)
	if err != nil {
		return record.DataRecord{}, err
	}

	workerCount := settings.Threads
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	oracle := newOracle()
	rec := record.NewDataRecord(settings.TrialSettings.KeyFilter, settings.TrialSettings.FixedKey, &workerCount)
	rec.SetSeed(seed)

	failureCh := make(chan failureMsg, 256)
	progressCh := make(chan progress, 256)

	saveFreq := settings.SaveFrequency()
	perWorker := distributeTrials(settings.NumTrials, uint64(workerCount))

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		trialsForWorker := perWorker[w]
		if trialsForWorker == 0 {
			continue
		}
		workerID := int(prng.NextWorkerID())
		rng := prng.FromSeedWithJumps(seed, uint32(workerID))
		wg.Add(1)
		go func(trials uint64, workerID int, rng *prng.Xoshiro256pp) {
			defer wg.Done()
			runWorker(settings, oracle, rng, workerID, trials, saveFreq, failureCh, progressCh)
		}(trialsForWorker, workerID, rng)
	}

	go func() {
		wg.Wait()
		close(failureCh)
		close(progressCh)
	}()

	recordFailures(settings, &rec, failureCh, progressCh, sink, metrics)
	return rec, nil
}

// distributeTrials splits total trials as evenly as possible across
// workerCount workers.
func distributeTrials(total, workerCount uint64) []uint64 {
	if workerCount == 0 {
		return nil
	}
	out := make([]uint64, workerCount)
	base := total / workerCount
	rem := total % workerCount
	for i := range out {
		out[i] = base
		if uint64(i) < rem {
			out[i]++
		}
	}
	return out
}

// runWorker executes trials in batches of size min(saveFreq, remaining),
// sending each failure on failureCh (best-effort: a full channel drops the
// send rather than blocking the worker; the channel is closed only after
// every worker has returned) and one progress report per batch.
func runWorker(settings appconfig.Settings, oracle *threshold.Oracle, rng *prng.Xoshiro256pp, workerID int, trials, saveFreq uint64, failureCh chan<- failureMsg, progressCh chan<- progress) {
	remaining := trials
	for remaining > 0 {
		batch := saveFreq
		if batch > remaining {
			batch = remaining
		}
		var failures uint64
		for i := uint64(0); i < batch; i++ {
			oc := runOne(settings.TrialSettings, oracle, rng)
			if oc.result.Success {
				continue
			}
			failures++
			msg := failureMsg{workerID: workerID, failure: record.FromResult(oc.result, oc.source, &workerID)}
			select {
			case failureCh <- msg:
			default:
			}
		}
		remaining -= batch
		progressCh <- progress{trials: batch, failures: failures}
	}
}

// recordFailures is the recorder loop: while the capped record list has
// room, it drains the failure channel (non-blocking, so progress is never
// starved); it always drains progress, checkpointing after each update.
// Once both channels are closed and drained, it writes a final checkpoint.
func recordFailures(settings appconfig.Settings, rec *record.DataRecord, failureCh <-chan failureMsg, progressCh <-chan progress, sink *Sink, metrics *Metrics) {
	start := time.Now()
	fch := failureCh
	pch := progressCh

	for fch != nil || pch != nil {
		if fch != nil && uint64(len(rec.DecodingFailures)) >= settings.RecordMax {
			fch = nil // cap reached: stop taking an interest in failures
		}

		// Drain any failures waiting right now without blocking progress.
		drainLoop:
		for fch != nil {
			select {
			case msg, ok := <-fch:
				if !ok {
					fch = nil
					break drainLoop
				}
				if uint64(len(rec.DecodingFailures)) < settings.RecordMax {
					rec.DecodingFailures = append(rec.DecodingFailures, msg.failure)
					if settings.Verbose >= 3 {
						log.Info().Int("worker", msg.workerID).
							Interface("h0", msg.failure.H0).
							Interface("h1", msg.failure.H1).
							Interface("error_vector", msg.failure.ESupp).
							Msg("decoding failure")
						if uint64(len(rec.DecodingFailures)) == settings.RecordMax {
							log.Info().Msg("decoding failure cap reached; further failures counted only")
						}
					}
				} else {
					fch = nil
				}
			default:
				break drainLoop
			}
		}

		if pch == nil {
			if fch == nil {
				break
			}
			continue
		}

		p, ok := <-pch
		if !ok {
			pch = nil
			continue
		}
		rec.NumTrials += int64(p.trials)
		rec.NumFailures += int64(p.failures)
		metrics.observeBatch(p.trials, p.failures)
		rec.Runtime = record.Duration(time.Since(start))
		if settings.Verbose >= 2 {
			log.Info().Int64("failures", rec.NumFailures).Int64("trials", rec.NumTrials).Msg("checkpoint")
		}
		sink.Write(rec)
		metrics.observeCheckpoint()
	}
	sink.Write(rec)
	metrics.observeCheckpoint()
}
