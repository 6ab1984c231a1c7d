package trial

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hastd/bikedfr/internal/appconfig"
	"github.com/hastd/bikedfr/internal/ncw"
	"github.com/hastd/bikedfr/internal/prng"
	"github.com/hastd/bikedfr/internal/record"
)

// RunSingleThreaded drives settings.NumTrials trials on the calling
// goroutine in batches of size min(save frequency, trials remaining),
// emitting a JSON checkpoint to sink after each batch.
func RunSingleThreaded(settings appconfig.Settings, sink *Sink, metrics *Metrics) (record.DataRecord, error) {
	seed, err := resolveSeed(settings)
	if err != nil {
		return record.DataRecord{}, err
	}
	workerID := prng.NextWorkerID()
	rng := prng.FromSeedWithJumps(seed, workerID)
	if settings.SeedIndex != nil {
		rng = prng.FromSeedWithJumps(seed, *settings.SeedIndex)
	}

	oracle := newOracle()
	rec := record.NewDataRecord(settings.TrialSettings.KeyFilter, settings.TrialSettings.FixedKey, nil)
	rec.SetSeed(seed)

	start := time.Now()
	saveFreq := settings.SaveFrequency()
	remaining := settings.NumTrials

	for remaining > 0 {
		batch := saveFreq
		if batch > remaining {
			batch = remaining
		}
		var batchFailures uint64
		for i := uint64(0); i < batch; i++ {
			oc := runOne(settings.TrialSettings, oracle, rng)
			rec.NumTrials++
			if oc.result.Success {
				continue
			}
			rec.NumFailures++
			batchFailures++
			if uint64(len(rec.DecodingFailures)) < settings.RecordMax {
				rec.DecodingFailures = append(rec.DecodingFailures, record.FromResult(oc.result, oc.source, nil))
				if settings.Verbose >= 3 {
					log.Info().
						Interface("h0", oc.result.Key.H0.Support()).
						Interface("h1", oc.result.Key.H1.Support()).
						Interface("error_vector", oc.result.EIn.Support()).
						Str("source", tagFromSource(oc.source)).
						Msg("decoding failure")
					if uint64(len(rec.DecodingFailures)) == settings.RecordMax {
						log.Info().Msg("decoding failure cap reached; further failures counted only")
					}
				}
			}
		}
		remaining -= batch
		metrics.observeBatch(batch, batchFailures)
		rec.Runtime = record.Duration(time.Since(start))
		if settings.Verbose >= 2 {
			log.Info().Int64("failures", rec.NumFailures).Int64("trials", rec.NumTrials).Msg("checkpoint")
		}
		sink.Write(rec)
		metrics.observeCheckpoint()
	}
	return rec, nil
}

func resolveSeed(settings appconfig.Settings) (prng.Seed, error) {
	if settings.Seed != nil {
		return prng.GetOrInsertGlobalSeed(*settings.Seed)
	}
	candidate, err := prng.RandomSeed()
	if err != nil {
		return prng.Seed{}, err
	}
	return prng.GetOrInsertGlobalSeed(candidate)
}

// tagFromSource is used by logging helpers that want a short string form of
// a tagged error's provenance.
func tagFromSource(s ncw.Source) string {
	switch s.Kind {
	case ncw.SourceRandom:
		return "Random"
	case ncw.SourceOther:
		return "Other"
	case ncw.SourceUnknown:
		return "Unknown"
	case ncw.SourceNearCodeword:
		return "NearCodeword(" + s.NCW.Class.String() + ")"
	default:
		return "?"
	}
}
