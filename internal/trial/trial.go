// Package trial runs the decoding-failure-rate harness: single-threaded and
// parallel drivers over the decoder, emitting JSON checkpoints as they go.
package trial

import (
	"github.com/hastd/bikedfr/internal/appconfig"
	"github.com/hastd/bikedfr/internal/bitvec"
	"github.com/hastd/bikedfr/internal/decoder"
	"github.com/hastd/bikedfr/internal/keys"
	"github.com/hastd/bikedfr/internal/ncw"
	"github.com/hastd/bikedfr/internal/params"
	"github.com/hastd/bikedfr/internal/threshold"
)

// outcome is one trial's raw result, paired with the tagged error that
// produced it.
type outcome struct {
	result decoder.Result
	source ncw.Source
}

// runOne draws a key and tagged error per settings, decodes, and reports
// the outcome.
func runOne(ts appconfig.TrialSettings, oracle *threshold.Oracle, rng bitvec.RNG) outcome {
	var k *keys.Key
	if ts.FixedKey != nil {
		k = ts.FixedKey
	} else {
		k = keys.RandomFiltered(ts.KeyFilter, rng)
	}

	var tagged *ncw.Tagged
	if ts.HasNCW {
		l := ts.NCWOverlap
		if !ts.HasOverlap {
			l = 0
		}
		tagged = ncw.Sample(ts.NCWClass, k, l, rng)
	} else {
		tagged = ncw.RandomTagged(rng)
	}

	res := decoder.DecodeTrial(k, tagged.Vector, oracle)
	return outcome{result: res, source: tagged.Source}
}

func newOracle() *threshold.Oracle {
	o, err := threshold.NewOracle(params.BlockLength, params.BlockWeight, params.ErrorWeight)
	if err != nil {
		panic(err) // compile-time parameters; an error here means params are unusable at all
	}
	return o
}
