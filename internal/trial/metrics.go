package trial

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the optional Prometheus instrumentation for a run: total
// trials and failures observed, and the checkpoint write count. Nil-safe:
// a nil *Metrics simply skips instrumentation, so callers that don't want
// metrics exposed can pass nil rather than a no-op implementation.
type Metrics struct {
	trialsTotal      prometheus.Counter
	failuresTotal    prometheus.Counter
	checkpointsTotal prometheus.Counter
}

// NewMetrics registers the harness's counters against reg and returns a
// Metrics handle. Passing a fresh prometheus.NewRegistry() keeps this run's
// metrics isolated from the default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		trialsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bikedfr_trials_total",
			Help: "Total number of decoding trials run.",
		}),
		failuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bikedfr_decoding_failures_total",
			Help: "Total number of decoding failures observed.",
		}),
		checkpointsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bikedfr_checkpoints_total",
			Help: "Total number of JSON checkpoints written.",
		}),
	}
	reg.MustRegister(m.trialsTotal, m.failuresTotal, m.checkpointsTotal)
	return m
}

func (m *Metrics) observeBatch(trials, failures uint64) {
	if m == nil {
		return
	}
	m.trialsTotal.Add(float64(trials))
	m.failuresTotal.Add(float64(failures))
}

func (m *Metrics) observeCheckpoint() {
	if m == nil {
		return
	}
	m.checkpointsTotal.Inc()
}
