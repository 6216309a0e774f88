package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/manifest-network/onesum/internal/checksum"
)

const namespace = "onesum"

// Recorder counts checksum activity. A nil Recorder records nothing.
type Recorder struct {
	computations     prometheus.Counter
	verifications    *prometheus.CounterVec
	carryWraps       prometheus.Counter
	bitFlips         prometheus.Counter
	blocksPerRequest prometheus.Histogram
}

// NewRecorder creates the checksum metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		computations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checksum_computations_total",
			Help:      "Number of checksums computed",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Number of packets verified, by result",
		}, []string{"result"}),
		carryWraps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carry_wraps_total",
			Help:      "Number of additions whose carry wrapped around",
		}),
		bitFlips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bit_flips_total",
			Help:      "Number of bits flipped on request",
		}),
		blocksPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "blocks_per_request",
			Help:      "Number of blocks summed per computation or verification",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{r.computations, r.verifications, r.carryWraps, r.bitFlips, r.blocksPerRequest} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveCompute(blocks int, result *checksum.Result) {
	if r == nil {
		return
	}
	r.computations.Inc()
	r.blocksPerRequest.Observe(float64(blocks))
	r.observeSteps(result.Steps)
}

func (r *Recorder) ObserveVerify(blocks int, outcome *checksum.Outcome) {
	if r == nil {
		return
	}
	result := "invalid"
	if outcome.Valid {
		result = "valid"
	}
	r.verifications.WithLabelValues(result).Inc()
	r.blocksPerRequest.Observe(float64(blocks))
	r.observeSteps(outcome.Steps)
}

func (r *Recorder) ObserveFlip() {
	if r == nil {
		return
	}
	r.bitFlips.Inc()
}

func (r *Recorder) observeSteps(steps []checksum.CalculationStep) {
	for _, s := range steps {
		if s.Kind == checksum.StepAddWithCarry {
			r.carryWraps.Inc()
		}
	}
}
