package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SeedMetrics records seed command runs.
type SeedMetrics struct {
	duration prometheus.Histogram
	success  prometheus.Counter
	failure  prometheus.Counter
	created  *prometheus.CounterVec
}

// NewSeedMetrics registers the seed metrics on the provided registerer.
func NewSeedMetrics(reg prometheus.Registerer) *SeedMetrics {
	if reg == nil {
		return &SeedMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "seed_run_duration_seconds",
		Help:    "Duration of seed runs in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seed_run_success",
		Help: "Seed runs that committed.",
	})
	failure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seed_run_failure",
		Help: "Seed runs that rolled back.",
	})
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seed_rows_created",
		Help: "Rows inserted by the seed, by entity.",
	}, []string{"entity"})
	reg.MustRegister(duration, success, failure, created)
	return &SeedMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		created:  created,
	}
}

// ObserveRun records the outcome and duration of one run.
func (s *SeedMetrics) ObserveRun(elapsed time.Duration, err error) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.Observe(elapsed.Seconds())
	if err != nil {
		s.failure.Inc()
		return
	}
	s.success.Inc()
}

// AddCreated adds n inserted rows for entity.
func (s *SeedMetrics) AddCreated(entity string, n int) {
	if s == nil || s.created == nil || n <= 0 {
		return
	}
	s.created.WithLabelValues(normalizeLabel(entity)).Add(float64(n))
}
