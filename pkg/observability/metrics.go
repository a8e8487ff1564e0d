package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "strata"

// Metrics groups the collectors for sampling, caching, evaluation and builds.
type Metrics struct {
	Evaluations    *prometheus.CounterVec
	GridSamples    *prometheus.CounterVec
	SampleDuration *prometheus.HistogramVec
	CacheLookups   *prometheus.CounterVec
	BuildSteps     *prometheus.CounterVec
	StepDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of point stress evaluations served by API adapters",
			},
			[]string{"adapter"},
		),
		GridSamples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grid_points_total",
				Help:      "Total number of grid points sampled",
			},
			[]string{"components"},
		),
		SampleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grid_sample_duration_seconds",
				Help:      "Duration of full grid sampling runs",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"components"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_cache_lookups_total",
				Help:      "Field cache lookups by result",
			},
			[]string{"result"},
		),
		BuildSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "build_steps_total",
				Help:      "Build pipeline steps by outcome",
			},
			[]string{"step", "status"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_step_duration_seconds",
				Help:      "Duration of build pipeline steps",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"step"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Evaluations, m.GridSamples, m.SampleDuration, m.CacheLookups, m.BuildSteps, m.StepDuration)
	}
	return m
}

// ObserveEvaluations counts n point evaluations served by adapter.
func (m *Metrics) ObserveEvaluations(adapter string, n int) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(adapter).Add(float64(n))
}

// ObserveSample records a finished grid sampling run.
func (m *Metrics) ObserveSample(components string, points int, d time.Duration) {
	if m == nil {
		return
	}
	m.GridSamples.WithLabelValues(components).Add(float64(points))
	m.SampleDuration.WithLabelValues(components).Observe(d.Seconds())
}

// ObserveCache records a cache lookup; result is "hit", "miss" or "error".
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveStep records a finished build step.
func (m *Metrics) ObserveStep(step, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.BuildSteps.WithLabelValues(step, status).Inc()
	m.StepDuration.WithLabelValues(step).Observe(d.Seconds())
}
