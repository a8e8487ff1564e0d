package observability_test

import (
	"testing"
	"time"

	"github.com/aretw0/strata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveSample("Sxx", 2601, 10*time.Millisecond)
	m.ObserveCache("hit")
	m.ObserveCache("miss")
	m.ObserveCache("miss")
	m.ObserveStep("build-library", "done", time.Second)
	m.ObserveEvaluations("http", 3)

	assert.Equal(t, 2601.0, testutil.ToFloat64(m.GridSamples.WithLabelValues("Sxx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildSteps.WithLabelValues("build-library", "done")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("http")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSample("all", 1, time.Millisecond)
		m.ObserveCache("hit")
		m.ObserveStep("x", "done", 0)
		m.ObserveEvaluations("mcp", 1)
	})
}
