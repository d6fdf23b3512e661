package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.ProviderCall("executive_summary", OutcomeOK)
	m.ProviderCall("executive_summary", OutcomeError)
	m.ProviderCall("executive_summary", OutcomeError)
	m.Fallback("capabilities")
	m.ReportGenerated()
	m.Merged(3)
	m.Merged(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("executive_summary", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("executive_summary", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerFallbacks.WithLabelValues("capabilities")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.merges))
}

func TestMetrics_InFlightGauge(t *testing.T) {
	m := New()
	m.WriteStarted()
	m.WriteStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.writesInFlight))
	m.WriteFinished()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writesInFlight))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ProviderCall("x", OutcomeOK)
		m.Fallback("x")
		m.WriteStarted()
		m.WriteFinished()
		m.WriteFailed()
		m.ReportGenerated()
		m.Merged(2)
		_ = m.WriteTextfile("ignored")
	})
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ReportGenerated()
	path := filepath.Join(t.TempDir(), "aiready.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "aiready_reports_generated_total 1")
}
