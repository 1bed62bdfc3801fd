package http

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"docker-demo/internal/infrastructure/metrics"
)

func gather(t *testing.T, m *metrics.PrometheusMetrics) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}
	return byName
}

func activeRequests(t *testing.T, m *metrics.PrometheusMetrics) float64 {
	t.Helper()
	mf, ok := gather(t, m)["http_requests_active"]
	require.True(t, ok)
	return mf.GetMetric()[0].GetGauge().GetValue()
}

func durationCount(t *testing.T, m *metrics.PrometheusMetrics) uint64 {
	t.Helper()
	mf, ok := gather(t, m)["http_request_duration_seconds"]
	require.True(t, ok)
	return mf.GetMetric()[0].GetHistogram().GetSampleCount()
}

// requestCount returns 0 when the series has never been recorded.
func requestCount(t *testing.T, m *metrics.PrometheusMetrics, method, path, status string) float64 {
	t.Helper()
	mf, ok := gather(t, m)["http_requests_total"]
	if !ok {
		return 0
	}

	for _, metric := range mf.GetMetric() {
		labels := make(map[string]string)
		for _, lp := range metric.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["method"] == method && labels["endpoint"] == path && labels["status"] == status {
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}
