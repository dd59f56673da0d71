package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	for _, c := range m.collectors() {
		require.NoError(t, reg.Register(c))
	}

	m.Evaluations.WithLabelValues("success").Inc()
	m.Warnings.WithLabelValues("iwvc_clamped").Add(2)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Evaluations.WithLabelValues("success")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Warnings.WithLabelValues("iwvc_clamped")), 0)
}

func TestMetrics_Namespace(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.MessagesConsumed))
	m.MessagesConsumed.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "propa_messages_consumed_total", families[0].GetName())
}
