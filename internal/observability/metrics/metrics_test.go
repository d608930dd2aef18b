package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPMetrics_ReusesRegisteredCollectors(t *testing.T) {
	first, err := NewHTTPMetrics()
	require.NoError(t, err)

	second, err := NewHTTPMetrics()
	require.NoError(t, err)

	// Both instances must record against the collectors the default
	// registry exports, not a fresh unregistered set.
	second.requests.WithLabelValues("/api/templates/:id/quote", "POST", "200").Inc()

	got := testutil.ToFloat64(first.requests.WithLabelValues("/api/templates/:id/quote", "POST", "200"))
	require.Equal(t, float64(1), got)
}
