package ground

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func testRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func TestNewMetricsRegistersAllCollectors(t *testing.T) {
	reg := testRegistry()
	m := NewMetrics(reg)
	require.NotNil(t, m.RulesEmitted)
	require.NotNil(t, m.SubstitutionsTried)
	require.NotNil(t, m.Discards)
	require.NotNil(t, m.FixpointPasses)
	require.NotNil(t, m.ComponentSeconds)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 5)
}
