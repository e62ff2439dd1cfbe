package speedup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseSizes verifies list parsing and empty entry handling.
func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes(" 30, 50,,70 ,")
	require.NoError(t, err)
	require.Equal(t, []int{30, 50, 70}, sizes)

	sizes, err = ParseSizes("")
	require.NoError(t, err)
	require.Empty(t, sizes)

	_, err = ParseSizes("30,abc")
	require.Error(t, err)
	_, err = ParseSizes("0")
	require.Error(t, err)
}

// TestCleanEnvDropsDumpVariables verifies dump switches never reach the binaries.
func TestCleanEnvDropsDumpVariables(t *testing.T) {
	env := []string{"PATH=/bin", "LULESH_LOG_DIR=/tmp/x", "LULESH_LOG_STEPS=1", "HOME=/root"}
	require.Equal(t, []string{"PATH=/bin", "HOME=/root"}, CleanEnv(env))
	require.Len(t, env, 4)
}

// TestWithEnvReplaces verifies an existing key is overwritten.
func TestWithEnvReplaces(t *testing.T) {
	env := WithEnv([]string{"OMP_NUM_THREADS=2", "A=b"}, "OMP_NUM_THREADS", "24")
	require.Equal(t, []string{"A=b", "OMP_NUM_THREADS=24"}, env)
}

// TestParseMetricsTakesLastMatch verifies repeated lines keep the final value.
func TestParseMetricsTakesLastMatch(t *testing.T) {
	output := "Run completed:\n" +
		"   Elapsed time         =       1.50 (s)\n" +
		"   FOM                  =    1000.5 (z/s)\n" +
		"   Elapsed time         =       2.25 (s)\n" +
		"   FOM                  =  3.5e+03 (z/s)\n"
	metrics, err := ParseMetrics(output)
	require.NoError(t, err)
	require.Equal(t, Metrics{Elapsed: 2.25, FOM: 3500}, metrics)
}

// TestParseMetricsMissing verifies incomplete output is rejected.
func TestParseMetricsMissing(t *testing.T) {
	_, err := ParseMetrics("Elapsed time = 1.0\n")
	require.True(t, errors.Is(err, ErrMetricsMissing))
	_, err = ParseMetrics("FOM = 1.0\n")
	require.True(t, errors.Is(err, ErrMetricsMissing))
}
