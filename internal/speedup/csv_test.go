package speedup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEncodeCSV verifies the header and number formatting.
func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, []Row{{
		Size: 30, CPUElapsed: 5, GPUElapsed: 0.5, CPUFOM: 200, GPUFOM: 1000, SpeedupTime: 10, SpeedupFOM: 5,
	}}))
	require.Equal(t,
		"size,cpu_elapsed_s,gpu_elapsed_s,cpu_fom,gpu_fom,speedup_time,speedup_fom\n30,5,0.5,200,1000,10,5\n",
		buf.String())
}

// TestWriteCSVRejectsEmpty verifies no file is written without rows.
func TestWriteCSVRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speedup.csv")
	require.Error(t, WriteCSV(path, nil))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, WriteCSV(path, []Row{{Size: 1}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "1,0,0,0,0,0,0")
}
