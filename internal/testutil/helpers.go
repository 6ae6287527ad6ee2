// Package testutil holds fixture helpers for building run trees in tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// MetricsHeader is the header row of a typical per-dataset metrics.csv.
var MetricsHeader = []string{
	"epoch", "step",
	"test/MeanIoU", "test/BinaryF1Score", "test/BinaryAccuracy", "test/BinarySpecificity",
	"test/BinaryRecall", "test/Dice", "test/BinaryPrecision", "Parameters", "FLOPs",
}

// CreateDummyFile creates a file with content at path, ensuring parent directories exist.
func CreateDummyFile(t *testing.T, path string, content string) {
	t.Helper()
	fullPath := filepath.Clean(path)
	dir := filepath.Dir(fullPath)
	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err, "Failed to create directory %s for dummy file", dir)
	err = os.WriteFile(fullPath, []byte(content), 0644)
	require.NoError(t, err, "Failed to write dummy file %s", fullPath)
}

// CreateDummyDir ensures a directory exists at the given path, creating parents if needed.
func CreateDummyDir(t *testing.T, path string) {
	t.Helper()
	fullPath := filepath.Clean(path)
	err := os.MkdirAll(fullPath, 0755)
	require.NoError(t, err, "Failed to create dummy directory %s", fullPath)
}

// MetricsCSV renders a metrics.csv body with the given header and rows.
func MetricsCSV(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// MetricsRow builds a row for MetricsHeader. ratio fills every fraction column.
func MetricsRow(epoch string, ratio string, params string, flops string) []string {
	return []string{epoch, "100", ratio, ratio, ratio, ratio, ratio, ratio, ratio, params, flops}
}

// CreateDataset writes <base>/<run>/results/<model>/<dataset>/result/metrics.csv.
func CreateDataset(t *testing.T, base, run, model, dataset, content string) string {
	t.Helper()
	path := filepath.Join(base, run, "results", model, dataset, "result", "metrics.csv")
	CreateDummyFile(t, path, content)
	return path
}
