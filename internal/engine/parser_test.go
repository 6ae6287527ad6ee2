package engine

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/daryltucker/result-harvester/internal/testutil"
)

func writeMetrics(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.csv")
	testutil.CreateDummyFile(t, path, content)
	return path
}

func TestParseMetrics_LastRowWins(t *testing.T) {
	path := writeMetrics(t, testutil.MetricsCSV(testutil.MetricsHeader,
		testutil.MetricsRow("1", "0.1", "1000000", "1000000000"),
		testutil.MetricsRow("2", "0.2", "2000000", "2000000000"),
		testutil.MetricsRow("3", "0.3", "3000000", "3000000000"),
	))

	rec, err := ParseMetrics(path, "unet", "leaf-1")
	require.NoError(t, err)

	assert.Equal(t, "unet", rec.Model)
	assert.Equal(t, "leaf-1", rec.Dataset)
	for _, v := range []float64{rec.Miou, rec.F1Score, rec.Accuracy, rec.Specificity, rec.Sensitivity, rec.DSC, rec.Precision} {
		assert.InDelta(t, 30.0, v, 1e-9)
	}
	assert.InDelta(t, 3.0, rec.ParametersM, 1e-9)
	assert.InDelta(t, 3.0, rec.FlopsG, 1e-9)
}

func TestParseMetrics_ColumnsByName(t *testing.T) {
	header := []string{"FLOPs", "test/Dice", "Parameters", "test/BinaryPrecision", "test/BinaryRecall",
		"test/BinarySpecificity", "test/BinaryAccuracy", "test/BinaryF1Score", "test/MeanIoU", "extra"}
	row := []string{"4500000000", "0.91", "31000000", "0.92", "0.93", "0.94", "0.95", "0.96", "0.8123", "ignored"}
	path := writeMetrics(t, testutil.MetricsCSV(header, row))

	rec, err := ParseMetrics(path, "m", "d-1")
	require.NoError(t, err)

	assert.InDelta(t, 81.23, rec.Miou, 0.01)
	assert.InDelta(t, 96.0, rec.F1Score, 1e-9)
	assert.InDelta(t, 95.0, rec.Accuracy, 1e-9)
	assert.InDelta(t, 94.0, rec.Specificity, 1e-9)
	assert.InDelta(t, 93.0, rec.Sensitivity, 1e-9)
	assert.InDelta(t, 91.0, rec.DSC, 1e-9)
	assert.InDelta(t, 92.0, rec.Precision, 1e-9)
	assert.InDelta(t, 31.0, rec.ParametersM, 1e-9)
	assert.InDelta(t, 4.5, rec.FlopsG, 1e-9)
}

func TestParseMetrics_UTF8BOM(t *testing.T) {
	body := "\ufeff" + testutil.MetricsCSV(testutil.MetricsHeader, testutil.MetricsRow("1", "0.5", "1000000", "1000000000"))
	path := writeMetrics(t, body)

	rec, err := ParseMetrics(path, "m", "d-1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, rec.Miou, 1e-9)
}

func TestParseMetrics_UTF16BOM(t *testing.T) {
	body := testutil.MetricsCSV(testutil.MetricsHeader, testutil.MetricsRow("1", "0.25", "1000000", "1000000000"))
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(body)
	require.NoError(t, err)
	path := writeMetrics(t, encoded)

	rec, err := ParseMetrics(path, "m", "d-1")
	require.NoError(t, err)
	assert.InDelta(t, 25.0, rec.Precision, 1e-9)
}

func TestParseMetrics_WhitespaceCells(t *testing.T) {
	row := testutil.MetricsRow("1", " 0.5 ", "1000000", "1000000000")
	path := writeMetrics(t, testutil.MetricsCSV(testutil.MetricsHeader, row))

	rec, err := ParseMetrics(path, "m", "d-1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, rec.DSC, 1e-9)
}

func TestParseMetrics_Errors(t *testing.T) {
	missingCol := make([]string, 0, len(testutil.MetricsHeader))
	for _, h := range testutil.MetricsHeader {
		if h != "test/Dice" {
			missingCol = append(missingCol, h)
		}
	}
	shortRow := testutil.MetricsRow("1", "0.5", "1", "1")

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty file", "", ErrEmptyFile},
		{"header only", strings.Join(testutil.MetricsHeader, ",") + "\n", ErrEmptyFile},
		{"missing column", testutil.MetricsCSV(missingCol, shortRow[:len(shortRow)-1]), ErrColumnNotFound},
		{"bad value", testutil.MetricsCSV(testutil.MetricsHeader, testutil.MetricsRow("1", "n/a", "1", "1")), ErrValueParse},
		{"empty cell", testutil.MetricsCSV(testutil.MetricsHeader, testutil.MetricsRow("1", "", "1", "1")), ErrValueParse},
		{"short row", testutil.MetricsCSV(testutil.MetricsHeader, shortRow[:5]), ErrValueParse},
		{"bad quoting", strings.Join(testutil.MetricsHeader, ",") + "\n1,\"unterminated\n", ErrRowRead},
		{"bad header", "\"epoch\n", ErrHeaderRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetrics(writeMetrics(t, tt.content), "m", "d-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseMetrics_MissingFile(t *testing.T) {
	_, err := ParseMetrics(filepath.Join(t.TempDir(), "none.csv"), "m", "d-1")
	assert.ErrorIs(t, err, ErrFileOpen)
}

func TestSourceColumns(t *testing.T) {
	cols := SourceColumns()
	assert.Len(t, cols, 9)
	assert.Equal(t, "test/MeanIoU", cols[0])
	assert.Equal(t, "FLOPs", cols[8])
}
