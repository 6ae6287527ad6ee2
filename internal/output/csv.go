/*
PURPOSE:
  Writes the consolidated metrics report (final_result.csv) and reads it back.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to CSV with a fixed header and column order.
  - Overwrite any existing report (no append).

  Implementation-discovered:
  - Each failing step maps to its own error kind (dir, create, write, flush).
  - A failure on a late record leaves a truncated file; no rollback.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (batch and per-run reports)
  - Consumes: internal/model.MetricRecord

ERROR HANDLING:
  - Returns wrapped ErrDirCreate/ErrFileCreate/ErrWrite/ErrFlush.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).

USAGE:
  path, err := output.WriteReport(records, baseDir)
  records, err := output.ReadReport(path)

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update ReportHeader, recordRow and ReadReport together.

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/daryltucker/result-harvester/internal/model"
)

// ReportFileName is the name of every consolidated report.
const ReportFileName = "final_result.csv"

// ReportHeader is the fixed column order of the report.
var ReportHeader = []string{
	"model", "dataset",
	"Miou", "F1_score", "Accuracy", "Specificity", "Sensitivity", "DSC", "Precision",
	"Parameters(M)", "FLOPS(G)",
}

// CSVWriter handles writing metric records to a CSV file.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates a new CSVWriter and writes the header row.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileCreate, path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ReportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: header of %s: %v", ErrWrite, path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: header of %s: %v", ErrWrite, path, err)
	}

	return &CSVWriter{
		path:   path,
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single record to the CSV file.
func (cw *CSVWriter) Write(r model.MetricRecord) error {
	if err := cw.writer.Write(recordRow(r)); err != nil {
		return fmt.Errorf("%w: %s/%s to %s: %v", ErrWrite, r.Model, r.Dataset, cw.path, err)
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("%w: %s/%s to %s: %v", ErrWrite, r.Model, r.Dataset, cw.path, err)
	}
	return nil
}

// Close flushes pending rows and closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	flushErr := cw.writer.Error()
	closeErr := cw.file.Close()
	if flushErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrFlush, cw.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrFlush, cw.path, closeErr)
	}
	return nil
}

// WriteReport writes records to dir/final_result.csv, creating dir if needed,
// and returns the report path.
func WriteReport(records []model.MetricRecord, dir string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDirCreate, dir, err)
	}

	path := filepath.Join(dir, ReportFileName)
	w, err := NewCSVWriter(path)
	if err != nil {
		return "", err
	}

	for _, r := range records {
		if err := w.Write(r); err != nil {
			w.Close()
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	Logger.Debug("Report written", "path", path, "records", len(records))
	return path, nil
}

// ReadReport parses a report previously produced by WriteReport.
func ReadReport(path string) ([]model.MetricRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReportRead, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(ReportHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header of %s: %v", ErrReportRead, path, err)
	}
	for i, name := range ReportHeader {
		if header[i] != name {
			return nil, fmt.Errorf("%w: %s: column %d is %q, want %q", ErrReportRead, path, i, header[i], name)
		}
	}

	var records []model.MetricRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReportRead, path, err)
		}

		vals := make([]float64, 0, len(row)-2)
		for i, cell := range row[2:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: column %s: %v", ErrReportRead, path, ReportHeader[i+2], err)
			}
			vals = append(vals, v)
		}

		records = append(records, model.MetricRecord{
			Model:       row[0],
			Dataset:     row[1],
			Miou:        vals[0],
			F1Score:     vals[1],
			Accuracy:    vals[2],
			Specificity: vals[3],
			Sensitivity: vals[4],
			DSC:         vals[5],
			Precision:   vals[6],
			ParametersM: vals[7],
			FlopsG:      vals[8],
		})
	}

	return records, nil
}

func recordRow(r model.MetricRecord) []string {
	return []string{
		r.Model,
		r.Dataset,
		formatFloat(r.Miou),
		formatFloat(r.F1Score),
		formatFloat(r.Accuracy),
		formatFloat(r.Specificity),
		formatFloat(r.Sensitivity),
		formatFloat(r.DSC),
		formatFloat(r.Precision),
		formatFloat(r.ParametersM),
		formatFloat(r.FlopsG),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
