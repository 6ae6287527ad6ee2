/*
PURPOSE:
  Writes metric records to a JSON Lines file (NDJSON) next to the CSV report.
  Optimized for machine parsing by downstream notebooks and dashboards.

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing (opt-in via json_report).

  Implementation-discovered:
  - JSON Lines keeps one record per line, same order as the CSV.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.MetricRecord

ERROR HANDLING:
  - Returns wrapped ErrFileCreate / ErrWrite / ErrFlush.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Writers are used from a single goroutine; no locking.

USAGE:
  w, err := output.NewJSONWriter("final_result.jsonl")
  w.Write(record)
  w.Close()
*/

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/result-harvester/internal/model"
)

// JSONReportFileName is the name of the optional JSON Lines sidecar.
const JSONReportFileName = "final_result.jsonl"

// JSONWriter handles writing records to a JSON Lines file.
type JSONWriter struct {
	path    string
	file    *os.File
	encoder *json.Encoder
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileCreate, path, err)
	}
	return &JSONWriter{
		path:    path,
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single record as a JSON line.
func (jw *JSONWriter) Write(r model.MetricRecord) error {
	if err := jw.encoder.Encode(r); err != nil {
		return fmt.Errorf("%w: %s/%s to %s: %v", ErrWrite, r.Model, r.Dataset, jw.path, err)
	}
	return nil
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	if err := jw.file.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFlush, jw.path, err)
	}
	return nil
}

// WriteJSONReport writes records to dir/final_result.jsonl and returns its path.
func WriteJSONReport(records []model.MetricRecord, dir string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDirCreate, dir, err)
	}

	path := filepath.Join(dir, JSONReportFileName)
	w, err := NewJSONWriter(path)
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
	return path, nil
}
