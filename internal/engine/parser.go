/*
PURPOSE:
  Reads one dataset's result/metrics.csv and turns its last row into a
  MetricRecord with report units (percent, millions, billions).

REQUIREMENTS:
  User-specified:
  - The last data row wins; earlier rows are intermediate epochs.
  - All nine metric columns are required.

  Implementation-discovered:
  - Files exported from spreadsheet tools often carry a UTF-8 BOM.
  - Header names are matched after trimming surrounding whitespace.

ARCHITECTURE INTEGRATION:
  - Called by: Walker.visit
  - Produces: internal/model.MetricRecord

ERROR HANDLING:
  - Returns wrapped ErrFileOpen / ErrHeaderRead / ErrRowRead /
    ErrMissingColumn / ErrNoData / ErrValueParse.
  - Never logs; the walker decides how a failure is reported.

IMPLEMENTATION RULES:
  - Decode through unicode.BOMOverride so a BOM never reaches the header.
  - Scaling lives in metricColumns; keep it next to the column names.

USAGE:
  rec, err := engine.ParseMetrics(path, "unet", "leaf-1")

RELATED FILES:
  - internal/engine/walker.go
  - internal/output/csv.go (column order of the report)
*/

package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/daryltucker/result-harvester/internal/model"
)

// metricColumn maps a source column of metrics.csv onto a record field.
type metricColumn struct {
	source  string
	convert func(float64) float64
	set     func(r *model.MetricRecord, v float64)
}

func percent(v float64) float64 { return v * 100 }
func millions(v float64) float64 { return v / 1e6 }
func billions(v float64) float64 { return v / 1e9 }

// metricColumns lists the nine source columns in report order.
var metricColumns = []metricColumn{
	{"test/MeanIoU", percent, func(r *model.MetricRecord, v float64) { r.Miou = v }},
	{"test/BinaryF1Score", percent, func(r *model.MetricRecord, v float64) { r.F1Score = v }},
	{"test/BinaryAccuracy", percent, func(r *model.MetricRecord, v float64) { r.Accuracy = v }},
	{"test/BinarySpecificity", percent, func(r *model.MetricRecord, v float64) { r.Specificity = v }},
	{"test/BinaryRecall", percent, func(r *model.MetricRecord, v float64) { r.Sensitivity = v }},
	{"test/Dice", percent, func(r *model.MetricRecord, v float64) { r.DSC = v }},
	{"test/BinaryPrecision", percent, func(r *model.MetricRecord, v float64) { r.Precision = v }},
	{"Parameters", millions, func(r *model.MetricRecord, v float64) { r.ParametersM = v }},
	{"FLOPs", billions, func(r *model.MetricRecord, v float64) { r.FlopsG = v }},
}

// SourceColumns returns the metrics.csv column names a dataset must provide.
func SourceColumns() []string {
	cols := make([]string, len(metricColumns))
	for i, c := range metricColumns {
		cols[i] = c.source
	}
	return cols
}

// ParseMetrics reads a dataset's metrics.csv and builds a record from its
// last row. Earlier rows are per-checkpoint history and are ignored.
func ParseMetrics(path, modelName, dataset string) (model.MetricRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.MetricRecord{}, fmt.Errorf("%w: %s: %v", ErrFileOpen, path, err)
	}
	defer f.Close()

	// Spreadsheet exports often carry a UTF-8 or UTF-16 BOM.
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := csv.NewReader(transform.NewReader(f, dec))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return model.MetricRecord{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if err != nil {
		return model.MetricRecord{}, fmt.Errorf("%w: %s: %v", ErrHeaderRead, path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var last []string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.MetricRecord{}, fmt.Errorf("%w: %s: %v", ErrRowRead, path, err)
		}
		last = row
	}
	if last == nil {
		return model.MetricRecord{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	rec := model.MetricRecord{Model: modelName, Dataset: dataset}
	for _, col := range metricColumns {
		i, ok := index[col.source]
		if !ok {
			return model.MetricRecord{}, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, col.source, path)
		}
		if i >= len(last) {
			return model.MetricRecord{}, fmt.Errorf("%w: %q in %s: row has no cell", ErrValueParse, col.source, path)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(last[i]), 64)
		if err != nil {
			return model.MetricRecord{}, fmt.Errorf("%w: %q in %s: %v", ErrValueParse, col.source, path, err)
		}
		col.set(&rec, col.convert(v))
	}

	return rec, nil
}
