/*
PURPOSE:
  Traverses results/<model>/<dataset> for one run and collects a tagged
  outcome per dataset.

REQUIREMENTS:
  User-specified:
  - Models in name order; datasets in dataset-number order.
  - A broken dataset is skipped, not fatal.

  Implementation-discovered:
  - Datasets without a number sort as 0 and raise a warning.
  - Hidden directories are ignored unless include_hidden is set.

ARCHITECTURE INTEGRATION:
  - Called by: Process
  - Uses: ListDirs, DatasetNumber, ParseMetrics

ERROR HANDLING:
  - Only listing failures are returned; they abort the current run only.

USAGE:
  w := &engine.Walker{}
  result, err := w.Walk("/data/exp/run1/results")
*/

package engine

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/daryltucker/result-harvester/internal/model"
	"github.com/daryltucker/result-harvester/internal/output"
)

// dirLister is the lister used by Walker. Tests swap it to inject listing failures.
var dirLister = ListDirs

// Walker traverses a run's results tree: results/<model>/<dataset>.
type Walker struct {
	// IncludeHidden keeps model and dataset directories starting with '.'.
	IncludeHidden bool
}

// WalkResult holds one outcome per dataset visited, in visit order, plus
// non-fatal notices raised while ordering datasets.
type WalkResult struct {
	Outcomes []model.Outcome
	Warnings []string
}

// Records returns the successfully parsed records in visit order.
func (wr WalkResult) Records() []model.MetricRecord {
	var records []model.MetricRecord
	for _, o := range wr.Outcomes {
		if o.OK() {
			records = append(records, *o.Record)
		}
	}
	return records
}

// Skipped returns the outcomes that did not produce a record.
func (wr WalkResult) Skipped() []model.Outcome {
	var skipped []model.Outcome
	for _, o := range wr.Outcomes {
		if !o.OK() {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// Walk parses every dataset under resultsDir. Per-dataset failures become
// skipped outcomes; only failures to list the tree itself are returned.
func (w *Walker) Walk(resultsDir string) (WalkResult, error) {
	var result WalkResult

	models, err := w.listDirs(resultsDir)
	if err != nil {
		return result, err
	}
	sort.Strings(models)

	for _, modelName := range models {
		modelDir := filepath.Join(resultsDir, modelName)
		datasets, err := w.listDirs(modelDir)
		if err != nil {
			return result, err
		}

		ordered, warnings := orderDatasets(modelName, datasets)
		result.Warnings = append(result.Warnings, warnings...)

		for _, dataset := range ordered {
			result.Outcomes = append(result.Outcomes, w.visit(modelDir, modelName, dataset))
		}
	}

	return result, nil
}

func (w *Walker) visit(modelDir, modelName, dataset string) model.Outcome {
	outcome := model.Outcome{Model: modelName, Dataset: dataset}
	path := filepath.Join(modelDir, dataset, MetricsSubdir, MetricsFile)

	if !isFile(path) {
		outcome.Reason = fmt.Errorf("%w: %s", ErrMissingMetrics, path)
		output.Logger.Warn("Skipping dataset: metrics file missing", "model", modelName, "dataset", dataset, "path", path)
		return outcome
	}

	rec, err := ParseMetrics(path, modelName, dataset)
	if err != nil {
		outcome.Reason = err
		output.Logger.Warn("Skipping dataset: metrics unreadable", "model", modelName, "dataset", dataset, "error", err)
		return outcome
	}

	output.Logger.Debug("Parsed dataset", "model", modelName, "dataset", dataset, "miou", rec.Miou)
	outcome.Record = &rec
	return outcome
}

func (w *Walker) listDirs(path string) ([]string, error) {
	names, err := dirLister(path)
	if err != nil {
		return nil, err
	}
	if w.IncludeHidden {
		return names, nil
	}
	return VisibleDirs(names), nil
}

// orderDatasets sorts dataset names by DatasetNumber. A name without a
// number sorts with key 0 and produces a warning; ties fall back to name.
func orderDatasets(modelName string, names []string) ([]string, []string) {
	keys := make(map[string]int, len(names))
	var warnings []string
	for _, name := range names {
		n, err := DatasetNumber(name)
		if err != nil {
			msg := fmt.Sprintf("dataset %s/%s has no ordering number, sorting first: %v", modelName, name, err)
			output.Logger.Warn("Dataset ordering fallback", "model", modelName, "dataset", name, "error", err)
			warnings = append(warnings, msg)
		}
		keys[name] = n
	}

	ordered := append([]string(nil), names...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := keys[ordered[i]], keys[ordered[j]]
		if a != b {
			return a < b
		}
		return ordered[i] < ordered[j]
	})
	return ordered, warnings
}
