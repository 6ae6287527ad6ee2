/*
PURPOSE:
  Batch orchestration for Result Harvester.
  Walks the selected run folders in order and writes the combined report.

REQUIREMENTS:
  User-specified:
  - Process caller-selected run folders, in the given order.
  - One run's failure never aborts the batch.
  - Produce a human-readable processing log plus final_result.csv.

  Implementation-discovered:
  - final-result/ inside each run doubles as the per-run report location.
  - The log is the only result; per-step status lives in its lines.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (process command)
  - Uses: internal/config, internal/output, Walker

ERROR HANDLING:
  - Missing base path is fatal (ErrPathNotFound).
  - Everything else is logged and the batch continues.

IMPLEMENTATION RULES:
  - Strictly sequential; no goroutines.
  - Records accumulate in a list owned by the single Process call.

USAGE:
  log, err := engine.Process(cfg, "/data/exp", []string{"run1", "run3"})

RELATED FILES:
  - internal/engine/walker.go
  - internal/output/csv.go
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/daryltucker/result-harvester/internal/config"
	"github.com/daryltucker/result-harvester/internal/model"
	"github.com/daryltucker/result-harvester/internal/output"
)

// BatchLog collects the human-readable lines of one batch.
type BatchLog struct {
	lines []string
}

// Addf appends a formatted line.
func (l *BatchLog) Addf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// String joins the collected lines.
func (l *BatchLog) String() string {
	return strings.Join(l.lines, "\n")
}

// Process runs the selected run folders under base and writes
// base/final_result.csv when at least one record was produced.
func Process(cfg *config.Config, base string, selected []string) (string, error) {
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrPathNotFound, base)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrReadDir, base, err)
	}

	batchID := uuid.New().String()
	log := &BatchLog{}
	log.Addf("Batch %s", batchID)
	log.Addf("Base path: %s", base)
	log.Addf("Selected runs: %s", strings.Join(selected, ", "))
	output.Logger.Info("Starting batch", "batch", batchID, "base", base, "runs", len(selected))

	walker := &Walker{IncludeHidden: cfg.IncludeHidden}
	var all []model.MetricRecord
	processed := 0

	for _, run := range selected {
		log.Addf("")
		if !IsRunName(run) {
			log.Addf("Warning: %q is not a run folder name, skipping", run)
			output.Logger.Warn("Skipping run: invalid name", "run", run)
			continue
		}
		log.Addf("Processing %s (run number %d)", run, RunNumber(run))

		resultsDir := filepath.Join(base, run, ResultsDir)
		finalDir := filepath.Join(base, run, FinalResultDir)

		if !isDir(resultsDir) {
			log.Addf("Warning: %s does not exist, skipping %s", resultsDir, run)
			output.Logger.Warn("Skipping run: no results directory", "run", run, "path", resultsDir)
			continue
		}

		if err := os.MkdirAll(finalDir, 0755); err != nil {
			log.Addf("Failed to create %s directory for %s: %v", FinalResultDir, run, err)
			output.Logger.Warn("Skipping run: cannot create final-result", "run", run, "error", err)
			continue
		}

		result, err := walker.Walk(resultsDir)
		if err != nil {
			log.Addf("Error processing %s: %v", run, err)
			output.Logger.Error("Run failed", "run", run, "error", err)
			continue
		}

		for _, w := range result.Warnings {
			log.Addf("  warning: %s", w)
		}
		skipped := result.Skipped()
		for _, o := range skipped {
			log.Addf("  skipped %s/%s: %v", o.Model, o.Dataset, o.Reason)
		}

		records := result.Records()
		if cfg.PerRunReport && len(records) > 0 {
			if path, err := output.WriteReport(records, finalDir); err != nil {
				log.Addf("  failed to write run report: %v", err)
				output.Logger.Warn("Run report failed", "run", run, "error", err)
			} else {
				log.Addf("  run report: %s", path)
			}
		}

		all = append(all, records...)
		processed++
		log.Addf("Processed %s: %d records, %d skipped", run, len(records), len(skipped))
		output.Logger.Info("Run processed", "run", run, "records", len(records), "skipped", len(skipped))
	}

	log.Addf("")
	if len(all) == 0 {
		log.Addf("No records were produced; no report written")
		output.Logger.Warn("Nothing processed", "batch", batchID)
		return log.String(), nil
	}

	path, err := output.WriteReport(all, base)
	if err != nil {
		log.Addf("Failed to write final report: %v", err)
		output.Logger.Error("Final report failed", "batch", batchID, "error", err)
		return log.String(), nil
	}

	size := "unknown size"
	if info, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	log.Addf("Successfully processed %d run folders: %s records written to %s (%s)",
		processed, humanize.Comma(int64(len(all))), path, size)
	output.Logger.Info("Report written", "batch", batchID, "path", path, "records", len(all))

	if cfg.JSONReport {
		if jsonPath, err := output.WriteJSONReport(all, base); err != nil {
			log.Addf("Failed to write JSON report: %v", err)
		} else {
			log.Addf("JSON report: %s", jsonPath)
		}
	}

	return log.String(), nil
}
