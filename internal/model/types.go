/*
PURPOSE:
  Defines the core data structures used throughout Result Harvester.
  These models represent discovered run folders and parsed evaluation metrics.

REQUIREMENTS:
  User-specified:
  - Track run folder name, whether it has results, and its completion status.
  - Record model, dataset and nine evaluation metrics per parsed dataset.

  Implementation-discovered:
  - Need JSON tags matching the scan response shape (folders, total, hasResults).
  - Per-dataset outcomes must carry either a record or a skip reason.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/cli
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records are values; never mutate one after it is built.

USAGE:
  rec := model.MetricRecord{Model: "unet", Dataset: "leaf-1", ...}

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add field and update parser column table and CSV writer.

RELATED FILES:
  - internal/engine/parser.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

// RunStatus is the completion state of a run folder.
type RunStatus string

const (
	StatusComplete   RunStatus = "complete"
	StatusIncomplete RunStatus = "incomplete"
)

// RunFolder describes a single run<N> directory found under a base path.
type RunFolder struct {
	Name       string    `json:"name"`
	HasResults bool      `json:"hasResults"`
	Status     RunStatus `json:"status"`
}

// ScanResult is the response of a scan: run folders ordered by run number.
type ScanResult struct {
	Folders []RunFolder `json:"folders"`
	Total   int         `json:"total"`
}

// MetricRecord is the normalized last-row result of one model on one dataset.
// Percentage fields are 0-100; ParametersM is in millions, FlopsG in billions.
type MetricRecord struct {
	Model       string  `json:"model"`
	Dataset     string  `json:"dataset"`
	Miou        float64 `json:"Miou"`
	F1Score     float64 `json:"F1_score"`
	Accuracy    float64 `json:"Accuracy"`
	Specificity float64 `json:"Specificity"`
	Sensitivity float64 `json:"Sensitivity"`
	DSC         float64 `json:"DSC"`
	Precision   float64 `json:"Precision"`
	ParametersM float64 `json:"Parameters(M)"`
	FlopsG      float64 `json:"FLOPS(G)"`
}

// Outcome is the result of processing one dataset directory.
// Exactly one of Record or Reason is set.
type Outcome struct {
	Model   string
	Dataset string
	Record  *MetricRecord
	Reason  error
}

// OK reports whether the dataset produced a record.
func (o Outcome) OK() bool {
	return o.Record != nil
}
