package engine

import "errors"

// Harvest errors. Each is wrapped with the failing path or name so callers
// can report context and still match with errors.Is.
var (
	// ErrPathNotFound indicates a base, run or results path does not exist.
	// Fatal when returned for the base path of Scan or Process.
	ErrPathNotFound = errors.New("path not found")

	// ErrReadDir indicates a directory could not be enumerated or one of its
	// entries could not be typed.
	ErrReadDir = errors.New("failed to read directory")

	// ErrInvalidNameFormat indicates a dataset directory name has no '-' separator.
	ErrInvalidNameFormat = errors.New("invalid dataset name format")

	// ErrNumberParse indicates the identifier segment of a dataset name is not an integer.
	ErrNumberParse = errors.New("failed to parse dataset number")

	// ErrFileOpen indicates a metrics file could not be opened.
	ErrFileOpen = errors.New("failed to open metrics file")

	// ErrHeaderRead indicates the header row of a metrics file could not be parsed.
	ErrHeaderRead = errors.New("failed to read metrics header")

	// ErrRowRead indicates a data row of a metrics file is malformed.
	ErrRowRead = errors.New("failed to read metrics row")

	// ErrEmptyFile indicates a metrics file has a header but no data rows.
	ErrEmptyFile = errors.New("metrics file has no data rows")

	// ErrColumnNotFound indicates a required metric column is missing from the header.
	ErrColumnNotFound = errors.New("metric column not found")

	// ErrValueParse indicates a metric cell is not a floating-point number.
	ErrValueParse = errors.New("failed to parse metric value")

	// ErrMissingMetrics indicates a dataset directory has no result/metrics.csv.
	// Always recoverable: the dataset is skipped.
	ErrMissingMetrics = errors.New("metrics file not found")
)
