/*
PURPOSE:
  Sentinel errors for report writing and reading.
*/

package output

import "errors"

// Report errors. Each is wrapped with the failing path; check with errors.Is.
var (
	// ErrNoRecords is returned when asked to write a report with nothing in it.
	ErrNoRecords = errors.New("no records to write")

	// ErrDirCreate indicates the report directory could not be created.
	ErrDirCreate = errors.New("failed to create output directory")

	// ErrFileCreate indicates the report file could not be created or truncated.
	ErrFileCreate = errors.New("failed to create output file")

	// ErrWrite indicates a header or record could not be written.
	ErrWrite = errors.New("failed to write record")

	// ErrFlush indicates buffered rows could not be flushed to disk.
	ErrFlush = errors.New("failed to flush output")

	// ErrReportRead indicates an existing report could not be read back.
	ErrReportRead = errors.New("failed to read report")
)
