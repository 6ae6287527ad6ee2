/*
PURPOSE:
  Sentinel errors for external tool jobs.
*/

package jobs

import "errors"

var (
	// ErrUnknownTool indicates no tool is configured under the requested name.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNoFiles indicates a job was submitted without input files.
	ErrNoFiles = errors.New("no input files")

	// ErrJobFailed indicates the external process could not start or exited non-zero.
	ErrJobFailed = errors.New("batch job failed")

	// ErrJobTimeout indicates the process exceeded its timeout or was cancelled.
	// errors.Is(err, ErrJobFailed) is also true.
	ErrJobTimeout = errors.New("batch job timed out")
)
