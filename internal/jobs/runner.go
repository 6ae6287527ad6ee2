/*
PURPOSE:
  Opaque batch-job boundary for delegated image and file tools
  (binary inversion, resizing, transparent-to-black, reorganization).

REQUIREMENTS:
  User-specified:
  - Submit a list of file paths plus a job spec, block until completion.
  - Surface a single success/failure with an error detail string.

  Implementation-discovered:
  - Some tools take one file per invocation, others take all files at once.
  - stderr is the only useful failure detail these scripts produce.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (tool command)
  - Uses: internal/config.Tool definitions

ERROR HANDLING:
  - Wrapped ErrUnknownTool, ErrNoFiles, ErrJobFailed, ErrJobTimeout.
  - Per-file tools stop at the first failing file.

IMPLEMENTATION RULES:
  - Use os/exec with CommandContext; never a shell.

USAGE:
  r := jobs.NewRunner(cfg.Tools)
  res, err := r.Run(ctx, "resize", files, jobs.Spec{Width: 512, Height: 512})
*/

package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daryltucker/result-harvester/internal/config"
	"github.com/daryltucker/result-harvester/internal/output"
)

// Spec is the per-job configuration handed to the external tool.
type Spec struct {
	Mode    string
	Width   int
	Height  int
	Quality int
	// Flags are passed verbatim after the rendered options, e.g. "--maintain-aspect".
	Flags []string
}

// Args renders s as command-line options. Zero values are omitted.
func (s Spec) Args() []string {
	var args []string
	if s.Mode != "" {
		args = append(args, "--mode", s.Mode)
	}
	if s.Width > 0 {
		args = append(args, "--width", strconv.Itoa(s.Width))
	}
	if s.Height > 0 {
		args = append(args, "--height", strconv.Itoa(s.Height))
	}
	if s.Quality > 0 {
		args = append(args, "--quality", strconv.Itoa(s.Quality))
	}
	return append(args, s.Flags...)
}

// Result describes a completed job.
type Result struct {
	ID       string
	Tool     string
	Files    int
	Duration time.Duration
}

// Runner executes configured tools.
type Runner struct {
	tools map[string]config.Tool
}

// NewRunner creates a Runner over the given tool definitions.
func NewRunner(tools map[string]config.Tool) *Runner {
	return &Runner{tools: tools}
}

// Names returns the configured tool names, sorted.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes tool name over files and blocks until it finishes.
func (r *Runner) Run(ctx context.Context, name string, files []string, spec Spec) (Result, error) {
	tool, ok := r.tools[name]
	if !ok || tool.Command == "" {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoFiles, name)
	}

	if tool.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tool.Timeout)
		defer cancel()
	}

	res := Result{ID: uuid.New().String(), Tool: name, Files: len(files)}
	start := time.Now()
	output.Logger.Info("Starting batch job", "job", res.ID, "tool", name, "files", len(files))

	if tool.PerFile {
		for _, file := range files {
			if err := invoke(ctx, name, tool, []string{file}, spec); err != nil {
				return res, err
			}
		}
	} else if err := invoke(ctx, name, tool, files, spec); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	output.Logger.Info("Batch job complete", "job", res.ID, "tool", name, "duration", res.Duration)
	return res, nil
}

func invoke(ctx context.Context, name string, tool config.Tool, files []string, spec Spec) error {
	args := append([]string{}, tool.Args...)
	args = append(args, files...)
	args = append(args, spec.Args()...)

	cmd := exec.CommandContext(ctx, tool.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// Orphaned grandchildren must not hold the stderr pipe open past cancellation.
	cmd.WaitDelay = 2 * time.Second

	err := cmd.Run()
	if err == nil {
		return nil
	}

	detail := strings.TrimSpace(stderr.String())
	if ctxErr := ctx.Err(); ctxErr != nil {
		output.Logger.Error("Batch job timed out", "tool", name, "error", ctxErr)
		return fmt.Errorf("%w: %w: %s: %v", ErrJobFailed, ErrJobTimeout, name, ctxErr)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	output.Logger.Error("Batch job failed", "tool", name, "exitCode", exitCode, "stderr", detail)
	if detail == "" {
		detail = err.Error()
	}
	return fmt.Errorf("%w: %s on %s (exit %d): %s", ErrJobFailed, name, strings.Join(files, ", "), exitCode, detail)
}
