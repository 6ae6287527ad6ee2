/*
PURPOSE:
  Provides a structured logger for Result Harvester.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.

  Implementation-discovered:
  - Needs configurable level (debug/info/warn/error) and format (text/json).
  - Logs go to stderr so stdout stays clean for reports and scan JSON.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - Unknown level or format names return an error from Configure.

IMPLEMENTATION RULES:
  - Use `log/slog`.

USAGE:
  output.Logger.Info("message", "key", "value")

RELATED FILES:
  - internal/cli/root.go
*/

package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// Configure replaces the package logger with one writing to w at the given
// level ("debug", "info", "warn", "error") and format ("text", "json").
func Configure(level, format string, w io.Writer) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "", "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	SetLogger(slog.New(h))
	return nil
}
