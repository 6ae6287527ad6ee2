/*
PURPOSE:
  Discovers run folders under a base path and reports whether each one has
  a results directory.

REQUIREMENTS:
  User-specified:
  - Run folders are named "run" followed by digits.
  - Output is sorted by run number, not lexically.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (scan, process --all)

ERROR HANDLING:
  - Missing base path returns ErrPathNotFound.

RELATED FILES:
  - internal/engine/dirs.go
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/daryltucker/result-harvester/internal/model"
	"github.com/daryltucker/result-harvester/internal/output"
)

// Layout names under a base path. These are fixed conventions.
const (
	runPrefix      = "run"
	ResultsDir     = "results"
	FinalResultDir = "final-result"
	MetricsSubdir  = "result"
	MetricsFile    = "metrics.csv"
)

var runNamePattern = regexp.MustCompile(`^run\d+$`)

// IsRunName reports whether name is "run" followed only by digits.
func IsRunName(name string) bool {
	return runNamePattern.MatchString(name)
}

// RunNumber returns the integer after the "run" prefix. Names that do not
// parse (including numbers too large for int) yield 0.
func RunNumber(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, runPrefix))
	if err != nil {
		return 0
	}
	return n
}

// Scan lists the run<N> folders directly under base, ordered by N.
func Scan(base string) (model.ScanResult, error) {
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			return model.ScanResult{}, fmt.Errorf("%w: %s", ErrPathNotFound, base)
		}
		return model.ScanResult{}, fmt.Errorf("%w: %s: %v", ErrReadDir, base, err)
	}

	names, err := ListDirs(base)
	if err != nil {
		return model.ScanResult{}, err
	}

	folders := make([]model.RunFolder, 0, len(names))
	for _, name := range names {
		if !IsRunName(name) {
			continue
		}
		hasResults := isDir(filepath.Join(base, name, ResultsDir))
		status := model.StatusIncomplete
		if hasResults {
			status = model.StatusComplete
		}
		folders = append(folders, model.RunFolder{
			Name:       name,
			HasResults: hasResults,
			Status:     status,
		})
	}

	sort.SliceStable(folders, func(i, j int) bool {
		a, b := RunNumber(folders[i].Name), RunNumber(folders[j].Name)
		if a != b {
			return a < b
		}
		return folders[i].Name < folders[j].Name
	})

	output.Logger.Debug("Scanned base path", "path", base, "runs", len(folders))
	return model.ScanResult{Folders: folders, Total: len(folders)}, nil
}
