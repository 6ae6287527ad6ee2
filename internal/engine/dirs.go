/*
PURPOSE:
  Directory helpers shared by the scanner and walker.

ERROR HANDLING:
  - ListDirs maps a missing path to ErrPathNotFound and any other read
    failure to ErrReadDir.
*/

package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ListDirs returns the names of the immediate subdirectories of path.
// Order is unspecified; callers impose their own ordering.
func ListDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReadDir, path, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// VisibleDirs drops names starting with a dot (.git, .ipynb_checkpoints, ...).
func VisibleDirs(names []string) []string {
	visible := names[:0:0]
	for _, name := range names {
		if !strings.HasPrefix(name, ".") {
			visible = append(visible, name)
		}
	}
	return visible
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
