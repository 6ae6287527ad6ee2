/*
PURPOSE:
  Extracts the ordering number from dataset directory names.

IMPLEMENTATION RULES:
  - Split on every '-' and use the second piece, so trailing tags such as
    "-TG3K" do not affect the number.
  - A "_suffix" on that piece is dropped before parsing.
*/

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// DatasetNumber extracts the ordering number from a dataset directory named
// <label>-<number>[_<suffix>][-<more>]. "leaf-12", "leaf-12_v2" and
// "COMMON-12-TG3K" all yield 12.
func DatasetNumber(name string) (int, error) {
	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q has no '-' separator", ErrInvalidNameFormat, name)
	}

	segment := parts[1]
	if !allDigits(segment) {
		segment, _, _ = strings.Cut(segment, "_")
	}

	n, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrNumberParse, name, err)
	}
	return n, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
