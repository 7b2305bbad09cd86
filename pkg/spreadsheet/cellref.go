// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spreadsheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// InvalidCellRefError reports a malformed Excel-style cell reference in
// configuration.
type InvalidCellRefError struct {
	Ref string
}

func (e *InvalidCellRefError) Error() string {
	return fmt.Sprintf("invalid cell reference %q (want column letters followed by a row number, e.g. A27)", e.Ref)
}

var cellRefPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// ParseCellRef parses an Excel-style reference ("A27", "AA1") into
// 0-based row and column indices. Lowercase column letters are
// normalized; anything else fails with InvalidCellRefError.
func ParseCellRef(ref string) (row, col int64, err error) {
	normalized := strings.ToUpper(strings.TrimSpace(ref))
	m := cellRefPattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, &InvalidCellRefError{Ref: ref}
	}
	col = 0
	for _, c := range m[1] {
		col = col*26 + int64(c-'A'+1)
	}
	col--
	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || n < 1 {
		return 0, 0, &InvalidCellRefError{Ref: ref}
	}
	return n - 1, col, nil
}

// ColumnLetter converts a 0-based column index to its letter form
// (0 -> "A", 26 -> "AA").
func ColumnLetter(col int64) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}

// A1 renders a 0-based (row, col) pair as an A1-style reference.
func A1(row, col int64) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row+1)
}
