// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package spreadsheet synchronizes the checklist workbook through the
// Google Sheets API.
//
// The synchronizer fetches the current workbook snapshot once per run,
// compares it to the rows produced by pkg/checksheet, and submits a
// single batched request plan per sheet update. Request ordering within
// a batch is fixed: size adjustments first, protection replacement
// before content writes, visibility and merging after data so column
// indices refer to populated cells.
package spreadsheet

import (
	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// Column names, used for header-message lookup and schema indexing.
const (
	ColCheckID          = "checkId"
	ColSubcheckID       = "subcheckId"
	ColCalculatedResult = "calculatedResult"
	ColFinalResult      = "finalResult"
	ColResult           = "result"
	ColNote             = "note"
	ColCheck            = "check"
	ColSeverity         = "severity"
	ColInfo             = "info"
	ColGuidelines       = "guidelines"
	ColTools            = "tools"
)

// Column is one column of a target sheet.
type Column struct {
	// Name keys the header message and formula lookups.
	Name string
	// Width is the fixed pixel width.
	Width int64
}

// Schema is the fixed column layout of one target sheet: id columns,
// generated-data columns (when the target carries them), user-entry
// columns, then plain data and link columns.
type Schema struct {
	Target  checksheet.Target
	Columns []Column

	index map[string]int64
}

func newSchema(t checksheet.Target, cols []Column) *Schema {
	s := &Schema{Target: t, Columns: cols, index: make(map[string]int64, len(cols))}
	for i, c := range cols {
		s.index[c.Name] = int64(i)
	}
	return s
}

// Index returns the 0-based column index of name, or -1 when the sheet
// has no such column.
func (s *Schema) Index(name string) int64 {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the sheet carries the named column.
func (s *Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// ColumnCount returns the number of columns.
func (s *Schema) ColumnCount() int64 {
	return int64(len(s.Columns))
}

// conditionStatementColumn returns the condition-statement column name
// for a target platform.
func conditionStatementColumn(platform string) string {
	return platform + "ConditionStatement"
}

// SchemaFor returns the column schema of one target sheet.
func SchemaFor(t checksheet.Target) *Schema {
	cols := []Column{
		{Name: ColCheckID, Width: 60},
		{Name: ColSubcheckID, Width: 60},
	}
	if t.HasGeneratedData() {
		cols = append(cols,
			Column{Name: ColCalculatedResult, Width: 90},
			Column{Name: ColFinalResult, Width: 90},
		)
	}
	cols = append(cols,
		Column{Name: ColResult, Width: 100},
		Column{Name: ColNote, Width: 220},
		Column{Name: ColCheck, Width: 420},
		Column{Name: ColSeverity, Width: 80},
	)
	if t.HasGeneratedData() {
		cols = append(cols, Column{Name: conditionStatementColumn(t.Platform()), Width: 420})
	}
	cols = append(cols,
		Column{Name: ColInfo, Width: 180},
		Column{Name: ColGuidelines, Width: 180},
	)
	if t.HasGeneratedData() {
		cols = append(cols, Column{Name: ColTools, Width: 150})
	}
	return newSchema(t, cols)
}

// SheetTitle returns the localized display name of a target sheet.
func SheetTitle(t checksheet.Target, lang string) string {
	return message.Default.Get("sheet", string(t), lang)
}

// Result tokens, localized through the message catalog.

func userPass(lang string) string { return message.Default.Get("result", "pass", lang) }
func userFail(lang string) string { return message.Default.Get("result", "fail", lang) }
func userUnchecked(lang string) string {
	return message.Default.Get("result", "unchecked", lang)
}
func finalPass(lang string) string { return message.Default.Get("result", "finalPass", lang) }
func finalFail(lang string) string { return message.Default.Get("result", "finalFail", lang) }
