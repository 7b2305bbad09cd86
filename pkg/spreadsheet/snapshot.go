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
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/AleutianAI/a11ybuild/pkg/logging"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// SheetInfo is the part of a sheet's current state the plan builder
// needs: identity, grid size, and the protected ranges to replace.
type SheetInfo struct {
	ID                int64
	Title             string
	RowCount          int64
	ColumnCount       int64
	ProtectedRangeIDs []int64
}

// Snapshot is the workbook state fetched once per run. Sheet identity
// is the numeric sheet id; titles are just the lookup key.
type Snapshot struct {
	SpreadsheetID string
	Title         string

	byTitle map[string]*SheetInfo
	order   []*SheetInfo
}

// Sheet looks a sheet up by its display title.
func (s *Snapshot) Sheet(title string) (*SheetInfo, bool) {
	info, ok := s.byTitle[title]
	return info, ok
}

// FirstSheet returns the workbook's first sheet, which carries the
// version-info cell. Nil when the workbook has no sheets.
func (s *Snapshot) FirstSheet() *SheetInfo {
	if len(s.order) == 0 {
		return nil
	}
	return s.order[0]
}

// TakeSnapshot fetches the current workbook metadata.
func (c *Client) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	ss, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		SpreadsheetID: ss.SpreadsheetId,
		byTitle:       make(map[string]*SheetInfo, len(ss.Sheets)),
	}
	if ss.Properties != nil {
		snap.Title = ss.Properties.Title
	}
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		info := &SheetInfo{
			ID:    sh.Properties.SheetId,
			Title: sh.Properties.Title,
		}
		if gp := sh.Properties.GridProperties; gp != nil {
			info.RowCount = gp.RowCount
			info.ColumnCount = gp.ColumnCount
		}
		for _, pr := range sh.ProtectedRanges {
			info.ProtectedRangeIDs = append(info.ProtectedRangeIDs, pr.ProtectedRangeId)
		}
		snap.byTitle[info.Title] = info
		snap.order = append(snap.order, info)
	}
	return snap, nil
}

// preservedResults extracts the user-entered result cells from fetched
// sheet values so the rewrite can carry them over. Rows are keyed by
// subcheck id when present, check id otherwise. Unchecked and empty
// cells are omitted.
func preservedResults(vr *sheets.ValueRange, title string, logger *logging.Logger) map[string]string {
	out := make(map[string]string)
	if len(vr.Values) < 2 {
		return out
	}

	resultCol := findResultColumn(vr.Values[0])
	if resultCol < 0 {
		logger.Warn("result column not found; nothing preserved", "sheet", title)
		return out
	}

	unchecked := map[string]bool{}
	for _, l := range message.Languages {
		unchecked[userUnchecked(l)] = true
	}

	for _, row := range vr.Values[1:] {
		key := cellString(row, 1)
		if key == "" {
			key = cellString(row, 0)
		}
		if key == "" {
			continue
		}
		v := cellString(row, resultCol)
		if v == "" || unchecked[v] {
			continue
		}
		out[key] = v
	}
	return out
}

// layoutMatches reports whether the sheet's current content already
// equals the planned layout, comparing grid size and every cell's
// entered value. The fetched values must be formula-rendered; the API
// trims trailing empty rows and cells, which compare equal to absent
// planned values.
func layoutMatches(l *sheetLayout, info *SheetInfo, vr *sheets.ValueRange) bool {
	if info.RowCount != l.rowCount() || info.ColumnCount != l.schema.ColumnCount() {
		return false
	}
	if len(vr.Values) > len(l.data) {
		return false
	}
	for i, rowData := range l.data {
		var current []interface{}
		if i < len(vr.Values) {
			current = vr.Values[i]
		}
		if len(current) > len(rowData.Values) {
			return false
		}
		for j, cell := range rowData.Values {
			if plannedCellString(cell) != cellString(current, j) {
				return false
			}
		}
	}
	return true
}

// plannedCellString is the entered value a planned cell writes, in the
// same rendering the formula-valued fetch returns.
func plannedCellString(c *sheets.CellData) string {
	if c == nil || c.UserEnteredValue == nil {
		return ""
	}
	switch v := c.UserEnteredValue; {
	case v.StringValue != nil:
		return *v.StringValue
	case v.FormulaValue != nil:
		return *v.FormulaValue
	}
	return ""
}

// findResultColumn matches the header row against the localized result
// header in any supported language. The column index moves between
// schema revisions, so position is never assumed.
func findResultColumn(header []interface{}) int {
	want := map[string]bool{}
	for _, l := range message.Languages {
		want[message.Default.Get("header", ColResult, l)] = true
	}
	for i := range header {
		if want[cellString(header, i)] {
			return i
		}
	}
	return -1
}

func cellString(row []interface{}, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
