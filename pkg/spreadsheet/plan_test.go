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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

func planFixture() ([]*sheets.Request, *sheetLayout, *SheetInfo) {
	l := layoutFixture(nil)
	info := &SheetInfo{
		ID:                7,
		Title:             "Product: Web",
		RowCount:          10,
		ColumnCount:       5,
		ProtectedRangeIDs: []int64{11, 22},
	}
	return buildSheetPlan(l, info, "editor@example.com"), l, info
}

func TestBuildSheetPlan_RequestOrder(t *testing.T) {
	reqs, _, _ := planFixture()
	require.NotEmpty(t, reqs)

	prev := 0
	for i, r := range reqs {
		rank := requestRank(r)
		assert.GreaterOrEqual(t, rank, prev, "request %d out of order", i)
		prev = rank
	}
}

func TestBuildSheetPlan_SizeAdjustments(t *testing.T) {
	reqs, l, _ := planFixture()

	// Four data rows against ten current rows shrinks; twelve columns
	// against five grows.
	var del *sheets.DeleteDimensionRequest
	var app *sheets.AppendDimensionRequest
	for _, r := range reqs {
		if r.DeleteDimension != nil {
			del = r.DeleteDimension
		}
		if r.AppendDimension != nil {
			app = r.AppendDimension
		}
	}
	require.NotNil(t, del)
	assert.Equal(t, "ROWS", del.Range.Dimension)
	assert.Equal(t, l.rowCount(), del.Range.StartIndex)
	assert.Equal(t, int64(10), del.Range.EndIndex)

	require.NotNil(t, app)
	assert.Equal(t, "COLUMNS", app.Dimension)
	assert.Equal(t, l.schema.ColumnCount()-5, app.Length)
}

func TestBuildSheetPlan_ReplacesProtection(t *testing.T) {
	reqs, _, _ := planFixture()

	var deleted []int64
	var added []*sheets.ProtectedRange
	for _, r := range reqs {
		if r.DeleteProtectedRange != nil {
			deleted = append(deleted, r.DeleteProtectedRange.ProtectedRangeId)
		}
		if r.AddProtectedRange != nil {
			added = append(added, r.AddProtectedRange.ProtectedRange)
		}
	}
	assert.Equal(t, []int64{11, 22}, deleted)

	// One block over the generated columns plus one derived result cell.
	require.Len(t, added, 2)
	for _, pr := range added {
		require.NotNil(t, pr.Editors)
		assert.Equal(t, []string{"editor@example.com"}, pr.Editors.Users)
	}
	block := added[0].Range
	assert.Equal(t, int64(0), block.StartRowIndex)
	assert.Equal(t, int64(2), block.StartColumnIndex)
	assert.Equal(t, int64(4), block.EndColumnIndex)

	derived := added[1].Range
	assert.Equal(t, int64(1), derived.StartRowIndex, "parent row result cell")
	assert.Equal(t, int64(4), derived.StartColumnIndex)
}

func TestBuildSheetPlan_NoEditorsWithoutEmail(t *testing.T) {
	l := layoutFixture(nil)
	info := &SheetInfo{ID: 7, RowCount: 4, ColumnCount: 12}

	for _, r := range buildSheetPlan(l, info, "") {
		if r.AddProtectedRange != nil {
			assert.Nil(t, r.AddProtectedRange.ProtectedRange.Editors)
		}
	}
}

func TestBuildSheetPlan_ClearCoversFullGrid(t *testing.T) {
	reqs, l, _ := planFixture()

	var clear *sheets.UpdateCellsRequest
	for _, r := range reqs {
		if r.UpdateCells != nil && len(r.UpdateCells.Rows) == 0 {
			clear = r.UpdateCells
			break
		}
	}
	require.NotNil(t, clear)
	assert.Equal(t, cellFields, clear.Fields)
	assert.Equal(t, l.rowCount(), clear.Range.EndRowIndex)
	assert.Equal(t, l.schema.ColumnCount(), clear.Range.EndColumnIndex)
}

func TestBuildSheetPlan_MergesParentRows(t *testing.T) {
	reqs, _, _ := planFixture()

	var merges []*sheets.MergeCellsRequest
	for _, r := range reqs {
		if r.MergeCells != nil {
			merges = append(merges, r.MergeCells)
		}
	}
	require.Len(t, merges, 1)
	m := merges[0]
	assert.Equal(t, "MERGE_ROWS", m.MergeType)
	assert.Equal(t, int64(1), m.Range.StartRowIndex)
	assert.Equal(t, int64(2), m.Range.EndRowIndex)
	assert.Equal(t, int64(0), m.Range.StartColumnIndex)
	assert.Equal(t, int64(2), m.Range.EndColumnIndex)
}

func TestBuildSheetPlan_HidesCalculatedColumnWithSubchecks(t *testing.T) {
	reqs, l, _ := planFixture()

	calcCol := l.schema.Index(ColCalculatedResult)
	hidden := hiddenRanges(reqs)
	require.Len(t, hidden, 1)
	assert.Equal(t, [2]int64{calcCol, calcCol + 1}, hidden[0])
}

func TestBuildSheetPlan_PlainTargetHidesSubcheckColumn(t *testing.T) {
	row := &checksheet.Row{CheckID: "0101", Text: message.NewText("あ", "a"), Severity: "normal"}
	l := buildLayout(checksheet.DesignMobile, []*checksheet.Row{row}, message.LangJa, "", nil)
	info := &SheetInfo{ID: 3, RowCount: 2, ColumnCount: 8}

	reqs := buildSheetPlan(l, info, "")

	hidden := hiddenRanges(reqs)
	require.Len(t, hidden, 1)
	subCol := l.schema.Index(ColSubcheckID)
	assert.Equal(t, [2]int64{subCol, subCol + 1}, hidden[0])

	for _, r := range reqs {
		assert.Nil(t, r.AddProtectedRange, "no protection without generated data")
		assert.Nil(t, r.MergeCells)
	}
}

func TestBuildSheetPlan_GeneratedTargetWithoutSubchecks(t *testing.T) {
	row := &checksheet.Row{
		CheckID: "0441", Text: message.NewText("あ", "a"), Severity: "normal",
		Subchecks:      map[checksheet.Target]*checksheet.SubcheckSet{},
		ConditionKinds: map[checksheet.Target]string{},
	}
	l := buildLayout(checksheet.ProductWeb, []*checksheet.Row{row}, message.LangJa, "", nil)
	info := &SheetInfo{ID: 3, RowCount: 2, ColumnCount: 12}

	hidden := hiddenRanges(buildSheetPlan(l, info, ""))
	require.Len(t, hidden, 1)

	// subcheckId through finalResult hide as one block.
	assert.Equal(t, [2]int64{
		l.schema.Index(ColSubcheckID),
		l.schema.Index(ColFinalResult) + 1,
	}, hidden[0])
}

func TestBuildSheetPlan_ConditionalFormatRules(t *testing.T) {
	reqs, _, _ := planFixture()

	var rules []*sheets.AddConditionalFormatRuleRequest
	for _, r := range reqs {
		if r.AddConditionalFormatRule != nil {
			rules = append(rules, r.AddConditionalFormatRule)
		}
	}
	require.Len(t, rules, 4, "pass/fail on result, pass/fail on finalResult")

	first := rules[0].Rule.BooleanRule
	assert.Equal(t, "TEXT_EQ", first.Condition.Type)
	assert.Equal(t, "Applicable", first.Condition.Values[0].UserEnteredValue)
	assert.Equal(t, passColor, first.Format.BackgroundColor)
	assert.Equal(t, failColor, rules[1].Rule.BooleanRule.Format.BackgroundColor)
	assert.Equal(t, "OK", rules[2].Rule.BooleanRule.Condition.Values[0].UserEnteredValue)
	assert.Equal(t, "NG", rules[3].Rule.BooleanRule.Condition.Values[0].UserEnteredValue)
}

func TestBuildSheetPlan_ResultDropdown(t *testing.T) {
	reqs, l, _ := planFixture()

	var validation *sheets.DataValidationRule
	for _, r := range reqs {
		if r.RepeatCell != nil && r.RepeatCell.Cell.DataValidation != nil {
			validation = r.RepeatCell.Cell.DataValidation
			assert.Equal(t, l.schema.Index(ColResult), r.RepeatCell.Range.StartColumnIndex)
		}
	}
	require.NotNil(t, validation)
	assert.Equal(t, "ONE_OF_LIST", validation.Condition.Type)
	assert.True(t, validation.ShowCustomUi)
	var tokens []string
	for _, v := range validation.Condition.Values {
		tokens = append(tokens, v.UserEnteredValue)
	}
	assert.Equal(t, []string{"Applicable", "Not applicable", "Unchecked"}, tokens)
}

func TestBuildSheetPlan_HeaderOnlySheet(t *testing.T) {
	l := buildLayout(checksheet.ProductWeb, nil, message.LangEn, "", nil)
	info := &SheetInfo{ID: 9, RowCount: 1, ColumnCount: 12, ProtectedRangeIDs: []int64{5}}

	for _, r := range buildSheetPlan(l, info, "editor@example.com") {
		assert.Nil(t, r.AddProtectedRange, "nothing to lock on a header-only sheet")
		assert.Nil(t, r.AddConditionalFormatRule)
	}
}

func TestOrderBatch_GroupsAcrossSheets(t *testing.T) {
	first, _, _ := planFixture()

	row := &checksheet.Row{CheckID: "0101", Text: message.NewText("あ", "a"), Severity: "normal"}
	l := buildLayout(checksheet.DesignMobile, []*checksheet.Row{row}, message.LangJa, "", nil)
	second := buildSheetPlan(l, &SheetInfo{ID: 3, RowCount: 5, ColumnCount: 8}, "")

	// Concatenated per-sheet plans interleave classes; the second
	// sheet's size adjustment lands after the first sheet's protection.
	batch := append(append([]*sheets.Request{}, first...), second...)
	batch = append(batch, versionInfoRequest(&SheetInfo{ID: 1}, 26, 0, "v1"))

	ordered := orderBatch(batch)
	require.Len(t, ordered, len(batch))
	prev := 0
	for i, r := range ordered {
		rank := requestRank(r)
		assert.GreaterOrEqual(t, rank, prev, "request %d out of order", i)
		prev = rank
	}

	last := ordered[len(ordered)-1]
	require.NotNil(t, last.UpdateCells)
	assert.Equal(t, "userEnteredValue", last.UpdateCells.Fields, "version write lands last")
}

func TestVersionInfoRequest(t *testing.T) {
	info := &SheetInfo{ID: 1}
	r := versionInfoRequest(info, 26, 0, "チェックリスト・バージョン：1.2.3 (2026-08-29)")

	require.NotNil(t, r.UpdateCells)
	assert.Equal(t, int64(26), r.UpdateCells.Start.RowIndex)
	assert.Equal(t, int64(0), r.UpdateCells.Start.ColumnIndex)
	assert.Equal(t, "userEnteredValue", r.UpdateCells.Fields)
	require.Len(t, r.UpdateCells.Rows, 1)
}

// hiddenRanges extracts the (start, end) column pairs of hide requests,
// skipping the unhide-all and width requests.
func hiddenRanges(reqs []*sheets.Request) [][2]int64 {
	var out [][2]int64
	for _, r := range reqs {
		u := r.UpdateDimensionProperties
		if u == nil || u.Fields != "hiddenByUser" || u.Properties == nil || !u.Properties.HiddenByUser {
			continue
		}
		out = append(out, [2]int64{u.Range.StartIndex, u.Range.EndIndex})
	}
	return out
}
