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

	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// layoutFixture builds a ProductWeb layout with one parent check that
// expands into two subchecks.
func layoutFixture(preserved map[string]string) *sheetLayout {
	sub1 := &checksheet.Row{
		SubcheckID: "0621-proc-01", IsSubcheck: true,
		ConditionStatements: map[string]message.Text{
			"web": message.NewText("キーボードで操作する", "Operate with the keyboard"),
		},
	}
	sub2 := &checksheet.Row{
		SubcheckID: "0621-proc-02", IsSubcheck: true,
		ConditionStatements: map[string]message.Text{
			"web": message.NewText("スクリーンリーダーで確認する", "Check with a screen reader"),
		},
	}
	parent := &checksheet.Row{
		CheckID:  "0621",
		Text:     message.NewText("操作可能であること", "The page is operable"),
		Severity: "normal",
		ConditionStatements: map[string]message.Text{
			"web": message.NewText("いずれかで確認する", "Check with either"),
		},
		Subchecks: map[checksheet.Target]*checksheet.SubcheckSet{
			checksheet.ProductWeb: {Count: 2, Conditions: []*checksheet.Row{sub1, sub2}},
		},
		ConditionKinds: map[checksheet.Target]string{checksheet.ProductWeb: "or"},
	}
	rows := []*checksheet.Row{parent, sub1, sub2}
	return buildLayout(checksheet.ProductWeb, rows, message.LangEn, "https://a11y.example.com", preserved)
}

func TestBuildLayout_RowMapAndBookkeeping(t *testing.T) {
	l := layoutFixture(nil)

	assert.Equal(t, int64(4), l.rowCount(), "header plus three data rows")
	assert.Equal(t, int64(2), l.rowMap["0621"])
	assert.Equal(t, int64(3), l.rowMap["0621-proc-01"])
	assert.Equal(t, int64(4), l.rowMap["0621-proc-02"])
	assert.Equal(t, []int64{2}, l.parentSubRows)
	assert.True(t, l.hasSubchecks)
}

func TestBuildLayout_HeaderRow(t *testing.T) {
	l := layoutFixture(nil)

	header := l.data[0].Values
	require.Len(t, header, int(l.schema.ColumnCount()))
	assert.Equal(t, "ID", *header[0].UserEnteredValue.StringValue)
	assert.Equal(t, "Result", *header[l.schema.Index(ColResult)].UserEnteredValue.StringValue)
}

func TestBuildLayout_ResultCells(t *testing.T) {
	l := layoutFixture(map[string]string{"0621-proc-01": "Applicable"})

	resultCol := l.schema.Index(ColResult)
	assert.Equal(t, "Unchecked", *l.data[1].Values[resultCol].UserEnteredValue.StringValue)
	assert.Equal(t, "Applicable", *l.data[2].Values[resultCol].UserEnteredValue.StringValue,
		"preserved entry survives the rewrite")
	assert.Equal(t, "Unchecked", *l.data[3].Values[resultCol].UserEnteredValue.StringValue)
}

func TestBuildLayout_FormulaCells(t *testing.T) {
	l := layoutFixture(nil)

	calcCol := l.schema.Index(ColCalculatedResult)
	finalCol := l.schema.Index(ColFinalResult)

	parent := l.data[1].Values
	assert.Contains(t, *parent[calcCol].UserEnteredValue.FormulaValue, "COUNTIF(E3:E4")
	assert.Contains(t, *parent[finalCol].UserEnteredValue.FormulaValue, "C2")

	// Subcheck rows carry no calculated value of their own; their final
	// result mirrors the parent's calculated cell.
	sub := l.data[2].Values
	assert.Equal(t, "", *sub[calcCol].UserEnteredValue.StringValue)
	assert.Equal(t, "=C2", *sub[finalCol].UserEnteredValue.FormulaValue)
}

func TestBuildLayout_IDCellsKeepLeadingZeros(t *testing.T) {
	l := layoutFixture(nil)

	id := l.data[1].Values[l.schema.Index(ColCheckID)]
	require.NotNil(t, id.UserEnteredFormat)
	assert.Equal(t, "TEXT", id.UserEnteredFormat.NumberFormat.Type)
}

func TestBuildLayout_SubcheckRowBlanksParentColumns(t *testing.T) {
	l := layoutFixture(nil)

	sub := l.data[2].Values
	assert.Equal(t, "", *sub[l.schema.Index(ColCheck)].UserEnteredValue.StringValue)
	assert.Equal(t, "", *sub[l.schema.Index(ColSeverity)].UserEnteredValue.StringValue)
	assert.Equal(t, "0621-proc-01", *sub[l.schema.Index(ColSubcheckID)].UserEnteredValue.StringValue)
	assert.Equal(t, "Operate with the keyboard",
		*sub[l.schema.Index("webConditionStatement")].UserEnteredValue.StringValue)
}

func TestRichLinkCell(t *testing.T) {
	cell := richLinkCell([]linkPair{
		{text: "First", url: "https://example.com/1"},
		{text: "Second", url: "https://example.com/2"},
	})

	assert.Equal(t, "First\nSecond", *cell.UserEnteredValue.StringValue)
	require.Len(t, cell.TextFormatRuns, 3, "link, terminator, link")
	assert.Equal(t, int64(0), cell.TextFormatRuns[0].StartIndex)
	assert.Equal(t, "https://example.com/1", cell.TextFormatRuns[0].Format.Link.Uri)
	assert.Nil(t, cell.TextFormatRuns[1].Format.Link, "terminator ends the first link run")
	assert.Equal(t, int64(6), cell.TextFormatRuns[2].StartIndex)
	assert.Equal(t, "https://example.com/2", cell.TextFormatRuns[2].Format.Link.Uri)
}

func TestRichLinkCell_Empty(t *testing.T) {
	cell := richLinkCell(nil)
	assert.Equal(t, "", *cell.UserEnteredValue.StringValue)
	assert.Empty(t, cell.TextFormatRuns)
}
