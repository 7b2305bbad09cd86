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
	"sort"

	"google.golang.org/api/sheets/v4"
)

// dataChunkRows caps rows per updateCells request to stay under the
// per-request payload limit.
const dataChunkRows = 100

// cellFields names the CellData fields every content write touches, so
// clears and writes stay symmetric.
const cellFields = "userEnteredValue,userEnteredFormat,dataValidation,textFormatRuns"

var (
	passColor   = &sheets.Color{Red: 0.85, Green: 0.92, Blue: 0.83}
	failColor   = &sheets.Color{Red: 0.96, Green: 0.80, Blue: 0.80}
	headerColor = &sheets.Color{Red: 0.85, Green: 0.85, Blue: 0.85}
)

// buildSheetPlan computes the full request sequence for one target
// sheet. The order is load-bearing: protection must be dropped before
// content writes, and visibility/merging must follow data writes so
// column indices refer to populated cells.
func buildSheetPlan(l *sheetLayout, info *SheetInfo, editorEmail string) []*sheets.Request {
	var reqs []*sheets.Request
	reqs = append(reqs, sizeRequests(l, info)...)
	reqs = append(reqs, deleteProtectionRequests(info)...)
	reqs = append(reqs, clearRequest(l, info))
	reqs = append(reqs, dataRequests(l, info)...)
	reqs = append(reqs, widthRequests(l, info)...)
	reqs = append(reqs, formatRequests(l, info)...)
	reqs = append(reqs, visibilityRequests(l, info)...)
	reqs = append(reqs, conditionalFormatRequests(l, info)...)
	reqs = append(reqs, protectionRequests(l, info, editorEmail)...)
	return reqs
}

// sizeRequests grows or shrinks the grid to exactly fit the layout.
func sizeRequests(l *sheetLayout, info *SheetInfo) []*sheets.Request {
	var reqs []*sheets.Request
	reqs = append(reqs, dimensionAdjustment(info.ID, "ROWS", info.RowCount, l.rowCount())...)
	reqs = append(reqs, dimensionAdjustment(info.ID, "COLUMNS", info.ColumnCount, l.schema.ColumnCount())...)
	return reqs
}

func dimensionAdjustment(sheetID int64, dim string, current, required int64) []*sheets.Request {
	switch {
	case required > current:
		return []*sheets.Request{{
			AppendDimension: &sheets.AppendDimensionRequest{
				SheetId:   sheetID,
				Dimension: dim,
				Length:    required - current,
			},
		}}
	case required < current:
		return []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  dim,
					StartIndex: required,
					EndIndex:   current,
				},
			},
		}}
	default:
		return nil
	}
}

func deleteProtectionRequests(info *SheetInfo) []*sheets.Request {
	reqs := make([]*sheets.Request, 0, len(info.ProtectedRangeIDs))
	for _, id := range info.ProtectedRangeIDs {
		reqs = append(reqs, &sheets.Request{
			DeleteProtectedRange: &sheets.DeleteProtectedRangeRequest{ProtectedRangeId: id},
		})
	}
	return reqs
}

// clearRequest wipes the full target grid before the rewrite.
func clearRequest(l *sheetLayout, info *SheetInfo) *sheets.Request {
	return &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range: &sheets.GridRange{
				SheetId:          info.ID,
				StartRowIndex:    0,
				EndRowIndex:      l.rowCount(),
				StartColumnIndex: 0,
				EndColumnIndex:   l.schema.ColumnCount(),
			},
			Fields: cellFields,
		},
	}
}

// dataRequests writes the grid in row chunks.
func dataRequests(l *sheetLayout, info *SheetInfo) []*sheets.Request {
	var reqs []*sheets.Request
	for start := 0; start < len(l.data); start += dataChunkRows {
		end := start + dataChunkRows
		if end > len(l.data) {
			end = len(l.data)
		}
		reqs = append(reqs, &sheets.Request{
			UpdateCells: &sheets.UpdateCellsRequest{
				Start: &sheets.GridCoordinate{
					SheetId:     info.ID,
					RowIndex:    int64(start),
					ColumnIndex: 0,
				},
				Rows:   l.data[start:end],
				Fields: cellFields,
			},
		})
	}
	return reqs
}

func widthRequests(l *sheetLayout, info *SheetInfo) []*sheets.Request {
	reqs := make([]*sheets.Request, 0, len(l.schema.Columns))
	for i, col := range l.schema.Columns {
		reqs = append(reqs, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    info.ID,
					Dimension:  "COLUMNS",
					StartIndex: int64(i),
					EndIndex:   int64(i) + 1,
				},
				Properties: &sheets.DimensionProperties{PixelSize: col.Width},
				Fields:     "pixelSize",
			},
		})
	}
	return reqs
}

// formatRequests styles the header, freezes it, sets the wrap strategy
// on the data block, and installs the result dropdown.
func formatRequests(l *sheetLayout, info *SheetInfo) []*sheets.Request {
	reqs := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          info.ID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   l.schema.ColumnCount(),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: headerColor,
						TextFormat:      &sheets.TextFormat{Bold: true},
						WrapStrategy:    "WRAP",
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat.bold,wrapStrategy)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        info.ID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	if l.rowCount() > 1 {
		reqs = append(reqs, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          info.ID,
					StartRowIndex:    1,
					EndRowIndex:      l.rowCount(),
					StartColumnIndex: 0,
					EndColumnIndex:   l.schema.ColumnCount(),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{WrapStrategy: "WRAP"},
				},
				Fields: "userEnteredFormat.wrapStrategy",
			},
		})

		resultCol := l.schema.Index(ColResult)
		reqs = append(reqs, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          info.ID,
					StartRowIndex:    1,
					EndRowIndex:      l.rowCount(),
					StartColumnIndex: resultCol,
					EndColumnIndex:   resultCol + 1,
				},
				Cell: &sheets.CellData{
					DataValidation: &sheets.DataValidationRule{
						Condition: &sheets.BooleanCondition{
							Type: "ONE_OF_LIST",
							Values: []*sheets.ConditionValue{
								{UserEnteredValue: userPass(l.lang)},
								{UserEnteredValue: userFail(l.lang)},
								{UserEnteredValue: userUnchecked(l.lang)},
							},
						},
						ShowCustomUi: true,
					},
				},
				Fields: "dataValidation",
			},
		})
	}
	return reqs
}

// visibilityRequests applies the column visibility and merge rules.
// Without generated data only the subcheckId column is hidden. With
// generated data but no subchecks, the generated columns hide too.
// With subchecks present, only the intermediate calculatedResult column
// hides, and each parent row's id pair merges so subcheck rows read as
// indented under their parent.
func visibilityRequests(l *sheetLayout, info *SheetInfo) []*sheets.Request {
	reqs := []*sheets.Request{{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:    info.ID,
				Dimension:  "COLUMNS",
				StartIndex: 0,
				EndIndex:   l.schema.ColumnCount(),
			},
			Properties: &sheets.DimensionProperties{HiddenByUser: false},
			Fields:     "hiddenByUser",
		},
	}}

	hide := func(start, end int64) {
		reqs = append(reqs, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    info.ID,
					Dimension:  "COLUMNS",
					StartIndex: start,
					EndIndex:   end,
				},
				Properties: &sheets.DimensionProperties{HiddenByUser: true},
				Fields:     "hiddenByUser",
			},
		})
	}

	subCol := l.schema.Index(ColSubcheckID)
	switch {
	case !l.target.HasGeneratedData():
		hide(subCol, subCol+1)
	case !l.hasSubchecks:
		hide(subCol, l.schema.Index(ColFinalResult)+1)
	default:
		calcCol := l.schema.Index(ColCalculatedResult)
		hide(calcCol, calcCol+1)
		for _, rowNum := range l.parentSubRows {
			reqs = append(reqs, &sheets.Request{
				MergeCells: &sheets.MergeCellsRequest{
					Range: &sheets.GridRange{
						SheetId:          info.ID,
						StartRowIndex:    rowNum - 1,
						EndRowIndex:      rowNum,
						StartColumnIndex: 0,
						EndColumnIndex:   2,
					},
					MergeType: "MERGE_ROWS",
				},
			})
		}
	}
	return reqs
}

// conditionalFormatRequests highlights pass and fail tokens: two rules
// on the result column everywhere, two more on finalResult for
// generated-data targets.
func conditionalFormatRequests(l *sheetLayout, info *SheetInfo) []*sheets.Request {
	if l.rowCount() <= 1 {
		return nil
	}

	colRange := func(name string) *sheets.GridRange {
		idx := l.schema.Index(name)
		return &sheets.GridRange{
			SheetId:          info.ID,
			StartRowIndex:    1,
			EndRowIndex:      l.rowCount(),
			StartColumnIndex: idx,
			EndColumnIndex:   idx + 1,
		}
	}

	rule := func(index int64, rng *sheets.GridRange, token string, color *sheets.Color) *sheets.Request {
		return &sheets.Request{
			AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
				Index: index,
				Rule: &sheets.ConditionalFormatRule{
					Ranges: []*sheets.GridRange{rng},
					BooleanRule: &sheets.BooleanRule{
						Condition: &sheets.BooleanCondition{
							Type:   "TEXT_EQ",
							Values: []*sheets.ConditionValue{{UserEnteredValue: token}},
						},
						Format: &sheets.CellFormat{BackgroundColor: color},
					},
				},
			},
		}
	}

	reqs := []*sheets.Request{
		rule(0, colRange(ColResult), userPass(l.lang), passColor),
		rule(1, colRange(ColResult), userFail(l.lang), failColor),
	}
	if l.target.HasGeneratedData() {
		reqs = append(reqs,
			rule(2, colRange(ColFinalResult), finalPass(l.lang), passColor),
			rule(3, colRange(ColFinalResult), finalFail(l.lang), failColor),
		)
	}
	return reqs
}

// protectionRequests locks the generated-data block and, for parent
// rows that aggregate subchecks, the derived result cell.
func protectionRequests(l *sheetLayout, info *SheetInfo, editorEmail string) []*sheets.Request {
	if !l.target.HasGeneratedData() || l.rowCount() <= 1 {
		return nil
	}

	var editors *sheets.Editors
	if editorEmail != "" {
		editors = &sheets.Editors{Users: []string{editorEmail}}
	}

	protect := func(rng *sheets.GridRange, description string) *sheets.Request {
		return &sheets.Request{
			AddProtectedRange: &sheets.AddProtectedRangeRequest{
				ProtectedRange: &sheets.ProtectedRange{
					Range:       rng,
					Description: description,
					Editors:     editors,
				},
			},
		}
	}

	calcCol := l.schema.Index(ColCalculatedResult)
	reqs := []*sheets.Request{
		protect(&sheets.GridRange{
			SheetId:          info.ID,
			StartRowIndex:    0,
			EndRowIndex:      l.rowCount(),
			StartColumnIndex: calcCol,
			EndColumnIndex:   l.schema.Index(ColFinalResult) + 1,
		}, "generated result columns"),
	}

	resultCol := l.schema.Index(ColResult)
	for _, rowNum := range l.parentSubRows {
		reqs = append(reqs, protect(&sheets.GridRange{
			SheetId:          info.ID,
			StartRowIndex:    rowNum - 1,
			EndRowIndex:      rowNum,
			StartColumnIndex: resultCol,
			EndColumnIndex:   resultCol + 1,
		}, "derived result"))
	}
	return reqs
}

// versionInfoRequest writes the single version cell on the workbook's
// first sheet.
func versionInfoRequest(info *SheetInfo, row, col int64, text string) *sheets.Request {
	return &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Start: &sheets.GridCoordinate{
				SheetId:     info.ID,
				RowIndex:    row,
				ColumnIndex: col,
			},
			Rows:   []*sheets.RowData{{Values: []*sheets.CellData{textCell(text)}}},
			Fields: "userEnteredValue",
		},
	}
}

// orderBatch arranges a multi-sheet batch by position class. Every
// request is sheet-scoped, so regrouping across sheets is safe; the
// stable sort keeps each sheet's requests in plan order within a
// class, and the version-info write lands after everything else.
func orderBatch(reqs []*sheets.Request) []*sheets.Request {
	sort.SliceStable(reqs, func(i, j int) bool {
		return requestRank(reqs[i]) < requestRank(reqs[j])
	})
	return reqs
}

// requestRank maps a request to its position class in the plan order.
// Data writes and the content clear are both updateCells; they are told
// apart by the presence of row payloads. The version-info write is
// updateCells too, but touches only userEnteredValue, so it falls to
// the last class instead of the data class.
func requestRank(r *sheets.Request) int {
	switch {
	case r.AppendDimension != nil || r.DeleteDimension != nil:
		return 1
	case r.DeleteProtectedRange != nil:
		return 2
	case r.UpdateCells != nil && len(r.UpdateCells.Rows) == 0:
		return 3
	case r.UpdateCells != nil && r.UpdateCells.Fields == cellFields:
		return 4
	case r.UpdateDimensionProperties != nil && r.UpdateDimensionProperties.Fields == "pixelSize":
		return 5
	case r.RepeatCell != nil || r.UpdateSheetProperties != nil:
		return 6
	case r.UpdateDimensionProperties != nil || r.MergeCells != nil:
		return 7
	case r.AddConditionalFormatRule != nil:
		return 8
	case r.AddProtectedRange != nil:
		return 9
	default:
		return 10
	}
}
