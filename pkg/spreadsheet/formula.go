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

	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
)

// formulaContext composes the result formulas of one sheet. A1
// references are built from the id-to-row map assembled during row
// layout; the map holds check ids and procedure ids, so cross-row
// references never need recomputation.
type formulaContext struct {
	lang   string
	schema *Schema
	rowMap map[string]int64 // id -> 1-based sheet row number
}

func (f *formulaContext) cell(column string, rowNum int64) string {
	return fmt.Sprintf("%s%d", ColumnLetter(f.schema.Index(column)), rowNum)
}

// calculatedFormula builds the calculatedResult cell of a parent row.
//
// With subchecks, the condition kind drives the aggregation over the
// subcheck result cells: "and" passes only when every subcheck is
// applicable and fails on any inapplicable one; "or" passes on any
// applicable subcheck and fails only when all are inapplicable. Without
// subchecks the row's own result cell is mapped to the final tokens.
func (f *formulaContext) calculatedFormula(row *checksheet.Row, t checksheet.Target) string {
	pass, fail, unchecked := userPass(f.lang), userFail(f.lang), userUnchecked(f.lang)
	ok, ng := finalPass(f.lang), finalFail(f.lang)

	set, hasSubs := row.Subchecks[t]
	if !hasSubs || set.Count == 0 {
		self := f.cell(ColResult, f.rowMap[row.CheckID])
		return fmt.Sprintf(`=IF(%s="%s","%s",IF(%s="%s","%s","%s"))`,
			self, pass, ok, self, fail, ng, unchecked)
	}

	first := f.rowMap[set.Conditions[0].SubcheckID]
	last := f.rowMap[set.Conditions[set.Count-1].SubcheckID]
	rng := fmt.Sprintf("%s:%s", f.cell(ColResult, first), f.cell(ColResult, last))

	switch row.ConditionKinds[t] {
	case "or":
		return fmt.Sprintf(`=IF(COUNTIF(%s,"%s")>0,"%s",IF(COUNTIF(%s,"%s")=%d,"%s","%s"))`,
			rng, pass, ok, rng, fail, set.Count, ng, unchecked)
	default: // "and" and single-kind trees aggregate conjunctively
		return fmt.Sprintf(`=IF(COUNTIF(%s,"%s")=%d,"%s",IF(COUNTIF(%s,"%s")>0,"%s","%s"))`,
			rng, pass, set.Count, ok, rng, fail, ng, unchecked)
	}
}

// finalFormula builds the finalResult cell of a parent row: an entered
// result overrides, otherwise the calculated result stands. The
// unchecked token counts as "not entered" because it is the dropdown
// default.
func (f *formulaContext) finalFormula(row *checksheet.Row) string {
	pass, unchecked := userPass(f.lang), userUnchecked(f.lang)
	ok, ng := finalPass(f.lang), finalFail(f.lang)

	rowNum := f.rowMap[row.CheckID]
	result := f.cell(ColResult, rowNum)
	calculated := f.cell(ColCalculatedResult, rowNum)

	return fmt.Sprintf(`=IF(OR(%s="",%s="%s"),%s,IF(%s="%s","%s","%s"))`,
		result, result, unchecked, calculated, result, pass, ok, ng)
}

// subFinalFormula builds the finalResult cell of a subcheck row: a
// plain reference to the parent's calculated cell, so a change to any
// subcheck propagates to every row of the group.
func (f *formulaContext) subFinalFormula(parentCheckID string) string {
	return fmt.Sprintf("=%s", f.cell(ColCalculatedResult, f.rowMap[parentCheckID]))
}
