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

	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

func formulaFixture(rowMap map[string]int64) *formulaContext {
	return &formulaContext{
		lang:   message.LangEn,
		schema: SchemaFor(checksheet.ProductWeb),
		rowMap: rowMap,
	}
}

func TestCalculatedFormula_NoSubchecks(t *testing.T) {
	fc := formulaFixture(map[string]int64{"0441": 2})
	row := &checksheet.Row{
		CheckID:        "0441",
		Subchecks:      map[checksheet.Target]*checksheet.SubcheckSet{},
		ConditionKinds: map[checksheet.Target]string{},
	}

	got := fc.calculatedFormula(row, checksheet.ProductWeb)
	assert.Equal(t,
		`=IF(E2="Applicable","OK",IF(E2="Not applicable","NG","Unchecked"))`,
		got)
}

func TestCalculatedFormula_AndAggregation(t *testing.T) {
	sub1 := &checksheet.Row{SubcheckID: "0621-proc-01", IsSubcheck: true}
	sub2 := &checksheet.Row{SubcheckID: "0621-proc-02", IsSubcheck: true}
	fc := formulaFixture(map[string]int64{
		"0621": 2, "0621-proc-01": 3, "0621-proc-02": 4,
	})
	row := &checksheet.Row{
		CheckID: "0621",
		Subchecks: map[checksheet.Target]*checksheet.SubcheckSet{
			checksheet.ProductWeb: {Count: 2, Conditions: []*checksheet.Row{sub1, sub2}},
		},
		ConditionKinds: map[checksheet.Target]string{checksheet.ProductWeb: "and"},
	}

	got := fc.calculatedFormula(row, checksheet.ProductWeb)
	assert.Equal(t,
		`=IF(COUNTIF(E3:E4,"Applicable")=2,"OK",IF(COUNTIF(E3:E4,"Not applicable")>0,"NG","Unchecked"))`,
		got)
}

func TestCalculatedFormula_OrAggregation(t *testing.T) {
	sub1 := &checksheet.Row{SubcheckID: "0621-proc-01", IsSubcheck: true}
	sub2 := &checksheet.Row{SubcheckID: "0621-proc-02", IsSubcheck: true}
	fc := formulaFixture(map[string]int64{
		"0621": 2, "0621-proc-01": 3, "0621-proc-02": 4,
	})
	row := &checksheet.Row{
		CheckID: "0621",
		Subchecks: map[checksheet.Target]*checksheet.SubcheckSet{
			checksheet.ProductWeb: {Count: 2, Conditions: []*checksheet.Row{sub1, sub2}},
		},
		ConditionKinds: map[checksheet.Target]string{checksheet.ProductWeb: "or"},
	}

	got := fc.calculatedFormula(row, checksheet.ProductWeb)
	assert.Equal(t,
		`=IF(COUNTIF(E3:E4,"Applicable")>0,"OK",IF(COUNTIF(E3:E4,"Not applicable")=2,"NG","Unchecked"))`,
		got)
}

func TestFinalFormula_EnteredResultOverrides(t *testing.T) {
	fc := formulaFixture(map[string]int64{"0441": 2})
	row := &checksheet.Row{CheckID: "0441"}

	got := fc.finalFormula(row)
	assert.Equal(t,
		`=IF(OR(E2="",E2="Unchecked"),C2,IF(E2="Applicable","OK","NG"))`,
		got)
}

func TestSubFinalFormula_ReferencesParent(t *testing.T) {
	fc := formulaFixture(map[string]int64{"0621": 2})
	assert.Equal(t, "=C2", fc.subFinalFormula("0621"))
}
