// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package checksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

func simpleCondition(platform string, procs ...*entity.ProcedureRecord) *entity.ConditionRecord {
	if len(procs) == 1 {
		return &entity.ConditionRecord{Kind: entity.ConditionSimple, Platform: platform, Procedure: procs[0]}
	}
	children := make([]*entity.ConditionRecord, 0, len(procs))
	for _, p := range procs {
		children = append(children, &entity.ConditionRecord{Kind: entity.ConditionSimple, Procedure: p})
	}
	return &entity.ConditionRecord{Kind: entity.ConditionOr, Platform: platform, Conditions: children}
}

func proc(id, steps string) *entity.ProcedureRecord {
	return &entity.ProcedureRecord{ID: id, Steps: message.NewText(steps, steps)}
}

func TestGenerate_SingleProcedure(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0441": {
			ID: "0441", SortKey: 100,
			Check:    message.NewText("画像に代替テキスト", "Images have alt text"),
			Severity: "critical", Target: entity.TargetProduct,
			Platform: []string{entity.PlatformWeb},
			Conditions: []*entity.ConditionRecord{
				simpleCondition(entity.PlatformWeb, &entity.ProcedureRecord{
					ID:    "0441-proc-01",
					Tool:  "axe",
					Steps: message.NewText("axeを実行する", "Run axe"),
				}),
			},
		},
	}

	out := Generate(records, nil)

	rows := out[ProductWeb]
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "0441", row.CheckID)
	assert.False(t, row.IsSubcheck)
	assert.False(t, row.HasSubchecks(ProductWeb))
	assert.Equal(t, "Run axe", row.StatementFor(ProductWeb).In(message.LangEn))
	require.Len(t, row.Tools, 1)
	assert.Equal(t, "axe", row.Tools[0].ToolID)

	// The check names only the web sheet.
	for _, other := range []Target{DesignWeb, DesignMobile, CodeWeb, CodeMobile, ProductIos, ProductAndroid} {
		assert.Empty(t, out[other], "target %s", other)
	}
}

func TestGenerate_MultiProcedureExpandsSubchecks(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0621": {
			ID: "0621", SortKey: 200,
			Check:    message.NewText("操作可能", "Operable"),
			Severity: "normal", Target: entity.TargetProduct,
			Platform: []string{entity.PlatformWeb},
			Conditions: []*entity.ConditionRecord{
				simpleCondition(entity.PlatformWeb,
					proc("0621-proc-01", "keyboard works"),
					proc("0621-proc-02", "screen reader works"),
				),
			},
		},
	}

	out := Generate(records, nil)

	rows := out[ProductWeb]
	require.Len(t, rows, 3, "parent followed by two subcheck rows")

	parent := rows[0]
	assert.Equal(t, "0621", parent.CheckID)
	assert.True(t, parent.HasSubchecks(ProductWeb))
	assert.Equal(t, entity.ConditionOr, parent.ConditionKinds[ProductWeb])
	assert.Equal(t,
		"Verify that keyboard works, or screen reader works.",
		parent.StatementFor(ProductWeb).In(message.LangEn))

	for i, wantID := range []string{"0621-proc-01", "0621-proc-02"} {
		sub := rows[i+1]
		assert.True(t, sub.IsSubcheck)
		assert.Empty(t, sub.CheckID)
		assert.Equal(t, wantID, sub.SubcheckID)
	}
	assert.Equal(t, "keyboard works", rows[1].StatementFor(ProductWeb).In(message.LangEn))
}

func TestGenerate_ProductMobileFanOut(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0711": {
			ID: "0711", SortKey: 10,
			Check:    message.NewText("あ", "a"),
			Severity: "normal", Target: entity.TargetProduct,
			Platform: []string{entity.PlatformMobile},
			Conditions: []*entity.ConditionRecord{
				simpleCondition("", proc("0711-proc-01", "check it")),
			},
		},
	}

	out := Generate(records, nil)

	require.Len(t, out[ProductIos], 1)
	require.Len(t, out[ProductAndroid], 1)
	assert.Empty(t, out[ProductWeb])

	// The same parent row instance backs both sheets.
	assert.Same(t, out[ProductIos][0], out[ProductAndroid][0])
	assert.Equal(t, "check it", out[ProductIos][0].StatementFor(ProductIos).In(message.LangEn))
}

func TestGenerate_DesignMobileHasNoGeneratedData(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0101": {
			ID: "0101", SortKey: 10,
			Check:    message.NewText("あ", "a"),
			Severity: "normal", Target: entity.TargetDesign,
			Platform: []string{entity.PlatformMobile},
			Conditions: []*entity.ConditionRecord{
				simpleCondition("",
					proc("0101-proc-01", "one"),
					proc("0101-proc-02", "two"),
				),
			},
		},
	}

	out := Generate(records, nil)

	rows := out[DesignMobile]
	require.Len(t, rows, 1, "no subcheck expansion without generated data")
	assert.False(t, rows[0].HasSubchecks(DesignMobile))
	assert.True(t, rows[0].StatementFor(DesignMobile).IsEmpty())
}

func TestGenerate_GeneralPlatformCoversDesignSheets(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0201": {
			ID: "0201", SortKey: 10,
			Check:    message.NewText("あ", "a"),
			Severity: "normal", Target: entity.TargetDesign,
			Platform: []string{entity.PlatformGeneral},
		},
	}

	out := Generate(records, nil)

	assert.Len(t, out[DesignWeb], 1)
	assert.Len(t, out[DesignMobile], 1)
	assert.Empty(t, out[CodeWeb])
}

func TestGenerate_UnknownCombinationDropped(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0301": {
			ID: "0301", SortKey: 10,
			Check:    message.NewText("あ", "a"),
			Severity: "normal", Target: entity.TargetDesign,
			Platform: []string{entity.PlatformIos},
		},
	}

	out := Generate(records, nil)

	for _, target := range AllTargets {
		assert.Empty(t, out[target], "target %s", target)
	}
}

func TestGenerate_OrderedBySortKey(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0902": {ID: "0902", SortKey: 300, Check: message.NewText("う", "c"), Severity: "normal", Target: entity.TargetDesign, Platform: []string{entity.PlatformWeb}},
		"0901": {ID: "0901", SortKey: 100, Check: message.NewText("あ", "a"), Severity: "normal", Target: entity.TargetDesign, Platform: []string{entity.PlatformWeb}},
		"0903": {ID: "0903", SortKey: 200, Check: message.NewText("い", "b"), Severity: "normal", Target: entity.TargetDesign, Platform: []string{entity.PlatformWeb}},
	}

	out := Generate(records, nil)

	var ids []string
	for _, row := range out[DesignWeb] {
		ids = append(ids, row.CheckID)
	}
	assert.Equal(t, []string{"0901", "0903", "0902"}, ids)
}

func TestGenerate_MobileProceduresReachBothStores(t *testing.T) {
	records := map[string]*entity.CheckRecord{
		"0801": {
			ID: "0801", SortKey: 10,
			Check:    message.NewText("あ", "a"),
			Severity: "normal", Target: entity.TargetProduct,
			Platform: []string{entity.PlatformMobile},
			Conditions: []*entity.ConditionRecord{
				{
					Kind:     entity.ConditionAnd,
					Platform: entity.PlatformMobile,
					Conditions: []*entity.ConditionRecord{
						{Kind: entity.ConditionSimple, Procedure: &entity.ProcedureRecord{
							ID: "0801-proc-01", Platform: entity.PlatformIos,
							Steps: message.NewText("VoiceOverで確認", "Check with VoiceOver"),
						}},
						{Kind: entity.ConditionSimple, Procedure: &entity.ProcedureRecord{
							ID: "0801-proc-02", Platform: entity.PlatformAndroid,
							Steps: message.NewText("TalkBackで確認", "Check with TalkBack"),
						}},
						{Kind: entity.ConditionSimple, Procedure: &entity.ProcedureRecord{
							ID: "0801-proc-03", Platform: entity.PlatformMobile,
							Steps: message.NewText("拡大表示で確認", "Check with magnification"),
						}},
					},
				},
			},
		},
	}

	out := Generate(records, nil)

	// iOS keeps its own procedure plus the mobile one; Android likewise.
	iosRows := out[ProductIos]
	require.Len(t, iosRows, 3)
	assert.Equal(t, "0801-proc-01", iosRows[1].SubcheckID)
	assert.Equal(t, "0801-proc-03", iosRows[2].SubcheckID)

	androidRows := out[ProductAndroid]
	require.Len(t, androidRows, 3)
	assert.Equal(t, "0801-proc-02", androidRows[1].SubcheckID)
	assert.Equal(t, "0801-proc-03", androidRows[2].SubcheckID)
}

func TestTargetsFor(t *testing.T) {
	tests := []struct {
		target   string
		platform string
		want     []Target
		ok       bool
	}{
		{target: entity.TargetDesign, platform: entity.PlatformWeb, want: []Target{DesignWeb}, ok: true},
		{target: entity.TargetDesign, platform: entity.PlatformGeneral, want: []Target{DesignWeb, DesignMobile}, ok: true},
		{target: entity.TargetCode, platform: entity.PlatformMobile, want: []Target{CodeMobile}, ok: true},
		{target: entity.TargetProduct, platform: entity.PlatformMobile, want: []Target{ProductIos, ProductAndroid}, ok: true},
		{target: entity.TargetProduct, platform: entity.PlatformGeneral, want: []Target{ProductWeb, ProductIos, ProductAndroid}, ok: true},
		{target: entity.TargetDesign, platform: entity.PlatformIos, ok: false},
		{target: entity.TargetCode, platform: entity.PlatformAndroid, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.target+"/"+tt.platform, func(t *testing.T) {
			got, ok := targetsFor(tt.target, tt.platform)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatStatementSummary(t *testing.T) {
	got := FormatStatementSummary(message.NewText("フォームが送信される", "the form submits"))
	assert.Equal(t, "フォームが送信されることを確認する。", got.In(message.LangJa))
	assert.Equal(t, "Verify that the form submits.", got.In(message.LangEn))
}
