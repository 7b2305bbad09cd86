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
	"sort"

	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/logging"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// Generate expands the raw check records into per-target row streams.
//
// Records are processed in ascending sortKey order (missing keys sort as
// 0). Each check's parent row is appended to every sheet it names;
// subcheck rows derived from multi-procedure conditions follow their
// parent on their owning sheet only.
//
// A record naming a (target, platform) combination outside the known
// sheet set is logged as a warning and dropped from all sheets.
func Generate(records map[string]*entity.CheckRecord, logger *logging.Logger) map[Target][]*Row {
	if logger == nil {
		logger = logging.Default()
	}

	ordered := make([]*entity.CheckRecord, 0, len(records))
	for _, rec := range records {
		ordered = append(ordered, rec)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortKey != ordered[j].SortKey {
			return ordered[i].SortKey < ordered[j].SortKey
		}
		return ordered[i].ID < ordered[j].ID
	})

	out := make(map[Target][]*Row, len(AllTargets))
	for _, t := range AllTargets {
		out[t] = []*Row{}
	}

	for _, rec := range ordered {
		sheets := sheetsFor(rec, logger)
		if len(sheets) == 0 {
			continue
		}

		row := newParentRow(rec)

		for _, t := range sheets {
			if !t.HasGeneratedData() {
				continue
			}
			expandConditions(rec, row, t)
		}

		for _, t := range sheets {
			out[t] = append(out[t], row)
			if set, ok := row.Subchecks[t]; ok {
				out[t] = append(out[t], set.Conditions...)
			}
		}
	}

	return out
}

// sheetsFor computes the target sheets of one record, warning about
// combinations outside the sheet set instead of swallowing them.
func sheetsFor(rec *entity.CheckRecord, logger *logging.Logger) []Target {
	seen := make(map[Target]bool)
	var sheets []Target
	for _, platform := range rec.Platform {
		targets, ok := targetsFor(rec.Target, platform)
		if !ok {
			logger.Warn("check dropped from sheet: unknown target/platform combination",
				"check", rec.ID, "target", rec.Target, "platform", platform)
			continue
		}
		for _, t := range targets {
			if !seen[t] {
				seen[t] = true
				sheets = append(sheets, t)
			}
		}
	}
	return sheets
}

// newParentRow applies the standard-field processing of a check record.
func newParentRow(rec *entity.CheckRecord) *Row {
	statements := map[string]message.Text{
		entity.PlatformWeb:     {},
		entity.PlatformIos:     {},
		entity.PlatformAndroid: {},
	}
	return &Row{
		CheckID:             rec.ID,
		SortKey:             rec.SortKey,
		Text:                rec.Check,
		Severity:            rec.Severity,
		Target:              rec.Target,
		ConditionStatements: statements,
		Subchecks:           make(map[Target]*SubcheckSet),
		ConditionKinds:      make(map[Target]string),
	}
}

// expandConditions descends into the record's condition tree for one
// generated-data target: a single leaf procedure becomes the row's own
// condition statement, while multiple leaves emit subcheck rows.
func expandConditions(rec *entity.CheckRecord, row *Row, t Target) {
	platform := t.Platform()
	cond := conditionForPlatform(rec.Conditions, platform)
	if cond == nil {
		return
	}
	procs := proceduresForPlatform(cond, platform)
	if len(procs) == 0 {
		return
	}

	row.ConditionKinds[t] = cond.Kind

	if len(procs) == 1 {
		p := procs[0]
		row.ConditionStatements[platform] = p.Steps
		if ref := toolRef(p); ref != nil {
			row.Tools = appendToolRef(row.Tools, *ref)
		}
		return
	}

	row.ConditionStatements[platform] = FormatStatementSummary(conditionSummary(cond, platform))

	subs := make([]*Row, 0, len(procs))
	for _, p := range procs {
		sub := &Row{
			SubcheckID: p.ID,
			IsSubcheck: true,
			SortKey:    row.SortKey,
			Target:     rec.Target,
			ConditionStatements: map[string]message.Text{
				platform: p.Steps,
			},
			Subchecks:      make(map[Target]*SubcheckSet),
			ConditionKinds: make(map[Target]string),
		}
		if ref := toolRef(p); ref != nil {
			sub.Tools = []ToolRef{*ref}
		}
		subs = append(subs, sub)
	}
	row.Subchecks[t] = &SubcheckSet{Count: len(subs), Conditions: subs}
}

// conditionForPlatform picks the condition tree covering platform. A
// "mobile" condition covers both iOS and Android sheets; "general" and
// untagged conditions cover everything.
func conditionForPlatform(conds []*entity.ConditionRecord, platform string) *entity.ConditionRecord {
	for _, c := range conds {
		if c.Platform == platform {
			return c
		}
	}
	if platform == entity.PlatformIos || platform == entity.PlatformAndroid {
		for _, c := range conds {
			if c.Platform == entity.PlatformMobile {
				return c
			}
		}
	}
	for _, c := range conds {
		if c.Platform == entity.PlatformGeneral || c.Platform == "" {
			return c
		}
	}
	return nil
}

// proceduresForPlatform flattens cond and keeps the leaf procedures
// applicable to platform. A procedure without a platform tag, or tagged
// mobile/general, applies wherever its condition does.
func proceduresForPlatform(cond *entity.ConditionRecord, platform string) []*entity.ProcedureRecord {
	var out []*entity.ProcedureRecord
	for _, p := range cond.Procedures() {
		switch p.Platform {
		case "", platform, entity.PlatformGeneral:
			out = append(out, p)
		case entity.PlatformMobile:
			if platform == entity.PlatformIos || platform == entity.PlatformAndroid {
				out = append(out, p)
			}
		}
	}
	return out
}

// conditionSummary renders the condition tree as a short clause,
// joining children with the localized and/or conjunction. The result is
// wrapped by FormatStatementSummary before display.
func conditionSummary(cond *entity.ConditionRecord, platform string) message.Text {
	out := make(message.Text, len(message.Languages))
	for _, lang := range message.Languages {
		out[lang] = summarizeIn(cond, platform, lang)
	}
	return out
}

func summarizeIn(cond *entity.ConditionRecord, platform, lang string) string {
	if cond.Kind == entity.ConditionSimple {
		if cond.Procedure == nil {
			return ""
		}
		return cond.Procedure.Steps.In(lang)
	}
	conj := message.Default.Get("conjunction", cond.Kind, lang)
	text := ""
	first := true
	for _, child := range cond.Conditions {
		part := summarizeIn(child, platform, lang)
		if part == "" {
			continue
		}
		if !first {
			text += conj
		}
		text += part
		first = false
	}
	return text
}

func toolRef(p *entity.ProcedureRecord) *ToolRef {
	if p.ToolLink != nil {
		return &ToolRef{ToolID: p.ToolLink.ToolID, Text: p.ToolLink.Text, URL: p.ToolLink.URL}
	}
	if p.Tool != "" {
		return &ToolRef{ToolID: p.Tool, Text: message.NewText(p.Tool, p.Tool)}
	}
	return nil
}

// appendToolRef adds ref unless a link to the same tool is present.
func appendToolRef(tools []ToolRef, ref ToolRef) []ToolRef {
	for _, t := range tools {
		if t.ToolID == ref.ToolID {
			return tools
		}
	}
	return append(tools, ref)
}
