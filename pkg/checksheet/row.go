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
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// Row is one checklist row: a check, or a subcheck derived from a leaf
// procedure of a check with multiple procedures on one sheet.
//
// A parent row instance is shared by every target sheet the check names;
// per-target state (subchecks, condition kind) is keyed by target, and
// condition statements are keyed by platform, which is unambiguous
// because a check has exactly one target.
type Row struct {
	// CheckID is the owning check id; empty on subcheck rows.
	CheckID string

	// SubcheckID is the procedure id; set only on subcheck rows.
	SubcheckID string

	// IsSubcheck marks rows derived from a leaf procedure.
	IsSubcheck bool

	// SortKey orders rows; 0 when the source record had none.
	SortKey int

	// Text is the localized check instruction.
	Text message.Text

	// Severity is minor/normal/major/critical.
	Severity string

	// Target is the check target (design/code/product).
	Target string

	// ConditionStatements maps platform (web/ios/android) to the
	// condition-statement cell text. Empty strings until condition
	// descent fills them.
	ConditionStatements map[string]message.Text

	// Tools lists the tool links shown in the tools column.
	Tools []ToolRef

	// Subchecks holds the per-target subcheck row sets; empty map on
	// rows without generated data.
	Subchecks map[Target]*SubcheckSet

	// ConditionKinds records the top-level condition kind (and/or/
	// simple) per target, which drives the aggregation formula.
	ConditionKinds map[Target]string
}

// SubcheckSet is the derived subcheck rows of one parent on one sheet.
type SubcheckSet struct {
	// Count is the number of subcheck rows.
	Count int
	// Conditions are the subcheck rows in procedure order.
	Conditions []*Row
}

// ToolRef is a link to a check tool.
type ToolRef struct {
	ToolID string
	Text   message.Text
	URL    message.Text
}

// HasSubchecks reports whether the row expands into subchecks on t.
func (r *Row) HasSubchecks(t Target) bool {
	set, ok := r.Subchecks[t]
	return ok && set.Count > 0
}

// StatementFor returns the condition-statement cell text for t.
func (r *Row) StatementFor(t Target) message.Text {
	return r.ConditionStatements[t.Platform()]
}

// FormatStatementSummary wraps a condition summary in the localized
// verification sentence: "{summary}ことを確認する。" in Japanese,
// "Verify that {summary}." in English.
func FormatStatementSummary(summary message.Text) message.Text {
	out := make(message.Text, len(message.Languages))
	for _, lang := range message.Languages {
		out[lang] = message.Default.Getf("template", "statementSummary", lang, summary.In(lang))
	}
	return out
}
