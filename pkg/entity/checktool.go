// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package entity

import "github.com/AleutianAI/a11ybuild/pkg/message"

// CheckTool is a verification tool referenced by procedures. Each tool
// collects the (check, procedure) pairs that demonstrate its use, for
// the per-tool example pages.
type CheckTool struct {
	base
	names   message.Text
	baseURL string
}

// ToolExample is one usage example of a tool.
type ToolExample struct {
	CheckID     string
	ProcedureID string
}

// NewCheckTool interns a check tool.
func NewCheckTool(rec CheckToolRecord) (*CheckTool, error) {
	t := &CheckTool{
		base:    newBase("check_tool", rec.ID, ""),
		names:   rec.Names,
		baseURL: rec.BaseURL,
	}
	if err := CheckTools.Register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the localized display name.
func (t *CheckTool) Name(lang string) string { return t.names.In(lang) }

// BaseURL returns the tool's documentation base URL, if any.
func (t *CheckTool) BaseURL() string { return t.baseURL }

// AddExample associates the check using this tool, so example pages can
// enumerate usages. Procedures record the tool id themselves.
func (t *CheckTool) AddExample(c *Check) {
	rel().Associate(t, c)
}

// Examples returns the (check, procedure) pairs demonstrating the tool,
// in check sort-key order.
func (t *CheckTool) Examples() []ToolExample {
	var out []ToolExample
	for _, n := range rel().GetSortedRelated(t, "check", nil) {
		c, ok := n.(*Check)
		if !ok {
			continue
		}
		for _, cond := range c.Conditions() {
			for _, p := range cond.Procedures() {
				if p.Tool == t.ID() {
					out = append(out, ToolExample{CheckID: c.ID(), ProcedureID: p.ID})
				}
			}
		}
	}
	return out
}

// TemplateData implements Entity.
func (t *CheckTool) TemplateData(lang string) map[string]any {
	examples := make([]map[string]any, 0)
	for _, ex := range t.Examples() {
		examples = append(examples, map[string]any{
			"check":     ex.CheckID,
			"procedure": ex.ProcedureID,
		})
	}
	return map[string]any{
		"id":       t.ID(),
		"name":     t.Name(lang),
		"examples": examples,
	}
}
