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

import (
	"fmt"
	"slices"

	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// Check is an atomic accessibility verification step with localized
// instructions, a severity, and a boolean procedure tree.
type Check struct {
	base
	text            message.Text
	severity        string
	target          string
	platform        []string
	conditions      []*ConditionRecord
	implementations []*ImplementationRecord
}

// NewCheck interns a check. Its info references named directly in the
// record are associated immediately; references inherited from
// guidelines are added when the guidelines are constructed.
func NewCheck(rec *CheckRecord) (*Check, error) {
	for _, p := range rec.Platform {
		if !slices.Contains(Platforms, p) {
			return nil, fmt.Errorf("check %s: unknown platform %q", rec.ID, p)
		}
	}

	c := &Check{
		base:            newSortedBase("check", rec.ID, rec.SortKey, rec.SrcPath),
		text:            rec.Check,
		severity:        rec.Severity,
		target:          rec.Target,
		platform:        rec.Platform,
		conditions:      rec.Conditions,
		implementations: rec.Implementations,
	}
	if err := Checks.Register(c); err != nil {
		return nil, err
	}

	for _, ref := range rec.Info {
		rel().Associate(c, NewInfoRef(ref))
	}

	return c, nil
}

// Text returns the localized check instruction.
func (c *Check) Text(lang string) string { return c.text.In(lang) }

// Severity returns the check severity (minor/normal/major/critical).
func (c *Check) Severity() string { return c.severity }

// Target returns the check target (design/code/product).
func (c *Check) Target() string { return c.target }

// Platforms returns the check's platform set.
func (c *Check) Platforms() []string { return c.platform }

// Conditions returns the check's condition trees, one per platform.
func (c *Check) Conditions() []*ConditionRecord { return c.conditions }

// ConditionForPlatform returns the condition tree covering platform, or
// nil when the check has none.
func (c *Check) ConditionForPlatform(platform string) *ConditionRecord {
	for _, cond := range c.conditions {
		if cond.Platform == platform || cond.Platform == PlatformGeneral || cond.Platform == "" {
			return cond
		}
	}
	return nil
}

// Guidelines returns the guidelines referencing this check.
func (c *Check) Guidelines() []*Guideline {
	nodes := rel().GetSortedRelated(c, "guideline", nil)
	out := make([]*Guideline, 0, len(nodes))
	for _, n := range nodes {
		if g, ok := n.(*Guideline); ok {
			out = append(out, g)
		}
	}
	return out
}

// FAQs returns the FAQ articles referencing this check.
func (c *Check) FAQs() []*FAQ {
	nodes := rel().GetSortedRelated(c, "faq", nil)
	out := make([]*FAQ, 0, len(nodes))
	for _, n := range nodes {
		if f, ok := n.(*FAQ); ok {
			out = append(out, f)
		}
	}
	return out
}

// InfoRefs returns the check's info references, both direct and
// inherited from its guidelines.
func (c *Check) InfoRefs() []*InfoRef {
	nodes := rel().GetRelated(c, "info_ref")
	out := make([]*InfoRef, 0, len(nodes))
	for _, n := range nodes {
		if i, ok := n.(*InfoRef); ok {
			out = append(out, i)
		}
	}
	return out
}

// conditionText renders a condition tree as localized prose: leaf
// procedures verbatim, and/or nodes joined by the localized conjunction.
func conditionText(cond *ConditionRecord, lang string) string {
	if cond == nil {
		return ""
	}
	if cond.Kind == ConditionSimple {
		return cond.Procedure.Steps.In(lang)
	}
	conj := message.Default.Get("conjunction", cond.Kind, lang)
	out := ""
	for i, child := range cond.Conditions {
		if i > 0 {
			out += conj
		}
		out += conditionText(child, lang)
	}
	return out
}

// TemplateData implements Entity.
func (c *Check) TemplateData(lang string) map[string]any {
	conditions := make([]map[string]any, 0)
	for _, cond := range c.conditions {
		procedures := make([]map[string]any, 0)
		for _, p := range cond.Procedures() {
			proc := map[string]any{
				"id":        p.ID,
				"platform":  p.Platform,
				"procedure": p.Steps.In(lang),
			}
			if p.Tool != "" {
				proc["tool"] = p.Tool
			}
			if !p.Note.IsEmpty() {
				proc["note"] = p.Note.In(lang)
			}
			procedures = append(procedures, proc)
		}
		conditions = append(conditions, map[string]any{
			"platform":   cond.Platform,
			"summary":    conditionText(cond, lang),
			"procedures": procedures,
		})
	}

	implementations := make([]map[string]any, 0)
	for _, impl := range c.implementations {
		methods := make(map[string]string, len(impl.Methods))
		for platform, text := range impl.Methods {
			methods[platform] = text.In(lang)
		}
		implementations = append(implementations, map[string]any{
			"title":   impl.Title.In(lang),
			"methods": methods,
		})
	}

	guidelines := make([]string, 0)
	for _, g := range c.Guidelines() {
		guidelines = append(guidelines, g.ID())
	}
	faqs := make([]string, 0)
	for _, f := range c.FAQs() {
		faqs = append(faqs, f.ID())
	}
	info := make([]map[string]any, 0)
	for _, i := range c.InfoRefs() {
		info = append(info, i.TemplateData(lang))
	}

	data := map[string]any{
		"id":       c.ID(),
		"check":    c.Text(lang),
		"severity": message.Default.Get("severity", c.severity, lang),
		"target":   message.Default.Get("target", c.target, lang),
		"platform": platformText(c.platform, lang),
	}
	if len(conditions) > 0 {
		data["conditions"] = conditions
	}
	if len(implementations) > 0 {
		data["implementations"] = implementations
	}
	if len(guidelines) > 0 {
		data["guidelines"] = guidelines
	}
	if len(faqs) > 0 {
		data["faqs"] = faqs
	}
	if len(info) > 0 {
		data["info"] = info
	}
	return data
}
