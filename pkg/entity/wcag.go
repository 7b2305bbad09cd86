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

// WcagSc is one WCAG success criterion ("1.1.1", "2.4.7", ...).
type WcagSc struct {
	base
	level         string
	localPriority string
	langData      map[string]WcagLc
}

// NewWcagSc interns a success criterion. scnum is the dotted criterion
// number and doubles as the id.
func NewWcagSc(scnum string, rec WcagScRecord) (*WcagSc, error) {
	sc := &WcagSc{
		base:          newSortedBase("wcag_sc", scnum, rec.SortKey, ""),
		level:         rec.Level,
		localPriority: rec.LocalPriority,
		langData:      rec.LangData,
	}
	if err := WcagSCs.Register(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// SCNum returns the dotted criterion number.
func (sc *WcagSc) SCNum() string { return sc.ID() }

// Level returns the conformance level (A, AA, AAA).
func (sc *WcagSc) Level() string { return sc.level }

// LocalPriority returns the locally assigned priority, which may differ
// from the WCAG level.
func (sc *WcagSc) LocalPriority() string {
	if sc.localPriority != "" {
		return sc.localPriority
	}
	return sc.level
}

// Title returns the criterion title in lang, falling back to English
// (the W3C source language for criterion titles).
func (sc *WcagSc) Title(lang string) string {
	if lc, ok := sc.langData[lang]; ok && lc.Title != "" {
		return lc.Title
	}
	if lc, ok := sc.langData["en"]; ok {
		return lc.Title
	}
	return sc.ID()
}

// URL returns the criterion's understanding-document URL in lang,
// falling back to English.
func (sc *WcagSc) URL(lang string) string {
	if lc, ok := sc.langData[lang]; ok && lc.URL != "" {
		return lc.URL
	}
	if lc, ok := sc.langData["en"]; ok {
		return lc.URL
	}
	return ""
}

// Guidelines returns the guidelines mapped to this criterion.
func (sc *WcagSc) Guidelines() []*Guideline {
	nodes := rel().GetSortedRelated(sc, "guideline", nil)
	out := make([]*Guideline, 0, len(nodes))
	for _, n := range nodes {
		if g, ok := n.(*Guideline); ok {
			out = append(out, g)
		}
	}
	return out
}

// AxeRules returns the axe-core rules tagged with this criterion.
func (sc *WcagSc) AxeRules() []*AxeRule {
	nodes := rel().GetSortedRelated(sc, "axe_rule", nil)
	out := make([]*AxeRule, 0, len(nodes))
	for _, n := range nodes {
		if r, ok := n.(*AxeRule); ok {
			out = append(out, r)
		}
	}
	return out
}

// TemplateData implements Entity.
func (sc *WcagSc) TemplateData(lang string) map[string]any {
	return map[string]any{
		"sc":             sc.ID(),
		"level":          sc.level,
		"local_priority": sc.LocalPriority(),
		"sc_title":       sc.Title(lang),
		"sc_url":         sc.URL(lang),
	}
}
