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
	"regexp"
	"strings"
	"time"

	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// wcagTagPattern matches axe rule tags naming a WCAG criterion, e.g.
// "wcag111" (1.1.1) or "wcag1410" (1.4.10).
var wcagTagPattern = regexp.MustCompile(`^wcag(\d)(\d)(\d+)$`)

// AxeMeta describes the imported axe-core catalog as a whole.
type AxeMeta struct {
	// Version is the full axe-core package version.
	Version string
	// MajorVersion is the major.minor part used in Deque documentation URLs.
	MajorVersion string
	// DequeURL is the base URL of the Deque rule documentation.
	DequeURL string
	// Timestamp is when the catalog snapshot was built.
	Timestamp time.Time
}

// axeMeta holds the catalog metadata for the current build.
var axeMeta AxeMeta

// SetAxeMeta records the catalog metadata. Called once by the loader
// before any rules are constructed.
func SetAxeMeta(meta AxeMeta) {
	if meta.MajorVersion == "" && meta.Version != "" {
		parts := strings.SplitN(meta.Version, ".", 3)
		if len(parts) >= 2 {
			meta.MajorVersion = parts[0] + "." + parts[1]
		}
	}
	axeMeta = meta
}

// GetAxeMeta returns the catalog metadata for the current build.
func GetAxeMeta() AxeMeta {
	return axeMeta
}

// DecodeWcagTag converts an axe "wcagNNN" tag to the dotted criterion
// number. Returns false for tags that do not name a criterion
// ("wcag2a", "best-practice", ...).
func DecodeWcagTag(tag string) (string, bool) {
	m := wcagTagPattern.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s.%s.%s", m[1], m[2], m[3]), true
}

// AxeRule is one automated-test rule imported from the axe-core catalog.
type AxeRule struct {
	base
	help        message.Text
	description message.Text
	hasWcagSc   bool
	hasGuide    bool
}

// NewAxeRule interns an axe rule and associates it with every registered
// success criterion named by its wcag tags; guidelines attach
// transitively through those criteria.
func NewAxeRule(rec AxeRuleRecord) (*AxeRule, error) {
	r := &AxeRule{
		base:        newBase("axe_rule", rec.ID, rec.SrcPath),
		help:        rec.Help,
		description: rec.Description,
	}
	if err := AxeRules.Register(r); err != nil {
		return nil, err
	}

	for _, tag := range rec.Tags {
		scnum, ok := DecodeWcagTag(tag)
		if !ok {
			continue
		}
		sc, ok := WcagSCs.GetByID(scnum)
		if !ok {
			// The axe catalog covers criteria outside the curated set.
			continue
		}
		r.hasWcagSc = true
		rel().Associate(r, sc)
		if len(rel().GetRelated(sc, "guideline")) > 0 {
			r.hasGuide = true
		}
	}

	return r, nil
}

// Help returns the one-line rule help. Japanese falls back to English
// when the translation catalog has no entry.
func (r *AxeRule) Help(lang string) string { return r.help.In(lang) }

// Description returns the longer rule description, with the same
// fallback behavior as Help.
func (r *AxeRule) Description(lang string) string { return r.description.In(lang) }

// HasWcagSc reports whether the rule maps to at least one registered
// success criterion.
func (r *AxeRule) HasWcagSc() bool { return r.hasWcagSc }

// HasGuideline reports whether any mapped criterion has guidelines.
// HasGuideline implies HasWcagSc.
func (r *AxeRule) HasGuideline() bool { return r.hasGuide }

// SuccessCriteria returns the mapped criteria in number order.
func (r *AxeRule) SuccessCriteria() []*WcagSc {
	nodes := rel().GetSortedRelated(r, "wcag_sc", nil)
	out := make([]*WcagSc, 0, len(nodes))
	for _, n := range nodes {
		if sc, ok := n.(*WcagSc); ok {
			out = append(out, sc)
		}
	}
	return out
}

// Guidelines returns the guidelines reached through the mapped criteria,
// deduplicated, in sort-key order.
func (r *AxeRule) Guidelines() []*Guideline {
	seen := make(map[string]bool)
	var out []*Guideline
	for _, sc := range r.SuccessCriteria() {
		for _, g := range sc.Guidelines() {
			if seen[g.ID()] {
				continue
			}
			seen[g.ID()] = true
			out = append(out, g)
		}
	}
	return out
}

// DequeURL returns the Deque documentation URL for the rule.
func (r *AxeRule) DequeURL() string {
	if axeMeta.DequeURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(axeMeta.DequeURL, "/"), axeMeta.MajorVersion, r.ID())
}

// TemplateData implements Entity.
func (r *AxeRule) TemplateData(lang string) map[string]any {
	scs := make([]map[string]any, 0)
	for _, sc := range r.SuccessCriteria() {
		scs = append(scs, sc.TemplateData(lang))
	}
	guidelines := make([]map[string]any, 0)
	for _, g := range r.Guidelines() {
		guidelines = append(guidelines, map[string]any{
			"id":       g.ID(),
			"title":    g.Title(lang),
			"category": g.Category().Name(lang),
		})
	}
	data := map[string]any{
		"id":          r.ID(),
		"help":        r.Help(lang),
		"description": r.Description(lang),
		"deque_url":   r.DequeURL(),
	}
	if len(scs) > 0 {
		data["scs"] = scs
	}
	if len(guidelines) > 0 {
		data["guidelines"] = guidelines
	}
	return data
}
