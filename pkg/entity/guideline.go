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

// Guideline is an accessibility recommendation linking checks to WCAG
// success criteria.
type Guideline struct {
	base
	category  string
	title     message.Text
	statement message.Text
	intent    message.Text
	platform  []string
}

// NewGuideline interns a guideline and wires its relations: the owning
// category, the referenced checks and success criteria, and its info
// references. Every info reference is also associated with every check
// the guideline names, so that per-check reference lists are complete
// without a later closure pass.
//
// Referenced categories, checks and criteria must already be registered.
func NewGuideline(rec GuidelineRecord) (*Guideline, error) {
	for _, p := range rec.Platform {
		if !slices.Contains(Platforms, p) {
			return nil, fmt.Errorf("guideline %s: unknown platform %q", rec.ID, p)
		}
	}

	g := &Guideline{
		base:      newSortedBase("guideline", rec.ID, rec.SortKey, rec.SrcPath),
		category:  rec.Category,
		title:     rec.Title,
		statement: rec.Guideline,
		intent:    rec.Intent,
		platform:  rec.Platform,
	}
	if err := Guidelines.Register(g); err != nil {
		return nil, err
	}

	cat, ok := Categories.GetByID(rec.Category)
	if !ok {
		return nil, &UnknownReferenceError{TypeName: "category", ID: rec.Category, Referrer: "guideline " + rec.ID}
	}
	rel().Associate(g, cat)

	checks := make([]*Check, 0, len(rec.Checks))
	for _, id := range rec.Checks {
		c, ok := Checks.GetByID(id)
		if !ok {
			return nil, &UnknownReferenceError{TypeName: "check", ID: id, Referrer: "guideline " + rec.ID}
		}
		rel().Associate(g, c)
		checks = append(checks, c)
	}

	for _, scnum := range rec.SC {
		sc, ok := WcagSCs.GetByID(scnum)
		if !ok {
			return nil, &UnknownReferenceError{TypeName: "wcag_sc", ID: scnum, Referrer: "guideline " + rec.ID}
		}
		rel().Associate(g, sc)
	}

	for _, ref := range rec.Info {
		info := NewInfoRef(ref)
		rel().Associate(g, info)
		for _, c := range checks {
			rel().Associate(c, info)
		}
	}

	return g, nil
}

// Category returns the owning category.
func (g *Guideline) Category() *Category {
	c, _ := Categories.GetByID(g.category)
	return c
}

// Title returns the localized title.
func (g *Guideline) Title(lang string) string { return g.title.In(lang) }

// Statement returns the localized guideline statement.
func (g *Guideline) Statement(lang string) string { return g.statement.In(lang) }

// Intent returns the localized intent text.
func (g *Guideline) Intent(lang string) string { return g.intent.In(lang) }

// Platforms returns the guideline's platform set.
func (g *Guideline) Platforms() []string { return g.platform }

// Checks returns the referenced checks in sort-key order.
func (g *Guideline) Checks() []*Check {
	nodes := rel().GetSortedRelated(g, "check", nil)
	out := make([]*Check, 0, len(nodes))
	for _, n := range nodes {
		if c, ok := n.(*Check); ok {
			out = append(out, c)
		}
	}
	return out
}

// SuccessCriteria returns the referenced WCAG criteria in number order.
func (g *Guideline) SuccessCriteria() []*WcagSc {
	nodes := rel().GetSortedRelated(g, "wcag_sc", nil)
	out := make([]*WcagSc, 0, len(nodes))
	for _, n := range nodes {
		if sc, ok := n.(*WcagSc); ok {
			out = append(out, sc)
		}
	}
	return out
}

// FAQs returns the FAQ articles that reference this guideline.
func (g *Guideline) FAQs() []*FAQ {
	nodes := rel().GetSortedRelated(g, "faq", nil)
	out := make([]*FAQ, 0, len(nodes))
	for _, n := range nodes {
		if f, ok := n.(*FAQ); ok {
			out = append(out, f)
		}
	}
	return out
}

// InfoRefs returns the guideline's info references in insertion order.
func (g *Guideline) InfoRefs() []*InfoRef {
	nodes := rel().GetRelated(g, "info_ref")
	out := make([]*InfoRef, 0, len(nodes))
	for _, n := range nodes {
		if i, ok := n.(*InfoRef); ok {
			out = append(out, i)
		}
	}
	return out
}

// platformText renders a platform set as a localized comma-joined string.
func platformText(platforms []string, lang string) string {
	sep := message.Default.Get("separator", "list", lang)
	out := ""
	for i, p := range platforms {
		if i > 0 {
			out += sep
		}
		out += message.Default.Get("platform", p, lang)
	}
	return out
}

// TemplateData implements Entity.
func (g *Guideline) TemplateData(lang string) map[string]any {
	scs := make([]map[string]any, 0)
	for _, sc := range g.SuccessCriteria() {
		scs = append(scs, sc.TemplateData(lang))
	}
	checks := make([]map[string]any, 0)
	for _, c := range g.Checks() {
		checks = append(checks, c.TemplateData(lang))
	}
	faqs := make([]string, 0)
	for _, f := range g.FAQs() {
		faqs = append(faqs, f.ID())
	}
	info := make([]map[string]any, 0)
	for _, i := range g.InfoRefs() {
		info = append(info, i.TemplateData(lang))
	}
	data := map[string]any{
		"id":        g.ID(),
		"title":     g.Title(lang),
		"guideline": g.Statement(lang),
		"intent":    g.Intent(lang),
		"platform":  platformText(g.platform, lang),
		"category":  g.category,
		"scs":       scs,
		"checks":    checks,
	}
	if len(faqs) > 0 {
		data["faqs"] = faqs
	}
	if len(info) > 0 {
		data["info"] = info
	}
	return data
}
