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

// Category groups guidelines into one documentation page.
type Category struct {
	base
	names message.Text
}

// NewCategory interns a category.
func NewCategory(rec CategoryRecord) (*Category, error) {
	c := &Category{
		base:  newBase("category", rec.ID, ""),
		names: rec.Names,
	}
	if err := Categories.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the localized display name.
func (c *Category) Name(lang string) string {
	return c.names.In(lang)
}

// Guidelines returns the category's guidelines in sort-key order.
func (c *Category) Guidelines() []*Guideline {
	nodes := rel().GetSortedRelated(c, "guideline", nil)
	out := make([]*Guideline, 0, len(nodes))
	for _, n := range nodes {
		if g, ok := n.(*Guideline); ok {
			out = append(out, g)
		}
	}
	return out
}

// TemplateData implements Entity.
func (c *Category) TemplateData(lang string) map[string]any {
	gls := c.Guidelines()
	guidelines := make([]map[string]any, 0, len(gls))
	for _, g := range gls {
		guidelines = append(guidelines, g.TemplateData(lang))
	}
	return map[string]any{
		"id":         c.ID(),
		"name":       c.Name(lang),
		"guidelines": guidelines,
	}
}

// SrcPaths returns the source paths of every guideline in the category,
// for dependency output.
func (c *Category) SrcPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range c.Guidelines() {
		p := g.SrcPath()
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
