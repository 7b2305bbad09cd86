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
	"time"

	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// FAQ is one FAQ article.
type FAQ struct {
	base
	updated     time.Time
	title       message.Text
	problem     message.Text
	solution    message.Text
	explanation message.Text
}

// NewFAQ interns a FAQ article and wires its tag, guideline, check and
// info relations. Links to other FAQ articles are forward references:
// they are deferred to the relationship manager and bound by ResolveFAQs
// once every article is loaded.
func NewFAQ(rec FAQRecord) (*FAQ, error) {
	updated, err := time.Parse(time.RFC3339, rec.Updated)
	if err != nil {
		// Date-only form is also accepted.
		updated, err = time.Parse("2006-01-02", rec.Updated)
		if err != nil {
			return nil, fmt.Errorf("faq %s: invalid updated timestamp %q: %w", rec.ID, rec.Updated, err)
		}
	}

	f := &FAQ{
		base:        newSortedBase("faq", rec.ID, rec.SortKey, rec.SrcPath),
		updated:     updated,
		title:       rec.Title,
		problem:     rec.Problem,
		solution:    rec.Solution,
		explanation: rec.Explanation,
	}
	if err := FAQs.Register(f); err != nil {
		return nil, err
	}

	for _, tagID := range rec.Tags {
		tag, ok := FAQTags.GetByID(tagID)
		if !ok {
			tag, err = NewFAQTag(FAQTagRecord{ID: tagID, Names: message.NewText(tagID, tagID)})
			if err != nil {
				return nil, err
			}
		}
		rel().Associate(f, tag)
	}

	for _, id := range rec.Guidelines {
		g, ok := Guidelines.GetByID(id)
		if !ok {
			return nil, &UnknownReferenceError{TypeName: "guideline", ID: id, Referrer: "faq " + rec.ID}
		}
		rel().Associate(f, g)
	}

	for _, id := range rec.Checks {
		c, ok := Checks.GetByID(id)
		if !ok {
			return nil, &UnknownReferenceError{TypeName: "check", ID: id, Referrer: "faq " + rec.ID}
		}
		rel().Associate(f, c)
	}

	for _, id := range rec.FAQs {
		rel().AddUnresolvedFAQ(rec.ID, id)
	}

	for _, ref := range rec.Info {
		rel().Associate(f, NewInfoRef(ref))
	}

	return f, nil
}

// Updated returns the last-updated timestamp.
func (f *FAQ) Updated() time.Time { return f.updated }

// Title returns the localized title.
func (f *FAQ) Title(lang string) string { return f.title.In(lang) }

// Tags returns the article's tags in id order.
func (f *FAQ) Tags() []*FAQTag {
	nodes := rel().GetSortedRelated(f, "faq_tag", nil)
	out := make([]*FAQTag, 0, len(nodes))
	for _, n := range nodes {
		if t, ok := n.(*FAQTag); ok {
			out = append(out, t)
		}
	}
	return out
}

// Guidelines returns the guidelines this article references.
func (f *FAQ) Guidelines() []*Guideline {
	nodes := rel().GetSortedRelated(f, "guideline", nil)
	out := make([]*Guideline, 0, len(nodes))
	for _, n := range nodes {
		if g, ok := n.(*Guideline); ok {
			out = append(out, g)
		}
	}
	return out
}

// Checks returns the checks this article references.
func (f *FAQ) Checks() []*Check {
	nodes := rel().GetSortedRelated(f, "check", nil)
	out := make([]*Check, 0, len(nodes))
	for _, n := range nodes {
		if c, ok := n.(*Check); ok {
			out = append(out, c)
		}
	}
	return out
}

// Related returns the related FAQ articles, available after ResolveFAQs.
func (f *FAQ) Related() []*FAQ {
	nodes := rel().GetSortedRelated(f, "faq", nil)
	out := make([]*FAQ, 0, len(nodes))
	for _, n := range nodes {
		if other, ok := n.(*FAQ); ok && other.ID() != f.ID() {
			out = append(out, other)
		}
	}
	return out
}

// InfoRefs returns the article's info references in insertion order.
func (f *FAQ) InfoRefs() []*InfoRef {
	nodes := rel().GetRelated(f, "info_ref")
	out := make([]*InfoRef, 0, len(nodes))
	for _, n := range nodes {
		if i, ok := n.(*InfoRef); ok {
			out = append(out, i)
		}
	}
	return out
}

// TemplateData implements Entity.
func (f *FAQ) TemplateData(lang string) map[string]any {
	tags := make([]string, 0)
	for _, t := range f.Tags() {
		tags = append(tags, t.ID())
	}
	guidelines := make([]map[string]any, 0)
	for _, g := range f.Guidelines() {
		guidelines = append(guidelines, map[string]any{
			"id":       g.ID(),
			"title":    g.Title(lang),
			"category": g.Category().Name(lang),
		})
	}
	checks := make([]string, 0)
	for _, c := range f.Checks() {
		checks = append(checks, c.ID())
	}
	related := make([]map[string]any, 0)
	for _, r := range f.Related() {
		related = append(related, map[string]any{
			"id":    r.ID(),
			"title": r.Title(lang),
		})
	}
	info := make([]map[string]any, 0)
	for _, i := range f.InfoRefs() {
		info = append(info, i.TemplateData(lang))
	}

	data := map[string]any{
		"id":          f.ID(),
		"updated":     f.updated.Format("2006-01-02"),
		"title":       f.title.In(lang),
		"problem":     f.problem.In(lang),
		"solution":    f.solution.In(lang),
		"explanation": f.explanation.In(lang),
		"tags":        tags,
	}
	if len(guidelines) > 0 {
		data["guidelines"] = guidelines
	}
	if len(checks) > 0 {
		data["checks"] = checks
	}
	if len(related) > 0 {
		data["related_faqs"] = related
	}
	if len(info) > 0 {
		data["info"] = info
	}
	return data
}

// FAQTag is a string label grouping FAQ articles.
type FAQTag struct {
	base
	names message.Text
}

// NewFAQTag interns a FAQ tag.
func NewFAQTag(rec FAQTagRecord) (*FAQTag, error) {
	t := &FAQTag{
		base:  newBase("faq_tag", rec.ID, ""),
		names: rec.Names,
	}
	if err := FAQTags.Register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the localized display name.
func (t *FAQTag) Name(lang string) string { return t.names.In(lang) }

// FAQs returns the articles carrying this tag, in sort-key order to
// match the FAQ index pages.
func (t *FAQTag) FAQs() []*FAQ {
	nodes := rel().GetSortedRelated(t, "faq", nil)
	out := make([]*FAQ, 0, len(nodes))
	for _, n := range nodes {
		if f, ok := n.(*FAQ); ok {
			out = append(out, f)
		}
	}
	return out
}

// ArticleCount returns the number of articles carrying this tag.
func (t *FAQTag) ArticleCount() int {
	return len(rel().GetRelated(t, "faq"))
}

// TemplateData implements Entity.
func (t *FAQTag) TemplateData(lang string) map[string]any {
	articles := make([]string, 0)
	for _, f := range t.FAQs() {
		articles = append(articles, f.ID())
	}
	return map[string]any{
		"tag":      t.ID(),
		"label":    t.Name(lang),
		"articles": articles,
		"count":    len(articles),
	}
}
