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
	"regexp"

	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// externalRefPattern matches reference strings that are NOT internal
// document anchors: bare URLs and |substitution| style references.
var externalRefPattern = regexp.MustCompile(`^(https?://|\|.+\|)`)

// InfoRef is a pointer to supplementary information: either an internal
// document anchor (treated symbolically) or an external link.
//
// InfoRefs are addressed by their raw reference string, so the same ref
// can legitimately appear in many documents. Construction is therefore
// idempotent per ref: a repeat returns the interned instance.
type InfoRef struct {
	base
	internal bool
	text     message.Text
	url      message.Text
}

// NewInfoRef interns ref, returning the existing instance when the ref
// was seen before.
func NewInfoRef(ref string) *InfoRef {
	if existing, ok := InfoRefs.GetByID(ref); ok {
		return existing
	}
	i := &InfoRef{
		base:     newBase("info_ref", ref, ""),
		internal: !externalRefPattern.MatchString(ref),
	}
	// The ref string is the id; a collision is impossible here because
	// the existing instance was just checked for.
	_ = InfoRefs.Register(i)
	return i
}

// SetExternal attaches display text and a URL from the static reference
// catalog. Used for |name|-style refs that resolve to external pages.
func (i *InfoRef) SetExternal(text, url message.Text) {
	i.text = text
	i.url = url
}

// Internal reports whether the ref is an internal document anchor.
func (i *InfoRef) Internal() bool { return i.internal }

// RefName returns the bare anchor name for internal refs, stripping any
// |...| decoration.
func (i *InfoRef) RefName() string {
	id := i.ID()
	if len(id) >= 2 && id[0] == '|' && id[len(id)-1] == '|' {
		return id[1 : len(id)-1]
	}
	return id
}

// Text returns the localized display text for external refs.
func (i *InfoRef) Text(lang string) string { return i.text.In(lang) }

// URL returns the localized URL for external refs.
func (i *InfoRef) URL(lang string) string { return i.url.In(lang) }

// HasGuidelines reports whether any guideline references this ref.
func (i *InfoRef) HasGuidelines() bool {
	return len(rel().GetRelated(i, "guideline")) > 0
}

// HasFAQs reports whether any FAQ article references this ref.
func (i *InfoRef) HasFAQs() bool {
	return len(rel().GetRelated(i, "faq")) > 0
}

// Guidelines returns the guidelines referencing this ref.
func (i *InfoRef) Guidelines() []*Guideline {
	nodes := rel().GetSortedRelated(i, "guideline", nil)
	out := make([]*Guideline, 0, len(nodes))
	for _, n := range nodes {
		if g, ok := n.(*Guideline); ok {
			out = append(out, g)
		}
	}
	return out
}

// FAQs returns the FAQ articles referencing this ref.
func (i *InfoRef) FAQs() []*FAQ {
	nodes := rel().GetSortedRelated(i, "faq", nil)
	out := make([]*FAQ, 0, len(nodes))
	for _, n := range nodes {
		if f, ok := n.(*FAQ); ok {
			out = append(out, f)
		}
	}
	return out
}

// ListHasGuidelines returns the info refs referenced by at least one
// guideline, for the reverse-index pages.
func ListHasGuidelines() []*InfoRef {
	var out []*InfoRef
	for _, i := range InfoRefs.ListAll() {
		if i.HasGuidelines() {
			out = append(out, i)
		}
	}
	return out
}

// ListHasFAQs returns the info refs referenced by at least one FAQ.
func ListHasFAQs() []*InfoRef {
	var out []*InfoRef
	for _, i := range InfoRefs.ListAll() {
		if i.HasFAQs() {
			out = append(out, i)
		}
	}
	return out
}

// TemplateData implements Entity.
func (i *InfoRef) TemplateData(lang string) map[string]any {
	data := map[string]any{
		"ref":      i.RefName(),
		"internal": i.internal,
	}
	if !i.internal || !i.url.IsEmpty() {
		if t := i.Text(lang); t != "" {
			data["text"] = t
		}
		if u := i.URL(lang); u != "" {
			data["url"] = u
		}
	}
	return data
}
