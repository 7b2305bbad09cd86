// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package message holds localized text values and the message catalog used
// for every user-facing string in generated documents and spreadsheets.
//
// The fallback chain is uniform across the tool: requested language, then
// Japanese, then the raw identifier. Japanese is the authoring language of
// the source corpus, so it is always present.
package message

// LangJa and LangEn are the two languages the corpus is authored in.
const (
	LangJa = "ja"
	LangEn = "en"
)

// Languages lists the supported languages in output order.
var Languages = []string{LangJa, LangEn}

// Text is a localized string, keyed by language code.
type Text map[string]string

// In returns the value for lang, falling back to Japanese when the
// requested language is missing. Returns "" when neither exists.
func (t Text) In(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t[LangJa]; ok {
		return v
	}
	return ""
}

// IsEmpty reports whether no language carries a value.
func (t Text) IsEmpty() bool {
	for _, v := range t {
		if v != "" {
			return false
		}
	}
	return true
}

// Merge returns a copy of t with missing languages filled from other.
func (t Text) Merge(other Text) Text {
	out := make(Text, len(t)+len(other))
	for k, v := range other {
		out[k] = v
	}
	for k, v := range t {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// NewText builds a Text from Japanese and English values.
func NewText(ja, en string) Text {
	return Text{LangJa: ja, LangEn: en}
}
