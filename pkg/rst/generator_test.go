// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rst

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// fixtureGraph registers a small but fully connected entity graph.
func fixtureGraph(t *testing.T) {
	t.Helper()
	entity.ResetAll()

	_, err := entity.NewCategory(entity.CategoryRecord{
		ID: "form", Names: message.NewText("フォーム", "Forms"),
	})
	require.NoError(t, err)

	_, err = entity.NewCheck(&entity.CheckRecord{
		ID: "0441", SortKey: 100,
		Check:    message.NewText("画像に代替テキストが提供されている", "Images have alternate text"),
		Severity: "critical", Target: entity.TargetProduct,
		Platform: []string{entity.PlatformWeb},
		SrcPath:  "checks/0441.yaml",
	})
	require.NoError(t, err)

	_, err = entity.NewWcagSc("1.1.1", entity.WcagScRecord{
		SortKey: 10, Level: "A",
		LangData: map[string]entity.WcagLc{
			"en": {Title: "Non-text Content", URL: "https://www.w3.org/TR/WCAG21/#non-text-content"},
		},
	})
	require.NoError(t, err)

	_, err = entity.NewGuideline(entity.GuidelineRecord{
		ID: "gl-form-labeling", SortKey: 10, Category: "form",
		Title:     message.NewText("ラベル", "Labels"),
		Guideline: message.NewText("ガイドライン本文", "Guideline body"),
		Intent:    message.NewText("意図", "Intent"),
		Platform:  []string{entity.PlatformWeb},
		Checks:    []string{"0441"},
		SC:        []string{"1.1.1"},
		Info:      []string{"exp-form-labeling"},
		SrcPath:   "guidelines/gl-form-labeling.yaml",
	})
	require.NoError(t, err)

	_, err = entity.NewFAQ(entity.FAQRecord{
		ID: "faq-a", SortKey: 1, Updated: "2024-05-01",
		Title:       message.NewText("よくある質問", "A frequent question"),
		Problem:     message.NewText("問題", "Problem"),
		Solution:    message.NewText("解決方法", "Solution"),
		Explanation: message.NewText("解説", "Explanation"),
		Tags:        []string{"forms"},
		Guidelines:  []string{"gl-form-labeling"},
		SrcPath:     "faq/faq-a.yaml",
	})
	require.NoError(t, err)
	require.NoError(t, entity.ResolveFAQs())

	entity.SetAxeMeta(entity.AxeMeta{
		Version:  "4.9.1",
		DequeURL: "https://dequeuniversity.com/rules/axe",
	})
	_, err = entity.NewAxeRule(entity.AxeRuleRecord{
		ID: "image-alt", Tags: []string{"wcag2a", "wcag111"},
		Help:    message.NewText("画像に代替テキスト", "Images must have alternate text"),
		SrcPath: "axe/rules.json",
	})
	require.NoError(t, err)

	// A rule outside the curated criteria stays off the mapping page.
	_, err = entity.NewAxeRule(entity.AxeRuleRecord{
		ID: "region", Tags: []string{"best-practice"},
		Help:    message.NewText("", "All page content should be contained by landmarks"),
		SrcPath: "axe/rules.json",
	})
	require.NoError(t, err)
}

func readOut(t *testing.T, destdir string, parts ...string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(destdir, filepath.Join(parts...)))
	require.NoError(t, err)
	return string(b)
}

func TestGenerate_FragmentTree(t *testing.T) {
	fixtureGraph(t)
	destdir := t.TempDir()

	err := NewGenerator(destdir, []string{message.LangJa, message.LangEn}, nil).Generate()
	require.NoError(t, err)

	category := readOut(t, destdir, "ja", "categories", "form.rst")
	assert.Contains(t, category, ".. _category-form:")
	assert.Contains(t, category, ".. _gl-form-labeling:")
	assert.Contains(t, category, ":ref:`check-0441`")

	check := readOut(t, destdir, "ja", "checks", "0441.rst")
	assert.Contains(t, check, ".. _check-0441:")
	assert.Contains(t, check, "チェックID：0441")

	faq := readOut(t, destdir, "ja", "faq", "articles", "faq-a.rst")
	assert.Contains(t, faq, ".. _faq-faq-a:")
	assert.Contains(t, faq, ":ref:`faq-tag-forms`")

	tag := readOut(t, destdir, "ja", "faq", "tags", "forms.rst")
	assert.Contains(t, tag, ".. _faq-tag-forms:")
	assert.Contains(t, tag, ":ref:`faq-faq-a`")

	// Both language trees render.
	enCheck := readOut(t, destdir, "en", "checks", "0441.rst")
	assert.Contains(t, enCheck, "Images have alternate text")
}

func TestGenerate_InfoRefPages(t *testing.T) {
	fixtureGraph(t)
	destdir := t.TempDir()

	err := NewGenerator(destdir, []string{message.LangJa}, nil).Generate()
	require.NoError(t, err)

	page := readOut(t, destdir, "ja", "info", "exp-form-labeling.rst")
	assert.Contains(t, page, ".. _info-exp-form-labeling:")
	assert.Contains(t, page, ":ref:`gl-form-labeling`")

	// External refs get no page of their own.
	entries, err := os.ReadDir(filepath.Join(destdir, "ja", "info"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerate_AxeRulesPage(t *testing.T) {
	fixtureGraph(t)
	destdir := t.TempDir()

	err := NewGenerator(destdir, []string{message.LangEn}, nil).Generate()
	require.NoError(t, err)

	page := readOut(t, destdir, "en", "misc", "axe-rules.rst")
	assert.Contains(t, page, "4.9.1")
	assert.Contains(t, page, "image-alt")
	assert.Contains(t, page, "https://dequeuniversity.com/rules/axe/4.9/image-alt")
	assert.NotContains(t, page, "region", "rules without a guideline stay off the page")
}

func TestGenerate_DepsFile(t *testing.T) {
	fixtureGraph(t)
	destdir := t.TempDir()

	err := NewGenerator(destdir, []string{message.LangJa}, nil).Generate()
	require.NoError(t, err)

	deps := readOut(t, destdir, "deps.txt")
	assert.Contains(t, deps, "checks/0441.yaml")
	assert.Contains(t, deps, "guidelines/gl-form-labeling.yaml")
	assert.Contains(t, deps, "faq/faq-a.yaml")
	assert.Contains(t, deps, "axe/rules.json")
}

func TestUnderline(t *testing.T) {
	fn := funcMap["underline"].(func(string, string) string)
	assert.Equal(t, "========", fn("=", "form"))
	assert.Equal(t, "--------", fn("-", "ab"), "short titles still get the minimum width")
	assert.Equal(t, "==========", fn("=", "フォーム例"), "runes count, not bytes")
}

func TestIndent(t *testing.T) {
	fn := funcMap["indent"].(func(string, string) string)
	assert.Equal(t, "   a\n\n   b", fn("   ", "a\n\nb\n"), "blank lines stay unprefixed")
}
