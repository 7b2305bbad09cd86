// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package message

import "fmt"

// Catalog is a message catalog keyed by (category, id, lang).
//
// Lookups fall back to Japanese when the requested language has no entry,
// and to the raw id when no entry exists at all, so a missing message never
// produces an empty cell or an error in generated output.
type Catalog struct {
	entries map[string]Text
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Text)}
}

func catalogKey(category, id string) string {
	return category + "/" + id
}

// Set registers the localized text for (category, id), replacing any
// previous entry.
func (c *Catalog) Set(category, id string, text Text) {
	c.entries[catalogKey(category, id)] = text
}

// Get returns the message for (category, id) in lang, applying the
// lang -> ja -> raw-id fallback chain.
func (c *Catalog) Get(category, id, lang string) string {
	if t, ok := c.entries[catalogKey(category, id)]; ok {
		if v := t.In(lang); v != "" {
			return v
		}
	}
	return id
}

// Getf formats the message for (category, id) with args. The stored text is
// a fmt format string.
func (c *Catalog) Getf(category, id, lang string, args ...any) string {
	return fmt.Sprintf(c.Get(category, id, lang), args...)
}

// Default is the built-in catalog covering sheet names, result tokens,
// column headers, and the statement templates. Callers may overwrite
// individual entries before generation starts.
var Default = defaultCatalog()

func defaultCatalog() *Catalog {
	c := NewCatalog()

	// Checklist target sheet display names.
	c.Set("sheet", "designWeb", NewText("デザイン：Web", "Design: Web"))
	c.Set("sheet", "designMobile", NewText("デザイン：モバイルアプリ", "Design: Mobile App"))
	c.Set("sheet", "codeWeb", NewText("コード：Web", "Code: Web"))
	c.Set("sheet", "codeMobile", NewText("コード：モバイルアプリ", "Code: Mobile App"))
	c.Set("sheet", "productWeb", NewText("プロダクト：Web", "Product: Web"))
	c.Set("sheet", "productIos", NewText("プロダクト：iOS", "Product: iOS"))
	c.Set("sheet", "productAndroid", NewText("プロダクト：Android", "Product: Android"))

	// Result tokens. "user" tokens appear in the result dropdown, "final"
	// tokens in the computed columns.
	c.Set("result", "pass", NewText("該当", "Applicable"))
	c.Set("result", "fail", NewText("不適用", "Not applicable"))
	c.Set("result", "unchecked", NewText("未チェック", "Unchecked"))
	c.Set("result", "finalPass", NewText("OK", "OK"))
	c.Set("result", "finalFail", NewText("NG", "NG"))

	// Column headers.
	c.Set("header", "checkId", NewText("ID", "ID"))
	c.Set("header", "subcheckId", NewText("枝番", "Sub-ID"))
	c.Set("header", "calculatedResult", NewText("判定結果", "Calculated Result"))
	c.Set("header", "finalResult", NewText("最終結果", "Final Result"))
	c.Set("header", "result", NewText("チェック結果", "Result"))
	c.Set("header", "note", NewText("備考", "Note"))
	c.Set("header", "check", NewText("チェック内容", "Check"))
	c.Set("header", "severity", NewText("重篤度", "Severity"))
	c.Set("header", "webConditionStatement", NewText("チェック手順：Web", "Procedure: Web"))
	c.Set("header", "iosConditionStatement", NewText("チェック手順：iOS", "Procedure: iOS"))
	c.Set("header", "androidConditionStatement", NewText("チェック手順：Android", "Procedure: Android"))
	c.Set("header", "info", NewText("参考情報", "Supplementary Info"))
	c.Set("header", "guidelines", NewText("関連ガイドライン", "Related Guidelines"))
	c.Set("header", "tools", NewText("チェックツール", "Check Tools"))

	// Statement summary templates (fmt format strings).
	c.Set("template", "statementSummary", NewText("%sことを確認する。", "Verify that %s."))

	// Version-info cell template: version, date.
	c.Set("template", "versionInfo", NewText(
		"チェックリスト・バージョン：%s (%s)",
		"チェックリスト・バージョン：%s (%s)"))

	// Severity display values.
	c.Set("severity", "minor", NewText("[MINOR]", "[MINOR]"))
	c.Set("severity", "normal", NewText("[NORMAL]", "[NORMAL]"))
	c.Set("severity", "major", NewText("[MAJOR]", "[MAJOR]"))
	c.Set("severity", "critical", NewText("[CRITICAL]", "[CRITICAL]"))

	// Check target display names, used in documents.
	c.Set("target", "design", NewText("デザイン", "Design"))
	c.Set("target", "code", NewText("コード", "Code"))
	c.Set("target", "product", NewText("プロダクト", "Product"))

	// Conjunctions used when rendering and/or condition trees as prose.
	c.Set("conjunction", "and", NewText("、かつ、", ", and "))
	c.Set("conjunction", "or", NewText("、または、", ", or "))

	// List separator for joined display values.
	c.Set("separator", "list", NewText("、", ", "))

	// Platform display names.
	c.Set("platform", "web", NewText("Web", "Web"))
	c.Set("platform", "mobile", NewText("モバイル", "Mobile"))
	c.Set("platform", "ios", NewText("iOS", "iOS"))
	c.Set("platform", "android", NewText("Android", "Android"))
	c.Set("platform", "general", NewText("全般", "General"))

	return c
}
