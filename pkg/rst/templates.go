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
	"strings"
	"text/template"
)

// funcMap supplies the helpers the fragment templates need: RST section
// underlines and indented blocks for multi-line field values.
var funcMap = template.FuncMap{
	"underline": func(ch, s string) string {
		// RST wants the underline at least as wide as the title. Runes
		// are counted double-width-ignorant; over-length is harmless.
		n := len([]rune(s))
		if n < 4 {
			n = 4
		}
		return strings.Repeat(ch, n*2)
	},
	"indent": func(prefix, s string) string {
		lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = prefix + line
			}
		}
		return strings.Join(lines, "\n")
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcMap).Parse(text))
}

// Fragment templates. Each receives the entity's template data map and
// renders one include file of the published guideline documents.

var categoryTemplate = mustParse("category", `.. _category-{{.id}}:

{{.name}}
{{underline "=" .name}}

{{range .guidelines}}.. _{{.id}}:

{{.title}}
{{underline "-" .title}}

{{.guideline}}

対象プラットフォーム
   {{.platform}}
意図
{{indent "   " .intent}}
{{if .scs}}
対応するWCAG達成基準
{{range .scs}}   *  達成基準 {{.sc}} (レベル {{.level}}): ` + "`" + `{{.sc_title}} <{{.sc_url}}>` + "`" + `__
{{end}}{{end}}
チェック内容
{{range .checks}}   *  :ref:` + "`check-{{.id}}`" + ` {{.check}}
{{end}}
{{end}}`)

var checkTemplate = mustParse("check", `.. _check-{{.id}}:

チェックID：{{.id}}
{{underline "=" .id}}

{{.check}}

対象
   {{.target}}（{{.platform}}）
重篤度
   {{.severity}}
{{if .conditions}}
チェック手順
{{range .conditions}}{{if .summary}}{{indent "   " .summary}}
{{end}}{{range .procedures}}   *  ({{.id}}) {{.procedure}}
{{end}}{{end}}{{end}}{{if .implementations}}
実装方法の例
{{range .implementations}}   {{.title}}
{{range $platform, $method := .methods}}      *  {{$platform}}: {{$method}}
{{end}}{{end}}{{end}}`)

var faqTemplate = mustParse("faq", `.. _faq-{{.id}}:

{{.title}}
{{underline "=" .title}}

最終更新：{{.updated}}

問題
{{indent "   " .problem}}

解決方法
{{indent "   " .solution}}

解説
{{indent "   " .explanation}}
{{if .tags}}
タグ
{{range .tags}}   *  :ref:` + "`faq-tag-{{.}}`" + `
{{end}}{{end}}{{if .guidelines}}
関連ガイドライン
{{range .guidelines}}   *  :ref:` + "`{{.id}}`" + ` {{.title}}（{{.category}}）
{{end}}{{end}}`)

var faqTagTemplate = mustParse("faqtag", `.. _faq-tag-{{.tag}}:

{{.label}}
{{underline "=" .label}}

{{range .articles}}*  :ref:` + "`faq-{{.}}`" + `
{{end}}`)

var axeRulesTemplate = mustParse("axerules", `.. _axe-rules:

axe-core ルール対応表
{{underline "=" "axe-core rules"}}

axe-core バージョン：{{.version}}

{{range .rules}}{{.id}}
{{underline "-" .id}}

{{.help}}

{{.description}}
{{if .deque_url}}
`+"`Deque University の解説 <{{.deque_url}}>`__"+`
{{end}}{{if .guidelines}}
関連ガイドライン
{{range .guidelines}}   *  :ref:` + "`{{.id}}`" + ` {{.title}}（{{.category}}）
{{end}}{{end}}
{{end}}`)

var infoRefTemplate = mustParse("inforef", `.. _info-{{.ref}}:

{{.ref}}
{{underline "=" .ref}}
{{if .guidelines}}
関連ガイドライン
{{range .guidelines}}   *  :ref:` + "`{{.id}}`" + ` {{.title}}（{{.category}}）
{{end}}{{end}}{{if .faqs}}
関連FAQ
{{range .faqs}}   *  :ref:` + "`faq-{{.}}`" + `
{{end}}{{end}}`)

var checkToolTemplate = mustParse("checktool", `.. _tool-{{.id}}:

{{.name}}
{{underline "=" .name}}

{{range .examples}}*  :ref:` + "`check-{{.check}}`" + ` 手順 {{.procedure}}
{{end}}`)
