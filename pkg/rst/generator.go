// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package rst writes the RST include fragments consumed by the static
// site build. It is a thin adaptor: each entity exposes its template
// data and a fragment template renders it, one file per entity.
package rst

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/logging"
)

// depsFile lists every source file the generated fragments derive from,
// one per line, for the site build's incremental rebuild logic.
const depsFile = "deps.txt"

// Generator renders the fragment tree for one or more languages.
type Generator struct {
	destdir string
	langs   []string
	logger  *logging.Logger
}

func NewGenerator(destdir string, langs []string, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{destdir: destdir, langs: langs, logger: logger}
}

// Generate writes the whole fragment tree, then the dependency list.
func (g *Generator) Generate() error {
	for _, lang := range g.langs {
		if err := g.generateLang(lang); err != nil {
			return err
		}
	}
	return g.writeDeps()
}

func (g *Generator) generateLang(lang string) error {
	root := filepath.Join(g.destdir, lang)
	count := 0

	for _, c := range entity.Categories.ListAll() {
		if err := g.render(filepath.Join(root, "categories", c.ID()+".rst"),
			categoryTemplate, c.TemplateData(lang)); err != nil {
			return err
		}
		count++
	}
	for _, c := range entity.Checks.ListAll() {
		if err := g.render(filepath.Join(root, "checks", c.ID()+".rst"),
			checkTemplate, c.TemplateData(lang)); err != nil {
			return err
		}
		count++
	}
	for _, f := range entity.FAQs.ListAll() {
		if err := g.render(filepath.Join(root, "faq", "articles", f.ID()+".rst"),
			faqTemplate, f.TemplateData(lang)); err != nil {
			return err
		}
		count++
	}
	for _, t := range entity.FAQTags.ListAll() {
		if t.ArticleCount() == 0 {
			continue
		}
		if err := g.render(filepath.Join(root, "faq", "tags", t.ID()+".rst"),
			faqTagTemplate, t.TemplateData(lang)); err != nil {
			return err
		}
		count++
	}
	for _, t := range entity.CheckTools.ListAll() {
		if err := g.render(filepath.Join(root, "tools", t.ID()+".rst"),
			checkToolTemplate, t.TemplateData(lang)); err != nil {
			return err
		}
		count++
	}
	n, err := g.renderInfoRefs(root, lang)
	if err != nil {
		return err
	}
	count += n
	if err := g.renderAxeRules(root, lang); err != nil {
		return err
	}
	count++

	g.logger.Info("fragments generated", "lang", lang, "files", count)
	return nil
}

// renderInfoRefs writes one reverse-index page per internal reference
// that at least one guideline or FAQ names. The spreadsheet's info links
// point at these pages.
func (g *Generator) renderInfoRefs(root, lang string) (int, error) {
	count := 0
	for _, ref := range entity.InfoRefs.ListAll() {
		if !ref.Internal() {
			continue
		}
		if !ref.HasGuidelines() && !ref.HasFAQs() {
			continue
		}
		guidelines := make([]map[string]any, 0)
		for _, gl := range ref.Guidelines() {
			guidelines = append(guidelines, map[string]any{
				"id":       gl.ID(),
				"title":    gl.Title(lang),
				"category": gl.Category().Name(lang),
			})
		}
		faqs := make([]string, 0)
		for _, f := range ref.FAQs() {
			faqs = append(faqs, f.ID())
		}
		data := map[string]any{"ref": ref.RefName()}
		if len(guidelines) > 0 {
			data["guidelines"] = guidelines
		}
		if len(faqs) > 0 {
			data["faqs"] = faqs
		}
		if err := g.render(filepath.Join(root, "info", ref.RefName()+".rst"), infoRefTemplate, data); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// renderAxeRules writes the single mapping page covering every imported
// rule that reaches a curated guideline.
func (g *Generator) renderAxeRules(root, lang string) error {
	rules := make([]map[string]any, 0)
	for _, r := range entity.AxeRules.ListAll() {
		if !r.HasGuideline() {
			continue
		}
		rules = append(rules, r.TemplateData(lang))
	}
	data := map[string]any{
		"version": entity.GetAxeMeta().Version,
		"rules":   rules,
	}
	return g.render(filepath.Join(root, "misc", "axe-rules.rst"), axeRulesTemplate, data)
}

func (g *Generator) render(path string, tmpl *template.Template, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeDeps collects the distinct source paths of every registry, in
// registry order, so the site build can depend on exactly the inputs
// that produced the fragments.
func (g *Generator) writeDeps() error {
	seen := make(map[string]bool)
	var paths []string
	add := func(ps []string) {
		for _, p := range ps {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	add(entity.Guidelines.ListAllSrcPaths())
	add(entity.Checks.ListAllSrcPaths())
	add(entity.FAQs.ListAllSrcPaths())
	add(entity.AxeRules.ListAllSrcPaths())
	sort.Strings(paths)

	path := filepath.Join(g.destdir, depsFile)
	if err := os.MkdirAll(g.destdir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(paths, "\n")+"\n"), 0o644)
}
