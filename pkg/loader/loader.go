// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package loader reads the source tree into the entity registries.
//
// Loading happens in dependency order: catalogs first (categories,
// tools, external references, WCAG criteria), then checks, guidelines,
// FAQ articles, and finally the axe rule import. Deferred FAQ cross
// references are resolved as the last step, so any dangling id in the
// tree surfaces before generation starts.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/logging"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// Source tree layout, relative to basedir.
const (
	categoriesFile = "categories.yaml"
	checkToolsFile = "checktools.yaml"
	guidelinesDir  = "guidelines"
	checksDir      = "checks"
	faqDir         = "faq"
	wcagFile       = "wcag-sc.json"
	infoFile       = "info.json"
	axeRulesFile   = "axe/rules.json"
	axeJaFile      = "axe/messages-ja.json"
	versionFile    = "version.yaml"
)

// Corpus is what a successful load hands downstream: the raw check
// records the checklist processor consumes, plus the version stamp.
// Everything else lives in the entity registries.
type Corpus struct {
	CheckRecords map[string]*entity.CheckRecord
	Version      string
	VersionDate  string
}

// Loader reads one source tree.
type Loader struct {
	basedir  string
	validate *validator.Validate
	logger   *logging.Logger
}

// New creates a loader rooted at basedir.
func New(basedir string, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		basedir:  basedir,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Load reads the whole tree into the registries and returns the corpus.
// The registries must be fresh; callers run entity.ResetAll between
// independent builds.
func (l *Loader) Load() (*Corpus, error) {
	corpus := &Corpus{CheckRecords: make(map[string]*entity.CheckRecord)}

	if err := l.loadVersion(corpus); err != nil {
		return nil, err
	}
	if err := l.loadCategories(); err != nil {
		return nil, err
	}
	if err := l.loadCheckTools(); err != nil {
		return nil, err
	}
	if err := l.loadInfoRefs(); err != nil {
		return nil, err
	}
	if err := l.loadWcagSCs(); err != nil {
		return nil, err
	}
	if err := l.loadChecks(corpus); err != nil {
		return nil, err
	}
	if err := l.loadGuidelines(); err != nil {
		return nil, err
	}
	if err := l.loadFAQs(); err != nil {
		return nil, err
	}
	if err := l.loadAxeRules(); err != nil {
		return nil, err
	}
	if err := entity.ResolveFAQs(); err != nil {
		return nil, err
	}

	l.logger.Info("source tree loaded",
		"checks", entity.Checks.Len(),
		"guidelines", entity.Guidelines.Len(),
		"faqs", entity.FAQs.Len(),
		"axeRules", entity.AxeRules.Len())
	return corpus, nil
}

func (l *Loader) path(rel string) string {
	return filepath.Join(l.basedir, rel)
}

type versionDoc struct {
	Version string `yaml:"version" validate:"required"`
	Date    string `yaml:"date" validate:"required"`
}

func (l *Loader) loadVersion(corpus *Corpus) error {
	path := l.path(versionFile)
	var doc versionDoc
	if err := decodeYAMLFile(path, &doc); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("version file missing, version cell will not be written", "path", path)
			return nil
		}
		return err
	}
	if err := l.check(path, &doc); err != nil {
		return err
	}
	corpus.Version = doc.Version
	corpus.VersionDate = doc.Date
	return nil
}

func (l *Loader) loadCategories() error {
	path := l.path(categoriesFile)
	var recs []entity.CategoryRecord
	if err := decodeYAMLFile(path, &recs); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("category catalog missing", "path", path)
			return nil
		}
		return err
	}
	for _, rec := range recs {
		if err := l.check(path, &rec); err != nil {
			return err
		}
		if _, err := entity.NewCategory(rec); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadCheckTools() error {
	path := l.path(checkToolsFile)
	var recs []entity.CheckToolRecord
	if err := decodeYAMLFile(path, &recs); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("tool catalog missing", "path", path)
			return nil
		}
		return err
	}
	for _, rec := range recs {
		if err := l.check(path, &rec); err != nil {
			return err
		}
		if _, err := entity.NewCheckTool(rec); err != nil {
			return err
		}
	}
	return nil
}

// loadInfoRefs interns the static external-reference catalog. Internal
// anchor refs are created on demand by the entities that name them.
func (l *Loader) loadInfoRefs() error {
	path := l.path(infoFile)
	recs := make(map[string]entity.InfoRefRecord)
	if err := decodeJSONFile(path, &recs); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("external reference catalog missing", "path", path)
			return nil
		}
		return err
	}
	for _, ref := range sortedKeys(recs) {
		rec := recs[ref]
		entity.NewInfoRef(ref).SetExternal(rec.Text, rec.URL)
	}
	return nil
}

func (l *Loader) loadWcagSCs() error {
	path := l.path(wcagFile)
	recs := make(map[string]entity.WcagScRecord)
	if err := decodeJSONFile(path, &recs); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("WCAG catalog missing", "path", path)
			return nil
		}
		return err
	}
	for _, scnum := range sortedKeys(recs) {
		rec := recs[scnum]
		if err := l.check(path, &rec); err != nil {
			return err
		}
		if _, err := entity.NewWcagSc(scnum, rec); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadChecks(corpus *Corpus) error {
	return l.walkYAML(checksDir, func(path string) error {
		rec := &entity.CheckRecord{}
		if err := decodeYAMLFile(path, rec); err != nil {
			return err
		}
		if err := l.check(path, rec); err != nil {
			return err
		}
		rec.SrcPath = path
		l.resolveToolLinks(rec)
		c, err := entity.NewCheck(rec)
		if err != nil {
			return err
		}
		l.recordToolExamples(rec, c)
		corpus.CheckRecords[rec.ID] = rec
		return nil
	})
}

// resolveToolLinks attaches display text and a URL to each procedure's
// tool reference from the tool catalog. Unknown tool ids degrade to a
// plain-text tool name.
func (l *Loader) resolveToolLinks(rec *entity.CheckRecord) {
	for _, cond := range rec.Conditions {
		for _, p := range cond.Procedures() {
			if p.Tool == "" || p.ToolLink != nil {
				continue
			}
			tool, ok := entity.CheckTools.GetByID(p.Tool)
			if !ok {
				l.logger.Warn("procedure references unknown tool",
					"check", rec.ID, "procedure", p.ID, "tool", p.Tool)
				continue
			}
			text := make(message.Text, len(message.Languages))
			for _, lang := range message.Languages {
				text[lang] = tool.Name(lang)
			}
			link := &entity.ToolLink{ToolID: tool.ID(), Text: text}
			if tool.BaseURL() != "" {
				link.URL = message.NewText(tool.BaseURL(), tool.BaseURL())
			}
			p.ToolLink = link
		}
	}
}

func (l *Loader) recordToolExamples(rec *entity.CheckRecord, c *entity.Check) {
	seen := make(map[string]bool)
	for _, cond := range rec.Conditions {
		for _, p := range cond.Procedures() {
			if p.Tool == "" || seen[p.Tool] {
				continue
			}
			seen[p.Tool] = true
			if tool, ok := entity.CheckTools.GetByID(p.Tool); ok {
				tool.AddExample(c)
			}
		}
	}
}

func (l *Loader) loadGuidelines() error {
	return l.walkYAML(guidelinesDir, func(path string) error {
		var rec entity.GuidelineRecord
		if err := decodeYAMLFile(path, &rec); err != nil {
			return err
		}
		if err := l.check(path, &rec); err != nil {
			return err
		}
		rec.SrcPath = path
		_, err := entity.NewGuideline(rec)
		return err
	})
}

func (l *Loader) loadFAQs() error {
	return l.walkYAML(faqDir, func(path string) error {
		var rec entity.FAQRecord
		if err := decodeYAMLFile(path, &rec); err != nil {
			return err
		}
		if err := l.check(path, &rec); err != nil {
			return err
		}
		rec.SrcPath = path
		_, err := entity.NewFAQ(rec)
		return err
	})
}

// axeCatalog is the shape of the imported axe-core rule snapshot.
type axeCatalog struct {
	Version   string                 `json:"version" validate:"required"`
	DequeURL  string                 `json:"dequeUrl"`
	Timestamp string                 `json:"timestamp"`
	Rules     []entity.AxeRuleRecord `json:"rules" validate:"dive"`
}

// axeJaMessage is one entry of the Japanese translation catalog.
type axeJaMessage struct {
	Help        string `json:"help"`
	Description string `json:"description"`
}

func (l *Loader) loadAxeRules() error {
	path := l.path(axeRulesFile)
	var catalog axeCatalog
	if err := decodeJSONFile(path, &catalog); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("axe catalog missing, skipping axe rule import", "path", path)
			return nil
		}
		return err
	}
	if err := l.check(path, &catalog); err != nil {
		return err
	}

	translations := make(map[string]axeJaMessage)
	jaPath := l.path(axeJaFile)
	if err := decodeJSONFile(jaPath, &translations); err != nil && !os.IsNotExist(err) {
		return err
	}

	meta := entity.AxeMeta{Version: catalog.Version, DequeURL: catalog.DequeURL}
	if catalog.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, catalog.Timestamp)
		if err != nil {
			return &DecodeError{Path: path, Err: fmt.Errorf("bad timestamp %q: %w", catalog.Timestamp, err)}
		}
		meta.Timestamp = ts
	}
	entity.SetAxeMeta(meta)

	for _, rec := range catalog.Rules {
		if ja, ok := translations[rec.ID]; ok {
			if ja.Help != "" {
				rec.Help = rec.Help.Merge(message.Text{message.LangJa: ja.Help})
			}
			if ja.Description != "" {
				rec.Description = rec.Description.Merge(message.Text{message.LangJa: ja.Description})
			}
		}
		// Untranslated rules show the English text in Japanese output too.
		rec.Help = fillJa(rec.Help)
		rec.Description = fillJa(rec.Description)
		rec.SrcPath = path
		if _, err := entity.NewAxeRule(rec); err != nil {
			return err
		}
	}
	return nil
}

// walkYAML applies fn to every yaml document under dir, in path order
// for deterministic registration.
func (l *Loader) walkYAML(dir string, fn func(path string) error) error {
	root := l.path(dir)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		l.logger.Warn("source directory missing", "path", root)
		return nil
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}

// check runs structural validation, wrapping failures with the source
// path.
func (l *Loader) check(path string, v any) error {
	if err := l.validate.Struct(v); err != nil {
		return &SchemaValidationError{Path: path, Err: err}
	}
	return nil
}

// fillJa copies the English text into the Japanese slot when no
// translation exists, keeping the registry's ja-first fallback useful.
func fillJa(t message.Text) message.Text {
	if t[message.LangJa] != "" {
		return t
	}
	out := t.Merge(nil)
	out[message.LangJa] = t[message.LangEn]
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
