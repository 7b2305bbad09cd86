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
	"sort"

	"github.com/AleutianAI/a11ybuild/pkg/relationship"
)

// Registry interns one entity type, keyed by id. Both the id domain and
// the sort-key domain are unique; registering a collision fails.
type Registry[T Entity] struct {
	typeName  string
	byID      map[string]T
	bySortKey map[int]string
}

func newRegistry[T Entity](typeName string) *Registry[T] {
	return &Registry[T]{
		typeName:  typeName,
		byID:      make(map[string]T),
		bySortKey: make(map[int]string),
	}
}

// Register interns e. Fails with DuplicateIDError or
// DuplicateSortKeyError on collision.
func (r *Registry[T]) Register(e T) error {
	if _, exists := r.byID[e.ID()]; exists {
		return &DuplicateIDError{TypeName: r.typeName, ID: e.ID()}
	}
	if e.HasSortKey() {
		if _, exists := r.bySortKey[e.SortKey()]; exists {
			return &DuplicateSortKeyError{TypeName: r.typeName, ID: e.ID(), SortKey: e.SortKey()}
		}
		r.bySortKey[e.SortKey()] = e.ID()
	}
	r.byID[e.ID()] = e
	return nil
}

// GetByID returns the interned instance for id, or false when absent.
func (r *Registry[T]) GetByID(id string) (T, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Len returns the number of interned instances.
func (r *Registry[T]) Len() int {
	return len(r.byID)
}

// ListAll returns every instance ordered by sort key when present, else
// by id.
func (r *Registry[T]) ListAll() []T {
	out := make([]T, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		x, y := out[i], out[j]
		if x.HasSortKey() && y.HasSortKey() {
			return x.SortKey() < y.SortKey()
		}
		if x.HasSortKey() != y.HasSortKey() {
			return x.HasSortKey()
		}
		return x.ID() < y.ID()
	})
	return out
}

// ListAllSrcPaths returns the distinct source paths of all instances, in
// ListAll order. Used for build-dependency output.
func (r *Registry[T]) ListAllSrcPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.ListAll() {
		p := e.SrcPath()
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Global registries. Loading and rendering are two phases of one build
// invocation, so process-wide registries keep the cross-reference wiring
// simple; ResetAll gives tests a clean slate.
var (
	Categories *Registry[*Category]
	Guidelines *Registry[*Guideline]
	Checks     *Registry[*Check]
	CheckTools *Registry[*CheckTool]
	FAQs       *Registry[*FAQ]
	FAQTags    *Registry[*FAQTag]
	WcagSCs    *Registry[*WcagSc]
	InfoRefs   *Registry[*InfoRef]
	AxeRules   *Registry[*AxeRule]
)

func init() {
	ResetAll()
}

// ResetAll clears every registry and the relationship manager. Must be
// called between independent builds; tests call it between cases.
func ResetAll() {
	Categories = newRegistry[*Category]("category")
	Guidelines = newRegistry[*Guideline]("guideline")
	Checks = newRegistry[*Check]("check")
	CheckTools = newRegistry[*CheckTool]("check_tool")
	FAQs = newRegistry[*FAQ]("faq")
	FAQTags = newRegistry[*FAQTag]("faq_tag")
	WcagSCs = newRegistry[*WcagSc]("wcag_sc")
	InfoRefs = newRegistry[*InfoRef]("info_ref")
	AxeRules = newRegistry[*AxeRule]("axe_rule")
	relationship.Default().Reset()
}

// faqLookup adapts the FAQ registry for relationship.ResolveFAQs.
func faqLookup(id string) (relationship.Node, bool) {
	f, ok := FAQs.GetByID(id)
	if !ok {
		return nil, false
	}
	return f, true
}

// ResolveFAQs binds the deferred FAQ-to-FAQ links recorded during
// loading. Call exactly once, after every FAQ is registered.
func ResolveFAQs() error {
	return rel().ResolveFAQs(faqLookup)
}
