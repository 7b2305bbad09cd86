// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package entity defines the accessibility-corpus domain model: categories,
// guidelines, checks, FAQs, WCAG success criteria, info references, check
// tools and axe-core rules, together with the per-type registries that
// intern them.
//
// Entities are created once during loading, interned in their registry, and
// never mutated afterwards (the deferred FAQ resolution pass excepted).
// Cross-references between entities are not stored on the entities
// themselves; they live in pkg/relationship.
package entity

import (
	"github.com/AleutianAI/a11ybuild/pkg/relationship"
)

// Known vocabulary values shared by several entity types.
const (
	TargetDesign  = "design"
	TargetCode    = "code"
	TargetProduct = "product"

	PlatformWeb     = "web"
	PlatformMobile  = "mobile"
	PlatformIos     = "ios"
	PlatformAndroid = "android"
	PlatformGeneral = "general"
)

// Platforms is the known platform vocabulary for guidelines and checks.
var Platforms = []string{PlatformWeb, PlatformMobile, PlatformIos, PlatformAndroid, PlatformGeneral}

// Severities are the allowed check severities, mildest first.
var Severities = []string{"minor", "normal", "major", "critical"}

// Entity is the common contract every interned domain object satisfies.
type Entity interface {
	relationship.Node

	// SrcPath is the source file the entity was loaded from, used for
	// build-dependency tracking. Empty for synthesized entities.
	SrcPath() string

	// TemplateData returns the language-specific, JSON-serializable view
	// consumed by the document templates. It never contains references
	// back to entity objects.
	TemplateData(lang string) map[string]any
}

// base carries the identity fields shared by all entity types.
type base struct {
	id         string
	sortKey    int
	hasSortKey bool
	typeName   string
	srcPath    string
}

func newBase(typeName, id, srcPath string) base {
	return base{id: id, typeName: typeName, srcPath: srcPath}
}

func newSortedBase(typeName, id string, sortKey int, srcPath string) base {
	return base{id: id, typeName: typeName, sortKey: sortKey, hasSortKey: true, srcPath: srcPath}
}

func (b *base) ID() string       { return b.id }
func (b *base) TypeName() string { return b.typeName }
func (b *base) SortKey() int     { return b.sortKey }
func (b *base) HasSortKey() bool { return b.hasSortKey }
func (b *base) SrcPath() string  { return b.srcPath }

// rel is shorthand for the process-wide relationship manager.
func rel() *relationship.Manager {
	return relationship.Default()
}
