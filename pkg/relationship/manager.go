// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package relationship maintains the process-wide bidirectional index of
// entity associations.
//
// Entities hold only primary data and their id; every cross-reference
// (guideline to check, check to FAQ, FAQ to tag, and so on) is stored here
// as a pair of directed edges keyed by (node, related-type-name). Storing
// the edges outside the entities breaks the reference cycles between
// guidelines, checks, FAQs and info references, and keeps the entities
// trivially serializable.
//
// The manager is a process-wide singleton whose lifetime spans a single
// build invocation. Loading and rendering are two phases of one run, so a
// singleton keeps the wiring simple; tests call Reset between cases.
package relationship

import (
	"fmt"
	"sort"
)

// Node is the minimal view of an entity the manager needs. All entity
// types in pkg/entity satisfy it.
type Node interface {
	// ID is the node identifier, unique within its type.
	ID() string
	// TypeName tags the entity type ("guideline", "check", "faq", ...).
	TypeName() string
	// SortKey orders nodes within a type; 0 when absent.
	SortKey() int
	// HasSortKey reports whether SortKey carries a real value.
	HasSortKey() bool
}

// UnresolvedReferenceError reports a deferred link whose destination was
// never registered.
type UnresolvedReferenceError struct {
	SrcID string
	DstID string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference: faq %q links to unknown faq %q", e.SrcID, e.DstID)
}

type pendingFAQ struct {
	srcID string
	dstID string
}

// Manager is the bidirectional multigraph. Buckets preserve insertion
// order and repeated associations are no-ops.
type Manager struct {
	// edges: node key -> related type name -> ordered related nodes.
	edges map[string]map[string][]Node
	// seen: node key -> related node key -> present, for idempotence.
	seen map[string]map[string]bool
	// pending holds FAQ-to-FAQ forward references until ResolveFAQs.
	pending []pendingFAQ
}

func nodeKey(n Node) string {
	return n.TypeName() + ":" + n.ID()
}

// NewManager creates an empty manager. Most callers use Default instead.
func NewManager() *Manager {
	return &Manager{
		edges: make(map[string]map[string][]Node),
		seen:  make(map[string]map[string]bool),
	}
}

var defaultManager = NewManager()

// Default returns the process-wide manager.
func Default() *Manager {
	return defaultManager
}

// Associate records the edge a -> b under relation type_of(b) and the
// reverse edge b -> a under type_of(a). Repeating an association is a
// no-op; insertion order within a bucket is preserved.
func (m *Manager) Associate(a, b Node) {
	m.addEdge(a, b)
	m.addEdge(b, a)
}

func (m *Manager) addEdge(from, to Node) {
	fk, tk := nodeKey(from), nodeKey(to)
	if m.seen[fk][tk] {
		return
	}
	if m.seen[fk] == nil {
		m.seen[fk] = make(map[string]bool)
	}
	m.seen[fk][tk] = true
	if m.edges[fk] == nil {
		m.edges[fk] = make(map[string][]Node)
	}
	rel := to.TypeName()
	m.edges[fk][rel] = append(m.edges[fk][rel], to)
}

// GetRelated returns the nodes related to a under relation, in insertion
// order. Returns an empty slice when none exist.
func (m *Manager) GetRelated(a Node, relation string) []Node {
	bucket := m.edges[nodeKey(a)][relation]
	out := make([]Node, len(bucket))
	copy(out, bucket)
	return out
}

// KeyFunc derives a sortable key from a node.
type KeyFunc func(Node) string

// GetSortedRelated returns the related nodes ordered by key. A nil key
// sorts by sort_key when the node carries one, else by id.
func (m *Manager) GetSortedRelated(a Node, relation string, key KeyFunc) []Node {
	out := m.GetRelated(a, relation)
	if key != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return key(out[i]) < key(out[j])
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		x, y := out[i], out[j]
		if x.HasSortKey() && y.HasSortKey() {
			return x.SortKey() < y.SortKey()
		}
		if x.HasSortKey() != y.HasSortKey() {
			// Keyed nodes sort ahead of unkeyed ones.
			return x.HasSortKey()
		}
		return x.ID() < y.ID()
	})
	return out
}

// AddUnresolvedFAQ defers a FAQ-to-FAQ link until all FAQs are loaded.
func (m *Manager) AddUnresolvedFAQ(srcID, dstID string) {
	m.pending = append(m.pending, pendingFAQ{srcID: srcID, dstID: dstID})
}

// ResolveFAQs binds every deferred FAQ link. lookup maps a FAQ id to its
// node. Must be called exactly once, after all FAQs are registered; an
// unknown destination id fails with UnresolvedReferenceError.
func (m *Manager) ResolveFAQs(lookup func(id string) (Node, bool)) error {
	for _, p := range m.pending {
		src, ok := lookup(p.srcID)
		if !ok {
			return &UnresolvedReferenceError{SrcID: p.srcID, DstID: p.dstID}
		}
		dst, ok := lookup(p.dstID)
		if !ok {
			return &UnresolvedReferenceError{SrcID: p.srcID, DstID: p.dstID}
		}
		m.Associate(src, dst)
	}
	m.pending = nil
	return nil
}

// Reset clears all state. Tests call this between cases.
func (m *Manager) Reset() {
	m.edges = make(map[string]map[string][]Node)
	m.seen = make(map[string]map[string]bool)
	m.pending = nil
}
