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

import "fmt"

// DuplicateIDError reports two records with the same id for one type.
type DuplicateIDError struct {
	TypeName string
	ID       string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %q", e.TypeName, e.ID)
}

// DuplicateSortKeyError reports two records with the same sort key for
// one type.
type DuplicateSortKeyError struct {
	TypeName string
	ID       string
	SortKey  int
}

func (e *DuplicateSortKeyError) Error() string {
	return fmt.Sprintf("duplicate %s sortKey %d (id %q)", e.TypeName, e.SortKey, e.ID)
}

// UnknownReferenceError reports a record naming an entity id that was
// never registered.
type UnknownReferenceError struct {
	TypeName string
	ID       string
	Referrer string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference: %s refers to unknown %s %q", e.Referrer, e.TypeName, e.ID)
}
