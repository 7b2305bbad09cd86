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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/a11ybuild/pkg/message"
)

func TestRegister_DuplicateID(t *testing.T) {
	ResetAll()

	_, err := NewCategory(CategoryRecord{ID: "form", Names: message.NewText("フォーム", "Forms")})
	require.NoError(t, err)

	_, err = NewCategory(CategoryRecord{ID: "form", Names: message.NewText("二重", "Again")})
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "category", dup.TypeName)
	assert.Equal(t, "form", dup.ID)
}

func TestRegister_DuplicateSortKey(t *testing.T) {
	ResetAll()

	_, err := NewCheck(&CheckRecord{
		ID: "0001", SortKey: 100,
		Check:    message.NewText("あ", "a"),
		Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb},
	})
	require.NoError(t, err)

	_, err = NewCheck(&CheckRecord{
		ID: "0002", SortKey: 100,
		Check:    message.NewText("い", "b"),
		Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb},
	})
	var dup *DuplicateSortKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 100, dup.SortKey)
}

func TestListAll_OrderedBySortKey(t *testing.T) {
	ResetAll()

	for _, rec := range []*CheckRecord{
		{ID: "0003", SortKey: 300, Check: message.NewText("う", "c"), Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb}},
		{ID: "0001", SortKey: 100, Check: message.NewText("あ", "a"), Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb}},
		{ID: "0002", SortKey: 200, Check: message.NewText("い", "b"), Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb}},
	} {
		_, err := NewCheck(rec)
		require.NoError(t, err)
	}

	var ids []string
	for _, c := range Checks.ListAll() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"0001", "0002", "0003"}, ids)
}

func TestListAllSrcPaths_Deduplicates(t *testing.T) {
	ResetAll()

	recs := []*CheckRecord{
		{ID: "0001", SortKey: 1, Check: message.NewText("あ", "a"), Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb}, SrcPath: "checks/a.yaml"},
		{ID: "0002", SortKey: 2, Check: message.NewText("い", "b"), Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb}, SrcPath: "checks/a.yaml"},
		{ID: "0003", SortKey: 3, Check: message.NewText("う", "c"), Severity: "normal", Target: TargetDesign, Platform: []string{PlatformWeb}, SrcPath: "checks/b.yaml"},
	}
	for _, rec := range recs {
		_, err := NewCheck(rec)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"checks/a.yaml", "checks/b.yaml"}, Checks.ListAllSrcPaths())
}

func TestNewInfoRef_Idempotent(t *testing.T) {
	ResetAll()

	a := NewInfoRef("exp-form-labeling")
	b := NewInfoRef("exp-form-labeling")

	assert.Same(t, a, b)
	assert.Equal(t, 1, InfoRefs.Len())
}
