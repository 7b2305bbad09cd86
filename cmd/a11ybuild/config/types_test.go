// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_NormalizesVersionCell(t *testing.T) {
	c := BuildConfig{VersionInfoCell: " a27 "}
	require.NoError(t, c.Validate())
	assert.Equal(t, "A27", c.VersionInfoCell)
}

func TestValidate_RejectsMalformedVersionCell(t *testing.T) {
	for _, ref := range []string{"27", "A", "1A", "A-27"} {
		c := BuildConfig{VersionInfoCell: ref}
		assert.Error(t, c.Validate(), "ref %q", ref)
	}
}

func TestValidate_EmptyVersionCellAllowed(t *testing.T) {
	c := BuildConfig{}
	assert.NoError(t, c.Validate())
}

func TestSpreadsheetID(t *testing.T) {
	c := BuildConfig{
		DevelopmentSpreadsheetID: "dev-id",
		ProductionSpreadsheetID:  "prod-id",
	}

	id, err := c.SpreadsheetID(false)
	require.NoError(t, err)
	assert.Equal(t, "dev-id", id)

	id, err = c.SpreadsheetID(true)
	require.NoError(t, err)
	assert.Equal(t, "prod-id", id)
}

func TestSpreadsheetID_MissingForEnvironment(t *testing.T) {
	c := BuildConfig{DevelopmentSpreadsheetID: "dev-id"}

	_, err := c.SpreadsheetID(true)
	var missing *MissingConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "production_spreadsheet_id", missing.Key)

	_, err = (&BuildConfig{}).SpreadsheetID(false)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "development_spreadsheet_id", missing.Key)
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "INFO", c.LogLevel)
	assert.Equal(t, "A27", c.VersionInfoCell)
	assert.NoError(t, c.Validate())
}
