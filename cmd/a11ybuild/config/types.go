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
	"fmt"
	"regexp"
	"strings"
)

// BuildConfig holds the tool configuration.
type BuildConfig struct {
	// OAuth client secrets and the cached authorized-user token.
	CredentialsPath string `yaml:"credentials_path"`
	TokenPath       string `yaml:"token_path"`

	// Target workbooks. The production id is only used with --prod.
	DevelopmentSpreadsheetID string `yaml:"development_spreadsheet_id"`
	ProductionSpreadsheetID  string `yaml:"production_spreadsheet_id"`

	// SheetEditorEmail is added as an editor on protected ranges.
	SheetEditorEmail string `yaml:"sheet_editor_email"`

	// LogLevel: DEBUG, INFO, WARNING, ERROR or CRITICAL.
	LogLevel string `yaml:"log_level"`

	// Basedir is the source-tree root; the CLI flag overrides it.
	Basedir string `yaml:"basedir"`

	// BaseURL prefixes rich-text links into the published site.
	BaseURL string `yaml:"base_url"`

	// VersionInfoCell is the Excel-style reference of the version cell.
	VersionInfoCell string `yaml:"version_info_cell"`
}

// MissingConfigError reports a required configuration value that is
// absent for the chosen environment.
type MissingConfigError struct {
	Key string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

var versionCellPattern = regexp.MustCompile(`^[A-Z]+\d+$`)

// Validate normalizes and checks the loaded values. Lowercase cell
// references are accepted and uppercased.
func (c *BuildConfig) Validate() error {
	if c.VersionInfoCell != "" {
		normalized := strings.ToUpper(strings.TrimSpace(c.VersionInfoCell))
		if !versionCellPattern.MatchString(normalized) {
			return fmt.Errorf("version_info_cell %q is not an Excel-style reference", c.VersionInfoCell)
		}
		c.VersionInfoCell = normalized
	}
	return nil
}

// SpreadsheetID picks the workbook for the environment. A missing id
// for the chosen environment is a configuration error, not a fallback.
func (c *BuildConfig) SpreadsheetID(prod bool) (string, error) {
	if prod {
		if c.ProductionSpreadsheetID == "" {
			return "", &MissingConfigError{Key: "production_spreadsheet_id"}
		}
		return c.ProductionSpreadsheetID, nil
	}
	if c.DevelopmentSpreadsheetID == "" {
		return "", &MissingConfigError{Key: "development_spreadsheet_id"}
	}
	return c.DevelopmentSpreadsheetID, nil
}

// DefaultConfig returns the values written on first run.
func DefaultConfig() BuildConfig {
	return BuildConfig{
		CredentialsPath: "~/.a11ybuild/credentials.json",
		TokenPath:       "~/.a11ybuild/token.json",
		LogLevel:        "INFO",
		Basedir:         ".",
		BaseURL:         "https://a11y-guidelines.example.com",
		VersionInfoCell: "A27",
	}
}
