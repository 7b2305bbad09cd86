// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	basedir    string
	quiet      bool

	docsLangs   string
	docsDest    string
	docsWatch   bool
	sheetProd   bool
	sheetDryRun bool

	rootCmd = &cobra.Command{
		Use:   "a11ybuild",
		Short: "Build tool for the accessibility guidelines corpus",
		Long: `a11ybuild reads the curated guideline/check/FAQ source tree and
				produces the RST document fragments and the checklist workbook
				derived from it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// --- Documents ---
	docsCmd = &cobra.Command{
		Use:   "docs",
		Short: "Generate the RST fragment tree from the source corpus",
		RunE:  runDocs, // Defined in cmd_docs.go
	}

	// --- Checklist workbook ---
	sheetCmd = &cobra.Command{
		Use:   "sheet",
		Short: "Manage the checklist workbook",
	}
	sheetSyncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the checklist workbook with the source corpus",
		RunE:  runSheetSync, // Defined in cmd_sheet.go
	}

	// --- Validation ---
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Load the source tree and report schema and reference errors",
		RunE:  runValidate, // Defined in cmd_validate.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&basedir, "basedir", "", "source-tree root (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "plain, unstyled output")

	docsCmd.Flags().StringVar(&docsLangs, "lang", "ja", "comma-separated output languages (ja,en)")
	docsCmd.Flags().StringVar(&docsDest, "dest", "build/rst", "fragment output directory")
	docsCmd.Flags().BoolVar(&docsWatch, "watch", false, "watch the source tree and regenerate on change")

	sheetSyncCmd.Flags().BoolVar(&sheetProd, "prod", false, "target the production workbook")
	sheetSyncCmd.Flags().BoolVar(&sheetDryRun, "dry-run", false, "plan only, submit nothing")

	sheetCmd.AddCommand(sheetSyncCmd)
	rootCmd.AddCommand(docsCmd, sheetCmd, validateCmd)
}
