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

	"github.com/AleutianAI/a11ybuild/cmd/a11ybuild/config"
	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/loader"
	"github.com/AleutianAI/a11ybuild/pkg/ux"
)

// runValidate loads the source tree without producing output. Schema
// and reference errors abort; target/platform mismatches on checks are
// surfaced as warnings by the row generation pass.
func runValidate(cmd *cobra.Command, args []string) error {
	entity.ResetAll()
	corpus, err := loader.New(config.Global.Basedir, logger).Load()
	if err != nil {
		return err
	}
	checksheet.Generate(corpus.CheckRecords, logger)

	ux.Summary("source tree valid", map[string]int{
		"categories": entity.Categories.Len(),
		"guidelines": entity.Guidelines.Len(),
		"checks":     entity.Checks.Len(),
		"faqs":       entity.FAQs.Len(),
		"wcag":       entity.WcagSCs.Len(),
		"axe":        entity.AxeRules.Len(),
	}, []string{"categories", "guidelines", "checks", "faqs", "wcag", "axe"})
	return nil
}
