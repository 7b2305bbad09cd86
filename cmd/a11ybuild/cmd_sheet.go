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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/a11ybuild/cmd/a11ybuild/config"
	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/loader"
	"github.com/AleutianAI/a11ybuild/pkg/message"
	"github.com/AleutianAI/a11ybuild/pkg/spreadsheet"
	"github.com/AleutianAI/a11ybuild/pkg/ux"
)

func runSheetSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := &config.Global

	spreadsheetID, err := cfg.SpreadsheetID(sheetProd)
	if err != nil {
		return err
	}
	if cfg.CredentialsPath == "" {
		return &config.MissingConfigError{Key: "credentials_path"}
	}
	if cfg.TokenPath == "" {
		return &config.MissingConfigError{Key: "token_path"}
	}

	entity.ResetAll()
	var corpus *loader.Corpus
	if err := ux.WithSpinner("loading source tree", func() error {
		corpus, err = loader.New(cfg.Basedir, logger).Load()
		return err
	}); err != nil {
		return err
	}

	rows := checksheet.Generate(corpus.CheckRecords, logger)
	if sheetDryRun {
		counts := make(map[string]int, len(checksheet.AllTargets))
		order := make([]string, 0, len(checksheet.AllTargets))
		for _, t := range checksheet.AllTargets {
			counts[string(t)] = len(rows[t])
			order = append(order, string(t))
		}
		ux.Summary("planned rows", counts, order)
		return nil
	}

	httpClient, err := spreadsheet.NewHTTPClient(ctx, cfg.CredentialsPath, cfg.TokenPath, logger)
	if err != nil {
		return err
	}
	client, err := spreadsheet.NewClient(ctx, httpClient, spreadsheetID, logger)
	if err != nil {
		return err
	}

	sync := spreadsheet.NewSynchronizer(client, spreadsheet.SyncOptions{
		EditorEmail: cfg.SheetEditorEmail,
		BaseURL:     cfg.BaseURL,
		Lang:        message.LangJa,
		Version:     corpus.Version,
		VersionDate: corpus.VersionDate,
		VersionCell: cfg.VersionInfoCell,
	}, logger)

	if err := ux.WithSpinner("synchronizing checklist workbook", func() error {
		return sync.Sync(ctx, rows)
	}); err != nil {
		return err
	}

	env := "development"
	if sheetProd {
		env = "production"
	}
	ux.Info(fmt.Sprintf("workbook %s (%s) is up to date", spreadsheetID, env))
	return nil
}
