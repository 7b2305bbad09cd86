// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spreadsheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/logging"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// defaultVersionCell is where the version stamp lands when the
// configuration does not say otherwise.
const defaultVersionCell = "A27"

// SyncOptions carries the per-run settings of a workbook sync.
type SyncOptions struct {
	// EditorEmail, when set, is added as an editor on protected ranges.
	EditorEmail string
	// BaseURL prefixes the rich-text links into the published site.
	BaseURL string
	// Lang selects the language of every generated string.
	Lang string
	// Version and VersionDate feed the version-info cell.
	Version     string
	VersionDate string
	// VersionCell overrides the version-info cell reference.
	VersionCell string
}

// Synchronizer rewrites the checklist workbook from generated rows,
// preserving user-entered result cells.
type Synchronizer struct {
	client *Client
	opts   SyncOptions
	logger *logging.Logger
}

func NewSynchronizer(client *Client, opts SyncOptions, logger *logging.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Lang == "" {
		opts.Lang = message.LangJa
	}
	if opts.VersionCell == "" {
		opts.VersionCell = defaultVersionCell
	}
	return &Synchronizer{client: client, opts: opts, logger: logger}
}

// Sync fetches the workbook snapshot, plans every target sheet, and
// submits the whole plan as one batch. Sheets missing from the workbook
// are reported and skipped; the batch still covers the rest. Sheets
// whose current content already equals the planned grid are elided, so
// a re-run against an unchanged corpus submits nothing.
func (s *Synchronizer) Sync(ctx context.Context, rows map[checksheet.Target][]*checksheet.Row) error {
	// Validate the version cell before touching the network.
	versionRow, versionCol, err := ParseCellRef(s.opts.VersionCell)
	if err != nil {
		return err
	}

	snap, err := s.client.TakeSnapshot(ctx)
	if err != nil {
		return err
	}

	var requests []*sheets.Request
	for _, t := range checksheet.AllTargets {
		title := SheetTitle(t, s.opts.Lang)
		info, ok := snap.Sheet(title)
		if !ok {
			s.logger.Warn("sheet missing from workbook, skipping", "sheet", title)
			continue
		}

		// One formula-rendered fetch serves both result preservation
		// and the up-to-date check.
		vr, err := s.client.GetFormulaValues(ctx, fmt.Sprintf("'%s'", title))
		if err != nil {
			return err
		}
		preserved := preservedResults(vr, title, s.logger)

		layout := buildLayout(t, rows[t], s.opts.Lang, s.opts.BaseURL, preserved)
		if layoutMatches(layout, info, vr) {
			s.logger.Debug("sheet already up to date", "sheet", title)
			continue
		}
		plan := buildSheetPlan(layout, info, s.opts.EditorEmail)
		s.logger.Debug("planned sheet update",
			"sheet", title, "rows", layout.rowCount(), "requests", len(plan), "preserved", len(preserved))
		requests = append(requests, plan...)
	}

	if s.opts.Version != "" {
		first := snap.FirstSheet()
		if first == nil {
			return errors.New("workbook has no sheets")
		}
		text := message.Default.Getf("template", "versionInfo", s.opts.Lang,
			s.opts.Version, s.opts.VersionDate)
		current, err := s.versionCellValue(ctx, first)
		if err != nil {
			return err
		}
		if current != text {
			requests = append(requests, versionInfoRequest(first, versionRow, versionCol, text))
		}
	}

	return s.client.BatchUpdate(ctx, orderBatch(requests))
}

func (s *Synchronizer) versionCellValue(ctx context.Context, first *SheetInfo) (string, error) {
	vr, err := s.client.GetValues(ctx, fmt.Sprintf("'%s'!%s", first.Title, s.opts.VersionCell))
	if err != nil {
		return "", err
	}
	if len(vr.Values) == 0 {
		return "", nil
	}
	return cellString(vr.Values[0], 0), nil
}
