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
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/AleutianAI/a11ybuild/pkg/checksheet"
	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// sheetLayout is the desired state of one target sheet: the grid data,
// the id-to-row map used for formula references, and the bookkeeping
// the plan builder needs for merging, protection and visibility.
type sheetLayout struct {
	target checksheet.Target
	schema *Schema
	lang   string

	// data is the full grid: header row then data rows.
	data []*sheets.RowData

	// rowMap maps check ids and procedure ids to 1-based row numbers.
	rowMap map[string]int64

	// parentSubRows lists the 1-based row numbers of parent rows that
	// expand into subchecks on this sheet.
	parentSubRows []int64

	// hasSubchecks reports whether any subcheck row exists.
	hasSubchecks bool
}

// rowCount returns the total number of rows including the header.
func (l *sheetLayout) rowCount() int64 {
	return int64(len(l.data))
}

// buildLayout lays out one target sheet. preserved maps a row key
// (check id or procedure id) to the user-entered result that survives
// the rewrite.
func buildLayout(t checksheet.Target, rows []*checksheet.Row, lang, baseURL string, preserved map[string]string) *sheetLayout {
	schema := SchemaFor(t)
	l := &sheetLayout{
		target: t,
		schema: schema,
		lang:   lang,
		rowMap: make(map[string]int64, len(rows)),
	}

	// First pass: row numbers. Header is row 1, data starts at row 2.
	for i, row := range rows {
		num := int64(i) + 2
		if row.IsSubcheck {
			l.rowMap[row.SubcheckID] = num
			l.hasSubchecks = true
		} else {
			l.rowMap[row.CheckID] = num
			if row.HasSubchecks(t) {
				l.parentSubRows = append(l.parentSubRows, num)
			}
		}
	}

	fc := &formulaContext{lang: lang, schema: schema, rowMap: l.rowMap}

	l.data = make([]*sheets.RowData, 0, len(rows)+1)
	l.data = append(l.data, headerRow(schema, lang))

	var parentID string
	for _, row := range rows {
		if !row.IsSubcheck {
			parentID = row.CheckID
		}
		l.data = append(l.data, dataRow(row, t, schema, fc, lang, baseURL, parentID, preserved))
	}

	return l
}

func headerRow(schema *Schema, lang string) *sheets.RowData {
	cells := make([]*sheets.CellData, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		cells = append(cells, textCell(message.Default.Get("header", col.Name, lang)))
	}
	return &sheets.RowData{Values: cells}
}

func dataRow(row *checksheet.Row, t checksheet.Target, schema *Schema, fc *formulaContext, lang, baseURL, parentID string, preserved map[string]string) *sheets.RowData {
	cells := make([]*sheets.CellData, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		cells = append(cells, dataCell(col.Name, row, t, fc, lang, baseURL, parentID, preserved))
	}
	return &sheets.RowData{Values: cells}
}

func dataCell(name string, row *checksheet.Row, t checksheet.Target, fc *formulaContext, lang, baseURL, parentID string, preserved map[string]string) *sheets.CellData {
	switch name {
	case ColCheckID:
		return idCell(row.CheckID)
	case ColSubcheckID:
		return idCell(row.SubcheckID)
	case ColCalculatedResult:
		if row.IsSubcheck {
			return textCell("")
		}
		return formulaCell(fc.calculatedFormula(row, t))
	case ColFinalResult:
		if row.IsSubcheck {
			return formulaCell(fc.subFinalFormula(parentID))
		}
		return formulaCell(fc.finalFormula(row))
	case ColResult:
		key := row.CheckID
		if row.IsSubcheck {
			key = row.SubcheckID
		}
		if v, ok := preserved[key]; ok && v != "" {
			return textCell(v)
		}
		return textCell(userUnchecked(lang))
	case ColNote:
		return textCell("")
	case ColCheck:
		if row.IsSubcheck {
			return textCell("")
		}
		return textCell(row.Text.In(lang))
	case ColSeverity:
		if row.IsSubcheck {
			return textCell("")
		}
		return textCell(message.Default.Get("severity", row.Severity, lang))
	case ColInfo:
		if row.IsSubcheck {
			return textCell("")
		}
		return infoCell(row.CheckID, lang, baseURL)
	case ColGuidelines:
		if row.IsSubcheck {
			return textCell("")
		}
		return guidelinesCell(row.CheckID, lang, baseURL)
	case ColTools:
		return toolsCell(row.Tools, lang)
	default:
		// Condition-statement column for the sheet's platform.
		return textCell(row.StatementFor(t).In(lang))
	}
}

// textCell builds a plain string cell.
func textCell(s string) *sheets.CellData {
	return &sheets.CellData{
		UserEnteredValue: &sheets.ExtendedValue{StringValue: &s},
	}
}

// idCell builds an id cell forced to text format so zero-padded ids
// keep their leading zeros.
func idCell(s string) *sheets.CellData {
	c := textCell(s)
	c.UserEnteredFormat = &sheets.CellFormat{
		NumberFormat: &sheets.NumberFormat{Type: "TEXT"},
	}
	return c
}

// formulaCell builds a formula cell.
func formulaCell(f string) *sheets.CellData {
	return &sheets.CellData{
		UserEnteredValue: &sheets.ExtendedValue{FormulaValue: &f},
	}
}

// linkPair is one hyperlink of a rich-text cell.
type linkPair struct {
	text string
	url  string
}

// richLinkCell renders links as newline-separated rich text, attaching
// a hyperlink run to each linked entry.
func richLinkCell(links []linkPair) *sheets.CellData {
	if len(links) == 0 {
		return textCell("")
	}
	var b strings.Builder
	var runs []*sheets.TextFormatRun
	for i, l := range links {
		if i > 0 {
			b.WriteString("\n")
		}
		start := int64(b.Len())
		b.WriteString(l.text)
		if l.url != "" {
			runs = append(runs, &sheets.TextFormatRun{
				StartIndex: start,
				Format:     &sheets.TextFormat{Link: &sheets.Link{Uri: l.url}},
			})
			// Terminate the link run unless this is the last entry.
			if i < len(links)-1 {
				runs = append(runs, &sheets.TextFormatRun{
					StartIndex: int64(b.Len()),
					Format:     &sheets.TextFormat{},
				})
			}
		}
	}
	cell := textCell(b.String())
	cell.TextFormatRuns = runs
	return cell
}

// infoCell renders the check's info references: external refs link out,
// internal anchors link into the published guidelines site.
func infoCell(checkID, lang, baseURL string) *sheets.CellData {
	c, ok := entity.Checks.GetByID(checkID)
	if !ok {
		return textCell("")
	}
	var links []linkPair
	for _, ref := range c.InfoRefs() {
		if ref.Internal() {
			links = append(links, linkPair{
				text: ref.RefName(),
				url:  fmt.Sprintf("%s/info/%s.html", strings.TrimSuffix(baseURL, "/"), ref.RefName()),
			})
			continue
		}
		text := ref.Text(lang)
		if text == "" {
			text = ref.RefName()
		}
		url := ref.URL(lang)
		if url == "" && strings.HasPrefix(ref.ID(), "http") {
			url = ref.ID()
		}
		links = append(links, linkPair{text: text, url: url})
	}
	return richLinkCell(links)
}

// guidelinesCell renders links to the guidelines referencing the check.
func guidelinesCell(checkID, lang, baseURL string) *sheets.CellData {
	c, ok := entity.Checks.GetByID(checkID)
	if !ok {
		return textCell("")
	}
	var links []linkPair
	for _, g := range c.Guidelines() {
		links = append(links, linkPair{
			text: g.Title(lang),
			url: fmt.Sprintf("%s/categories/%s.html#%s",
				strings.TrimSuffix(baseURL, "/"), g.Category().ID(), g.ID()),
		})
	}
	return richLinkCell(links)
}

// toolsCell renders the row's tool links.
func toolsCell(tools []checksheet.ToolRef, lang string) *sheets.CellData {
	var links []linkPair
	for _, tool := range tools {
		text := tool.Text.In(lang)
		if text == "" {
			text = tool.ToolID
		}
		links = append(links, linkPair{text: text, url: tool.URL.In(lang)})
	}
	return richLinkCell(links)
}
