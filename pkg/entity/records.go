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
	"github.com/AleutianAI/a11ybuild/pkg/message"
)

// Raw record shapes as they appear in the source tree. The loader decodes
// yaml/json documents into these and validates them (validator tags)
// before the entity constructors intern them. The checklist processor
// consumes CheckRecord values directly, before interning.

// GuidelineRecord is one guideline document.
type GuidelineRecord struct {
	ID        string       `yaml:"id" validate:"required"`
	SortKey   int          `yaml:"sortKey" validate:"required"`
	Category  string       `yaml:"category" validate:"required"`
	Title     message.Text `yaml:"title" validate:"required"`
	Guideline message.Text `yaml:"guideline" validate:"required"`
	Intent    message.Text `yaml:"intent" validate:"required"`
	Platform  []string     `yaml:"platform" validate:"required,min=1,dive,oneof=web mobile ios android general"`
	Checks    []string     `yaml:"checks" validate:"required,min=1"`
	SC        []string     `yaml:"sc"`
	Info      []string     `yaml:"info"`
	SrcPath   string       `yaml:"-"`
}

// CheckRecord is one check document.
type CheckRecord struct {
	ID              string                  `yaml:"id" validate:"required"`
	SortKey         int                     `yaml:"sortKey"`
	Check           message.Text            `yaml:"check" validate:"required"`
	Severity        string                  `yaml:"severity" validate:"required,oneof=minor normal major critical"`
	Target          string                  `yaml:"target" validate:"required,oneof=design code product"`
	Platform        []string                `yaml:"platform" validate:"required,min=1,dive,oneof=web mobile ios android general"`
	Conditions      []*ConditionRecord      `yaml:"conditions" validate:"dive"`
	Implementations []*ImplementationRecord `yaml:"implementations" validate:"dive"`
	Info            []string                `yaml:"info"`
	SrcPath         string                  `yaml:"-"`
}

// Condition kinds.
const (
	ConditionSimple = "simple"
	ConditionAnd    = "and"
	ConditionOr     = "or"
)

// ConditionRecord is a node of the boolean procedure tree: either a
// simple leaf holding a procedure, or an and/or node combining children.
type ConditionRecord struct {
	Kind       string             `yaml:"type" validate:"required,oneof=simple and or"`
	Platform   string             `yaml:"platform" validate:"omitempty,oneof=web mobile ios android general"`
	Procedure  *ProcedureRecord   `yaml:"procedure" validate:"required_if=Kind simple"`
	Conditions []*ConditionRecord `yaml:"conditions" validate:"required_unless=Kind simple,dive"`
}

// Procedures walks the tree depth-first and returns the ordered leaf
// procedures.
func (c *ConditionRecord) Procedures() []*ProcedureRecord {
	if c == nil {
		return nil
	}
	if c.Kind == ConditionSimple {
		if c.Procedure == nil {
			return nil
		}
		return []*ProcedureRecord{c.Procedure}
	}
	var out []*ProcedureRecord
	for _, child := range c.Conditions {
		out = append(out, child.Procedures()...)
	}
	return out
}

// ProcedureRecord is one concrete verification step, tied to a tool.
type ProcedureRecord struct {
	ID       string       `yaml:"id" validate:"required"`
	Platform string       `yaml:"platform" validate:"omitempty,oneof=web mobile ios android general"`
	Target   string       `yaml:"target" validate:"omitempty,oneof=design code product"`
	Tool     string       `yaml:"tool"`
	Steps    message.Text `yaml:"procedure" validate:"required"`
	Note     message.Text `yaml:"note"`
	// ToolLink is the display text/url pair for the tool, resolved by
	// the loader from the tool catalog.
	ToolLink *ToolLink `yaml:"toolLink"`
}

// ToolLink points at the check tool a procedure uses.
type ToolLink struct {
	ToolID string       `yaml:"id"`
	Text   message.Text `yaml:"text"`
	URL    message.Text `yaml:"url"`
}

// ImplementationRecord is an implementation example attached to a check.
type ImplementationRecord struct {
	Title   message.Text            `yaml:"title" validate:"required"`
	Methods map[string]message.Text `yaml:"methods" validate:"required,min=1"`
}

// FAQRecord is one FAQ article document.
type FAQRecord struct {
	ID          string       `yaml:"id" validate:"required"`
	SortKey     int          `yaml:"sortKey" validate:"required"`
	Updated     string       `yaml:"updated" validate:"required"`
	Title       message.Text `yaml:"title" validate:"required"`
	Problem     message.Text `yaml:"problem" validate:"required"`
	Solution    message.Text `yaml:"solution" validate:"required"`
	Explanation message.Text `yaml:"explanation" validate:"required"`
	Tags        []string     `yaml:"tags" validate:"required,min=1"`
	Guidelines  []string     `yaml:"guidelines"`
	Checks      []string     `yaml:"checks"`
	FAQs        []string     `yaml:"faqs"`
	Info        []string     `yaml:"info"`
	SrcPath     string       `yaml:"-"`
}

// WcagScRecord is one WCAG success-criterion entry from the metadata
// JSON; the map key in the file is the criterion number.
type WcagScRecord struct {
	SortKey       int               `json:"sortKey" yaml:"sortKey" validate:"required"`
	Level         string            `json:"level" yaml:"level" validate:"required,oneof=A AA AAA"`
	LocalPriority string            `json:"localPriority" yaml:"localPriority"`
	LangData      map[string]WcagLc `json:"langData" yaml:"langData" validate:"required,min=1"`
}

// WcagLc holds the per-language title and url of a success criterion.
type WcagLc struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// InfoRefRecord is one entry of the static external-reference JSON.
type InfoRefRecord struct {
	Text message.Text `json:"text" yaml:"text"`
	URL  message.Text `json:"url" yaml:"url"`
}

// AxeRuleRecord is one rule of the axe-core catalog.
type AxeRuleRecord struct {
	ID          string       `json:"ruleId" yaml:"ruleId" validate:"required"`
	Tags        []string     `json:"tags" yaml:"tags"`
	Help        message.Text `json:"help" yaml:"help" validate:"required"`
	Description message.Text `json:"description" yaml:"description"`
	SrcPath     string       `json:"-" yaml:"-"`
}

// CategoryRecord names one guideline category.
type CategoryRecord struct {
	ID    string       `yaml:"id" validate:"required"`
	Names message.Text `yaml:"names" validate:"required"`
}

// CheckToolRecord names one check tool and its reference examples.
type CheckToolRecord struct {
	ID       string       `yaml:"id" validate:"required"`
	Names    message.Text `yaml:"names" validate:"required"`
	BaseURL  string       `yaml:"baseUrl"`
	Examples []struct {
		CheckID     string `yaml:"check"`
		ProcedureID string `yaml:"procedure"`
	} `yaml:"examples"`
}

// FAQTagRecord names one FAQ tag.
type FAQTagRecord struct {
	ID    string       `yaml:"id" validate:"required"`
	Names message.Text `yaml:"names" validate:"required"`
}
