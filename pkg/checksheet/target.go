// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package checksheet transforms raw check records into the per-target
// row streams behind the checklist workbook.
//
// A target names a single sheet: the cross product of {design, code,
// product} and {web, mobile}, with mobile fanning out to iOS and Android
// under product. Checks whose condition trees hold more than one leaf
// procedure for a target expand into subcheck rows carrying their own
// result cells.
package checksheet

import (
	"github.com/AleutianAI/a11ybuild/pkg/entity"
)

// Target identifies one sheet of the checklist workbook.
type Target string

const (
	DesignWeb      Target = "designWeb"
	DesignMobile   Target = "designMobile"
	CodeWeb        Target = "codeWeb"
	CodeMobile     Target = "codeMobile"
	ProductWeb     Target = "productWeb"
	ProductIos     Target = "productIos"
	ProductAndroid Target = "productAndroid"
)

// AllTargets lists every sheet in workbook order.
var AllTargets = []Target{
	DesignWeb, DesignMobile, CodeWeb, CodeMobile,
	ProductWeb, ProductIos, ProductAndroid,
}

// Platform returns the platform whose procedures populate this sheet.
func (t Target) Platform() string {
	switch t {
	case DesignWeb, CodeWeb, ProductWeb:
		return entity.PlatformWeb
	case DesignMobile, CodeMobile:
		return entity.PlatformMobile
	case ProductIos:
		return entity.PlatformIos
	case ProductAndroid:
		return entity.PlatformAndroid
	default:
		return ""
	}
}

// CheckTarget returns the check target (design/code/product) the sheet
// belongs to.
func (t Target) CheckTarget() string {
	switch t {
	case DesignWeb, DesignMobile:
		return entity.TargetDesign
	case CodeWeb, CodeMobile:
		return entity.TargetCode
	default:
		return entity.TargetProduct
	}
}

// HasGeneratedData reports whether the sheet carries the computed result
// columns (calculatedResult, finalResult) and condition statements.
// Design and code reviews on mobile record free-form results only.
func (t Target) HasGeneratedData() bool {
	switch t {
	case DesignWeb, ProductWeb, ProductIos, ProductAndroid:
		return true
	default:
		return false
	}
}

// targetsFor expands a check's (target, platform-set) into its sheets.
// The mobile fan-out to iOS and Android applies only under product.
// Unknown combinations return ok=false so the caller can surface them.
func targetsFor(checkTarget, platform string) (out []Target, ok bool) {
	switch checkTarget {
	case entity.TargetDesign:
		switch platform {
		case entity.PlatformWeb:
			return []Target{DesignWeb}, true
		case entity.PlatformMobile:
			return []Target{DesignMobile}, true
		case entity.PlatformGeneral:
			return []Target{DesignWeb, DesignMobile}, true
		}
	case entity.TargetCode:
		switch platform {
		case entity.PlatformWeb:
			return []Target{CodeWeb}, true
		case entity.PlatformMobile:
			return []Target{CodeMobile}, true
		case entity.PlatformGeneral:
			return []Target{CodeWeb, CodeMobile}, true
		}
	case entity.TargetProduct:
		switch platform {
		case entity.PlatformWeb:
			return []Target{ProductWeb}, true
		case entity.PlatformMobile:
			return []Target{ProductIos, ProductAndroid}, true
		case entity.PlatformIos:
			return []Target{ProductIos}, true
		case entity.PlatformAndroid:
			return []Target{ProductAndroid}, true
		case entity.PlatformGeneral:
			return []Target{ProductWeb, ProductIos, ProductAndroid}, true
		}
	}
	return nil, false
}
