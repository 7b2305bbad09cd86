// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package loader

import "fmt"

// SchemaValidationError reports a source document that decoded but
// failed structural validation. Path points at the offending file.
type SchemaValidationError struct {
	Path string
	Err  error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed for %s: %v", e.Path, e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// DecodeError reports a source document that could not be parsed at
// all.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
