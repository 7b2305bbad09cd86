// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPlain(t *testing.T) {
	orig := Plain()
	defer SetPlain(orig)

	SetPlain(true)
	assert.True(t, Plain())
	SetPlain(false)
	assert.False(t, Plain())
}

func TestWithSpinner_PropagatesError(t *testing.T) {
	orig := Plain()
	defer SetPlain(orig)
	SetPlain(true)

	sentinel := errors.New("load failed")
	err := WithSpinner("loading", func() error { return sentinel })
	require.ErrorIs(t, err, sentinel)

	assert.NoError(t, WithSpinner("loading", func() error { return nil }))
}
