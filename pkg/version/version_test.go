// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"templet.dev/templet/pkg/version"
)

func TestRequireAtLeastSatisfied(t *testing.T) {
	require.NoError(t, version.RequireAtLeast("0.1.0"))
	require.NoError(t, version.RequireAtLeast(version.Version))
}

func TestRequireAtLeastUnsatisfied(t *testing.T) {
	err := version.RequireAtLeast("99.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum required version")
}

func TestRequireAtLeastRejectsGarbage(t *testing.T) {
	require.Error(t, version.RequireAtLeast("not-a-version"))
}
