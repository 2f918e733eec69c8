// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"templet.dev/templet/pkg/orderedmap"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
}

func TestMapSetOverwritesInPlace(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	val, found := m.Get("a")
	require.True(t, found)
	assert.Equal(t, 3, val)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestMapDelete(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 0, m.Len())
}

func TestMapIterateErrStopsOnError(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)

	var seen []string
	err := m.IterateErr(func(k string, _ interface{}) error {
		seen = append(seen, k)
		return assert.AnError
	})

	require.Error(t, err)
	assert.Equal(t, []string{"a"}, seen)
}
