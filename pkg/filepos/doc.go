// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

// Package filepos tracks source positions of template tags for error reporting.
package filepos
