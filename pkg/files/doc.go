// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

// Package files deals with reading template and data values inputs from
// files, stdin and URLs, and with writing rendered output.
package files
