// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

// Package template implements the templet text-template engine: literal
// text interleaved with value tags ('{$ name }') and block tags
// ('{% if ... %}', '{% for ... as ... %}') rendered against a
// hierarchical scalar/list/map environment.
package template
