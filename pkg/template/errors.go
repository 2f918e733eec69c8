// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"templet.dev/templet/pkg/filepos"
)

// InvalidTagError indicates a malformed tag: bad identifier characters,
// an unrecognized keyword, or a value of the wrong shape for the operation
// (e.g. printing a map, indexing a scalar).
type InvalidTagError struct {
	Tag      string
	Msg      string
	Position *filepos.Position
}

// ExpressionSyntaxError indicates a structurally malformed keyword-form
// expression, such as a 'for' tag that does not match 'for <source> as <alias>'.
type ExpressionSyntaxError struct {
	Tag      string
	Msg      string
	Position *filepos.Position
}

// MissingTagError indicates a referenced name was absent where absence is
// fatal (a for loop's source list).
type MissingTagError struct {
	Tag      string
	Msg      string
	Position *filepos.Position
}

var _ = []error{InvalidTagError{}, ExpressionSyntaxError{}, MissingTagError{}}

func (e InvalidTagError) Error() string {
	return formatTagError("Invalid tag", e.Tag, e.Msg, e.Position)
}

func (e ExpressionSyntaxError) Error() string {
	return formatTagError("Invalid expression", e.Tag, e.Msg, e.Position)
}

func (e MissingTagError) Error() string {
	return formatTagError("Missing tag", e.Tag, e.Msg, e.Position)
}

func formatTagError(kind, tag, msg string, pos *filepos.Position) string {
	result := kind
	if len(tag) > 0 {
		result += fmt.Sprintf(" '%s'", tag)
	}
	result += ": " + msg
	if pos.IsKnown() {
		result += fmt.Sprintf(" (%s)", pos.AsString())
	}
	return result
}
