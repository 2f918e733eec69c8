// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strings"

	"templet.dev/templet/pkg/filepos"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenTag
)

// token is one region of the template: either literal text or a full
// tag span '{...}' including its delimiters.
type token struct {
	kind     tokenKind
	content  string
	position *filepos.Position
}

// lexer splits template text into literal text spans and tag spans.
// It advances monotonically over the original string; consumed input
// is never copied or erased.
type lexer struct {
	data   string
	name   string
	offset int
	line   int
}

func newLexer(data, associatedName string) *lexer {
	return &lexer{data: data, name: associatedName, line: 1}
}

// Next returns the next token, or false once the input is exhausted.
// An opening '{' with no closing '}' is not an error: the remainder of
// the input (including the '{') comes back as literal text. A tag opened
// with '{\' is an escape: its span is emitted as literal text with the
// backslash stripped and the braces kept.
func (l *lexer) Next() (token, bool) {
	if l.offset >= len(l.data) {
		return token{}, false
	}

	start := l.position()

	open := strings.IndexByte(l.data[l.offset:], '{')
	if open == -1 {
		return token{kind: tokenText, content: l.advance(len(l.data)), position: start}, true
	}

	open += l.offset
	if open > l.offset {
		return token{kind: tokenText, content: l.advance(open), position: start}, true
	}

	close := strings.IndexByte(l.data[open:], '}')
	if close == -1 {
		// unterminated tag; remainder is literal text
		return token{kind: tokenText, content: l.advance(len(l.data)), position: start}, true
	}
	close += open

	if open+1 < len(l.data) && l.data[open+1] == '\\' {
		escaped := "{" + l.data[open+2:close] + "}"
		l.advance(close + 1)
		return token{kind: tokenText, content: escaped, position: start}, true
	}

	return token{kind: tokenTag, content: l.advance(close + 1), position: start}, true
}

func (l *lexer) position() *filepos.Position {
	return filepos.NewPositionInFile(l.line, l.name)
}

// advance moves the cursor to newOffset, keeping the line count current,
// and returns the consumed span.
func (l *lexer) advance(newOffset int) string {
	consumed := l.data[l.offset:newOffset]
	l.line += strings.Count(consumed, "\n")
	l.offset = newOffset
	return consumed
}
