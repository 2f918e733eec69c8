// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"templet.dev/templet/pkg/filepos"
)

type tagKind int

const (
	tagValue tagKind = iota
	tagIf
	tagElif
	tagElse
	tagFor
	tagEndIf
	tagEndFor
)

// parsedTag is the typed result of parsing one tag span.
type parsedTag struct {
	kind     tagKind
	raw      string
	path     string // tagValue, tagIf, tagElif: path expression; tagFor: source path
	alias    string // tagFor only
	position *filepos.Position
}

// parseTag validates a full tag span '{...}' and classifies it. The first
// character after '{' picks the tag family ('$' value, '%' keyword); the
// keyword inside a '%' tag picks the kind.
func parseTag(raw string, pos *filepos.Position) (parsedTag, error) {
	inner := raw[1 : len(raw)-1]
	if len(inner) == 0 {
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: "Expected tag to start with '$' or '%'", Position: pos}
	}

	switch inner[0] {
	case '$':
		return parseValueTag(raw, inner[1:], pos)
	case '%':
		return parseKeywordTag(raw, inner[1:], pos)
	default:
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: "Expected tag to start with '$' or '%'", Position: pos}
	}
}

func parseValueTag(raw, content string, pos *filepos.Position) (parsedTag, error) {
	path := strings.TrimSpace(content)
	if err := validatePathExpr(path); err != nil {
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: err.Error(), Position: pos}
	}
	return parsedTag{kind: tagValue, raw: raw, path: path, position: pos}, nil
}

func parseKeywordTag(raw, content string, pos *filepos.Position) (parsedTag, error) {
	if !strings.HasSuffix(content, "%") {
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: "Expected tag to be enclosed with '{%' and '%}'", Position: pos}
	}

	expr := strings.TrimSpace(content[:len(content)-1])
	keyword := expr
	if idx := strings.IndexByte(expr, ' '); idx != -1 {
		keyword = expr[:idx]
	}

	switch keyword {
	case "if", "elif":
		path := strings.TrimSpace(strings.TrimPrefix(expr, keyword))
		if len(path) == 0 {
			return parsedTag{}, InvalidTagError{Tag: raw, Msg: fmt.Sprintf("Expected condition after '%s'", keyword), Position: pos}
		}
		if err := validatePathExpr(path); err != nil {
			return parsedTag{}, InvalidTagError{Tag: raw, Msg: err.Error(), Position: pos}
		}
		kind := tagIf
		if keyword == "elif" {
			kind = tagElif
		}
		return parsedTag{kind: kind, raw: raw, path: path, position: pos}, nil

	case "else", "endif", "endfor":
		if expr != keyword {
			return parsedTag{}, InvalidTagError{Tag: raw, Msg: fmt.Sprintf("Expected no expression after '%s'", keyword), Position: pos}
		}
		kinds := map[string]tagKind{"else": tagElse, "endif": tagEndIf, "endfor": tagEndFor}
		return parsedTag{kind: kinds[keyword], raw: raw, position: pos}, nil

	case "for":
		return parseForTag(raw, expr, pos)

	default:
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: fmt.Sprintf("Unknown keyword '%s'", keyword), Position: pos}
	}
}

// parseForTag parses 'for <source> as <alias>'. Structural violations of
// this keyword form are ExpressionSyntaxError rather than InvalidTagError;
// a malformed source path or alias is still InvalidTagError.
func parseForTag(raw, expr string, pos *filepos.Position) (parsedTag, error) {
	tokens := strings.Split(expr, " ")
	if len(tokens) != 4 {
		return parsedTag{}, ExpressionSyntaxError{Tag: raw,
			Msg: "Expected for expression to contain exactly four tokens ('for <source> as <alias>')", Position: pos}
	}
	if tokens[0] != "for" || tokens[2] != "as" {
		return parsedTag{}, ExpressionSyntaxError{Tag: raw,
			Msg: "Expected for expression to match 'for <source> as <alias>'", Position: pos}
	}
	if err := validatePathExpr(tokens[1]); err != nil {
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: err.Error(), Position: pos}
	}
	if err := validateAlias(tokens[3]); err != nil {
		return parsedTag{}, InvalidTagError{Tag: raw, Msg: err.Error(), Position: pos}
	}
	return parsedTag{kind: tagFor, raw: raw, path: tokens[1], alias: tokens[3], position: pos}, nil
}

// validatePathExpr checks the dotted/indexed name grammar: one or more
// dot-separated segments, each an identifier ([A-Za-z0-9_-]+) optionally
// followed by bracketed non-negative integer indexes.
func validatePathExpr(expr string) error {
	if len(expr) == 0 {
		return fmt.Errorf("Expected non-empty name")
	}
	for _, segment := range strings.Split(expr, ".") {
		if len(segment) == 0 {
			return fmt.Errorf("Expected name '%s' to not contain empty segments", expr)
		}
		if err := validateSegment(expr, segment); err != nil {
			return err
		}
	}
	return nil
}

func validateSegment(expr, segment string) error {
	i := 0
	for i < len(segment) && isIdentChar(segment[i]) {
		i++
	}
	if i == 0 {
		return fmt.Errorf("Expected name '%s' to only contain a-z, A-Z, 0-9, '_', '-', '.' and '[n]' indexes", expr)
	}
	for i < len(segment) {
		if segment[i] != '[' {
			return fmt.Errorf("Expected name '%s' to only contain a-z, A-Z, 0-9, '_', '-', '.' and '[n]' indexes", expr)
		}
		i++
		digits := 0
		for i < len(segment) && segment[i] >= '0' && segment[i] <= '9' {
			i++
			digits++
		}
		if digits == 0 || i >= len(segment) || segment[i] != ']' {
			return fmt.Errorf("Expected index in name '%s' to be a non-negative integer enclosed with '[' and ']'", expr)
		}
		i++
	}
	return nil
}

func validateAlias(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("Expected non-empty alias name")
	}
	for i := 0; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return fmt.Errorf("Expected alias name '%s' to only contain a-z, A-Z, 0-9, '_' and '-'", name)
		}
	}
	return nil
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '-'
}
