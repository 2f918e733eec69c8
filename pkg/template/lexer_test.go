// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, data string) []token {
	lx := newLexer(data, "test.txt")
	var tokens []token
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func TestLexerTextOnly(t *testing.T) {
	tokens := collectTokens(t, "plain text")
	require.Len(t, tokens, 1)
	assert.Equal(t, tokenText, tokens[0].kind)
	assert.Equal(t, "plain text", tokens[0].content)
}

func TestLexerTextAndTags(t *testing.T) {
	tokens := collectTokens(t, "a {$x} b {% if y %} c")
	require.Len(t, tokens, 5)

	assert.Equal(t, tokenText, tokens[0].kind)
	assert.Equal(t, "a ", tokens[0].content)
	assert.Equal(t, tokenTag, tokens[1].kind)
	assert.Equal(t, "{$x}", tokens[1].content)
	assert.Equal(t, tokenText, tokens[2].kind)
	assert.Equal(t, " b ", tokens[2].content)
	assert.Equal(t, tokenTag, tokens[3].kind)
	assert.Equal(t, "{% if y %}", tokens[3].content)
	assert.Equal(t, tokenText, tokens[4].kind)
	assert.Equal(t, " c", tokens[4].content)
}

func TestLexerAdjacentTags(t *testing.T) {
	tokens := collectTokens(t, "{$x}{$y}")
	require.Len(t, tokens, 2)
	assert.Equal(t, "{$x}", tokens[0].content)
	assert.Equal(t, "{$y}", tokens[1].content)
}

func TestLexerUnterminatedTagIsLiteral(t *testing.T) {
	tokens := collectTokens(t, "before {$x")
	require.Len(t, tokens, 2)
	assert.Equal(t, tokenText, tokens[1].kind)
	assert.Equal(t, "{$x", tokens[1].content)
}

func TestLexerEscapedTagIsLiteralWithBackslashStripped(t *testing.T) {
	tokens := collectTokens(t, `a {\$x} b`)
	require.Len(t, tokens, 3)
	assert.Equal(t, tokenText, tokens[1].kind)
	assert.Equal(t, "{$x}", tokens[1].content)
}

func TestLexerTracksLineNumbers(t *testing.T) {
	tokens := collectTokens(t, "one\ntwo\n{$x}\n{$y}")
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].position.LineNum())
	assert.Equal(t, 3, tokens[1].position.LineNum()) // {$x}
	assert.Equal(t, 3, tokens[2].position.LineNum()) // "\n" after {$x}
	assert.Equal(t, 4, tokens[3].position.LineNum()) // {$y}
	assert.Equal(t, "test.txt", tokens[1].position.GetFile())
}
