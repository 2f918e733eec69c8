// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"
)

// Parser turns template text into a Template via recursive descent over
// the lexer: block tags recursively consume their own body up to the
// matching closing tag.
type Parser struct {
	associatedName string
}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(data []byte, associatedName string) (*Template, error) {
	p.associatedName = associatedName

	lx := newLexer(string(data), associatedName)

	nodes, _, err := p.parseNodes(lx, blockTop, parsedTag{})
	if err != nil {
		return nil, err
	}

	return &Template{name: associatedName, nodes: nodes}, nil
}

type blockCtx int

const (
	blockTop blockCtx = iota
	blockIf
	blockFor
)

// parseNodes collects nodes until the closer belonging to ctx. For an if
// block it also stops at (and returns) elif/else tags at the same depth;
// nested blocks consume their own closers during their own recursive call.
func (p *Parser) parseNodes(lx *lexer, ctx blockCtx, open parsedTag) ([]Node, parsedTag, error) {
	var nodes []Node

	for {
		tok, ok := lx.Next()
		if !ok {
			if ctx == blockTop {
				return nodes, parsedTag{}, nil
			}
			closer := "{% endif %}"
			if ctx == blockFor {
				closer = "{% endfor %}"
			}
			return nil, parsedTag{}, InvalidTagError{Tag: open.raw,
				Msg: fmt.Sprintf("Expected '%s' before end of template", closer), Position: open.position}
		}

		if tok.kind == tokenText {
			if len(tok.content) > 0 {
				nodes = append(nodes, &TextNode{Content: tok.content, Position: tok.position})
			}
			continue
		}

		tag, err := parseTag(tok.content, tok.position)
		if err != nil {
			return nil, parsedTag{}, err
		}

		switch tag.kind {
		case tagValue:
			nodes = append(nodes, &ValueNode{Path: tag.path, Position: tag.position})

		case tagIf:
			children, err := p.parseIfChildren(lx, tag)
			if err != nil {
				return nil, parsedTag{}, err
			}
			nodes = append(nodes, &IfNode{Path: tag.path, Children: children, Position: tag.position})

		case tagFor:
			children, _, err := p.parseNodes(lx, blockFor, tag)
			if err != nil {
				return nil, parsedTag{}, err
			}
			nodes = append(nodes, &ForNode{SourcePath: tag.path, Alias: tag.alias, Children: children, Position: tag.position})

		case tagElif, tagElse:
			if ctx == blockIf {
				return nodes, tag, nil
			}
			return nil, parsedTag{}, InvalidTagError{Tag: tag.raw,
				Msg: "Expected 'elif' and 'else' to appear within an 'if' block", Position: tag.position}

		case tagEndIf:
			if ctx == blockIf {
				return nodes, tag, nil
			}
			return nil, parsedTag{}, p.mismatchedCloserErr(ctx, open, tag)

		case tagEndFor:
			if ctx == blockFor {
				return nodes, tag, nil
			}
			return nil, parsedTag{}, p.mismatchedCloserErr(ctx, open, tag)

		default:
			panic(fmt.Sprintf("Unknown tag kind %d", tag.kind))
		}
	}
}

// parseIfChildren collects an if block's body and its elif/else branch
// siblings, up to the matching endif.
func (p *Parser) parseIfChildren(lx *lexer, open parsedTag) ([]Node, error) {
	children, stop, err := p.parseNodes(lx, blockIf, open)
	if err != nil {
		return nil, err
	}

	elseSeen := false

	for stop.kind == tagElif || stop.kind == tagElse {
		branch := stop

		if elseSeen {
			msg := "Expected at most one 'else' within an 'if' block"
			if branch.kind == tagElif {
				msg = "Expected 'elif' to appear before 'else'"
			}
			return nil, InvalidTagError{Tag: branch.raw, Msg: msg, Position: branch.position}
		}

		branchChildren, nextStop, err := p.parseNodes(lx, blockIf, open)
		if err != nil {
			return nil, err
		}

		switch branch.kind {
		case tagElif:
			children = append(children, &ElifNode{Path: branch.path, Children: branchChildren, Position: branch.position})
		case tagElse:
			children = append(children, &ElseNode{Children: branchChildren, Position: branch.position})
			elseSeen = true
		}

		stop = nextStop
	}

	return children, nil
}

func (p *Parser) mismatchedCloserErr(ctx blockCtx, open, found parsedTag) error {
	if ctx == blockTop {
		return InvalidTagError{Tag: found.raw,
			Msg: "Expected closing tag to follow a matching opening tag", Position: found.position}
	}
	return InvalidTagError{Tag: found.raw,
		Msg: fmt.Sprintf("Expected closing tag to match '%s'", open.raw), Position: found.position}
}

// Template is a parsed template. It is read-only after parsing and may be
// rendered repeatedly against different environments; each render owns its
// own output buffer.
type Template struct {
	name  string
	nodes []Node
}

func (t *Template) Name() string { return t.name }

// Render evaluates the template against env. On any error the partial
// output is discarded; the caller receives only the error.
func (t *Template) Render(env Map) (string, error) {
	var out strings.Builder

	err := evaluateAll(t.nodes, &out, NewEnvironment(env))
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// Render parses and evaluates text in one step.
func Render(text string, env Map) (string, error) {
	tpl, err := NewParser().Parse([]byte(text), "inline")
	if err != nil {
		return "", err
	}
	return tpl.Render(env)
}
