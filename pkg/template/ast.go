// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"templet.dev/templet/pkg/filepos"
)

// Node is one element of a parsed template. A node tree is built once per
// parse and is immutable thereafter; it may be evaluated against many
// different environments.
type Node interface {
	evaluate(out *strings.Builder, env *Environment) error
}

var _ = []Node{&TextNode{}, &ValueNode{}, &IfNode{}, &ElifNode{}, &ElseNode{}, &ForNode{}}

type TextNode struct {
	Content  string
	Position *filepos.Position
}

type ValueNode struct {
	Path     string
	Position *filepos.Position
}

// IfNode's children are its body nodes followed by any ElifNode and
// ElseNode branches as siblings; the evaluator interprets their positions
// as alternative branches.
type IfNode struct {
	Path     string
	Children []Node
	Position *filepos.Position
}

type ElifNode struct {
	Path     string
	Children []Node
	Position *filepos.Position
}

type ElseNode struct {
	Children []Node
	Position *filepos.Position
}

type ForNode struct {
	SourcePath string
	Alias      string
	Children   []Node
	Position   *filepos.Position
}

func (n *TextNode) evaluate(out *strings.Builder, _ *Environment) error {
	out.WriteString(n.Content)
	return nil
}

// An unbound value renders as nothing; this deliberately distinguishes
// "unset" from "malformed". A bound non-scalar cannot be printed.
func (n *ValueNode) evaluate(out *strings.Builder, env *Environment) error {
	res, err := resolvePath(n.Path, env, n.Position)
	if err != nil {
		return err
	}
	if !res.found {
		return nil
	}

	scalar, ok := res.value.(Scalar)
	if !ok {
		return InvalidTagError{Tag: n.Path,
			Msg: fmt.Sprintf("Expected '%s' to be a scalar, but was a %s (maps and lists cannot be printed)", n.Path, res.value.TypeDesc()), Position: n.Position}
	}

	out.WriteString(scalar.Text())
	return nil
}

// An if condition is true when its path resolves; there is no notion of
// falsy scalars. On false the first elif whose condition resolves wins,
// then an else if present.
func (n *IfNode) evaluate(out *strings.Builder, env *Environment) error {
	body, branches := splitBranches(n.Children)

	res, err := resolvePath(n.Path, env, n.Position)
	if err != nil {
		return err
	}
	if res.found {
		return evaluateAll(body, out, env)
	}

	for _, branch := range branches {
		switch typedBranch := branch.(type) {
		case *ElifNode:
			branchRes, err := resolvePath(typedBranch.Path, env, typedBranch.Position)
			if err != nil {
				return err
			}
			if branchRes.found {
				return evaluateAll(typedBranch.Children, out, env)
			}

		case *ElseNode:
			return evaluateAll(typedBranch.Children, out, env)

		default:
			panic(fmt.Sprintf("Unknown branch node %T", branch))
		}
	}

	return nil
}

// Elif and else nodes are only reached through an enclosing if's dispatch.
func (n *ElifNode) evaluate(_ *strings.Builder, _ *Environment) error {
	return InvalidTagError{Tag: n.Path, Msg: "Expected 'elif' to follow an 'if'", Position: n.Position}
}

func (n *ElseNode) evaluate(_ *strings.Builder, _ *Environment) error {
	return InvalidTagError{Msg: "Expected 'else' to follow an 'if'", Position: n.Position}
}

func (n *ForNode) evaluate(out *strings.Builder, env *Environment) error {
	res, err := resolvePath(n.SourcePath, env, n.Position)
	if err != nil {
		return err
	}
	if !res.found {
		return MissingTagError{Tag: n.SourcePath,
			Msg: fmt.Sprintf("Expected for loop source '%s' to be bound", n.SourcePath), Position: n.Position}
	}

	list, ok := res.value.(List)
	if !ok {
		return InvalidTagError{Tag: n.SourcePath,
			Msg: fmt.Sprintf("Expected for loop source '%s' to be a list, but was a %s", n.SourcePath, res.value.TypeDesc()), Position: n.Position}
	}

	if _, found := env.Lookup(n.Alias); found {
		return InvalidTagError{Tag: n.Alias,
			Msg: fmt.Sprintf("Expected alias '%s' to not collide with an existing name", n.Alias), Position: n.Position}
	}

	for i := 0; i < list.Len(); i++ {
		loopEnv := env.extend(n.Alias, list.At(i))
		if err := evaluateAll(n.Children, out, loopEnv); err != nil {
			return err
		}
	}

	return nil
}

func evaluateAll(nodes []Node, out *strings.Builder, env *Environment) error {
	for _, node := range nodes {
		if err := node.evaluate(out, env); err != nil {
			return err
		}
	}
	return nil
}

// splitBranches separates an if node's own body from its elif/else
// siblings. The parser guarantees branch nodes only appear after the body.
func splitBranches(children []Node) ([]Node, []Node) {
	for i, child := range children {
		switch child.(type) {
		case *ElifNode, *ElseNode:
			return children[:i], children[i:]
		}
	}
	return children, nil
}
