// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

// Environment is the set of bindings visible during one evaluation pass.
// For loops extend it with an alias binding; the extension is an overlay
// over the parent, so parent bindings are never copied or mutated.
type Environment struct {
	parent *Environment
	alias  string
	value  Value
	root   Map
}

func NewEnvironment(root Map) *Environment {
	return &Environment{root: root}
}

func (e *Environment) extend(alias string, value Value) *Environment {
	return &Environment{parent: e, alias: alias, value: value}
}

// Lookup finds a top-level binding: the nearest enclosing loop alias,
// falling through to the root map.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if env.parent == nil {
			return env.root.Get(name)
		}
		if env.alias == name {
			return env.value, true
		}
	}
	return nil, false
}
