// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strconv"
	"time"

	"templet.dev/templet/pkg/orderedmap"
)

// Value is the unit of the data environment a template is rendered against.
// It is a closed variant over Scalar, List and Map; values are immutable
// once constructed.
type Value interface {
	TypeDesc() string
	sealedValue()
}

var _ = []Value{Scalar{}, List{}, Map{}}

// Scalar is leaf text.
type Scalar struct {
	text string
}

// List is an ordered, 0-based index-addressable sequence of values.
type List struct {
	items []Value
}

// Map is a key-addressable collection of values. Keys are unique;
// insertion order is not significant.
type Map struct {
	items map[string]Value
}

func NewScalar(text string) Scalar { return Scalar{text} }

func NewList(items ...Value) List {
	copied := make([]Value, len(items))
	copy(copied, items)
	return List{copied}
}

func NewMap(items map[string]Value) Map {
	copied := make(map[string]Value, len(items))
	for k, v := range items {
		copied[k] = v
	}
	return Map{copied}
}

func (s Scalar) Text() string { return s.text }

func (l List) Len() int { return len(l.items) }

func (l List) At(i int) Value { return l.items[i] }

func (m Map) Len() int { return len(m.items) }

func (m Map) Get(key string) (Value, bool) {
	val, found := m.items[key]
	return val, found
}

func (Scalar) TypeDesc() string { return "scalar" }
func (List) TypeDesc() string   { return "list" }
func (Map) TypeDesc() string    { return "map" }

func (Scalar) sealedValue() {}
func (List) sealedValue()   {}
func (Map) sealedValue()    {}

// NewValueFromPlain boxes plain Go data (as produced by YAML, JSON or TOML
// decoding) into the engine's value model. Numbers and bools become their
// textual form; nil becomes an empty scalar.
func NewValueFromPlain(val interface{}) (Value, error) {
	switch typedVal := val.(type) {
	case nil:
		return NewScalar(""), nil

	case string:
		return NewScalar(typedVal), nil

	case bool:
		return NewScalar(strconv.FormatBool(typedVal)), nil

	case int:
		return NewScalar(strconv.Itoa(typedVal)), nil

	case int64:
		return NewScalar(strconv.FormatInt(typedVal, 10)), nil

	case uint64:
		return NewScalar(strconv.FormatUint(typedVal, 10)), nil

	case float64:
		return NewScalar(strconv.FormatFloat(typedVal, 'g', -1, 64)), nil

	case time.Time:
		return NewScalar(typedVal.Format(time.RFC3339)), nil

	case []interface{}:
		items := make([]Value, 0, len(typedVal))
		for _, item := range typedVal {
			newItem, err := NewValueFromPlain(item)
			if err != nil {
				return nil, err
			}
			items = append(items, newItem)
		}
		return List{items}, nil

	case map[string]interface{}:
		items := make(map[string]Value, len(typedVal))
		for k, v := range typedVal {
			newVal, err := NewValueFromPlain(v)
			if err != nil {
				return nil, err
			}
			items[k] = newVal
		}
		return Map{items}, nil

	case map[interface{}]interface{}:
		items := make(map[string]Value, len(typedVal))
		for k, v := range typedVal {
			strK, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("Expected map key to be a string, but was %T", k)
			}
			newVal, err := NewValueFromPlain(v)
			if err != nil {
				return nil, err
			}
			items[strK] = newVal
		}
		return Map{items}, nil

	case *orderedmap.Map:
		items := make(map[string]Value, typedVal.Len())
		err := typedVal.IterateErr(func(k string, v interface{}) error {
			newVal, err := NewValueFromPlain(v)
			if err != nil {
				return err
			}
			items[k] = newVal
			return nil
		})
		if err != nil {
			return nil, err
		}
		return Map{items}, nil

	default:
		return nil, fmt.Errorf("Expected value to be a string, number, bool, list or map, but was %T", val)
	}
}
