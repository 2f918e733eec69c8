// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"templet.dev/templet/pkg/filepos"
)

// resolution is the result of resolving a path expression: either a value,
// or "not found". Not found is not an error at this layer; callers decide
// whether absence is fatal.
type resolution struct {
	value Value
	found bool
}

type pathSegment struct {
	name    string
	indexes []int
}

// resolvePath walks a dotted/indexed path expression through the
// environment. A missing key or an out-of-range index yields "not found";
// indexing a non-list or dotting through a non-map is InvalidTagError.
func resolvePath(expr string, env *Environment, pos *filepos.Position) (resolution, error) {
	segments := splitPath(expr)

	var currentMap mapLookup = env
	for i, segment := range segments {
		val, found := currentMap.Lookup(segment.name)
		if !found {
			return resolution{}, nil
		}

		for _, idx := range segment.indexes {
			list, ok := val.(List)
			if !ok {
				return resolution{}, InvalidTagError{Tag: expr,
					Msg: fmt.Sprintf("Expected '%s' to be a list to index into it, but was a %s", segment.name, val.TypeDesc()), Position: pos}
			}
			if idx >= list.Len() {
				return resolution{}, nil
			}
			val = list.At(idx)
		}

		if i == len(segments)-1 {
			return resolution{value: val, found: true}, nil
		}

		nextMap, ok := val.(Map)
		if !ok {
			return resolution{}, InvalidTagError{Tag: expr,
				Msg: fmt.Sprintf("Expected '%s' to be a map (dot notation is only valid on maps), but was a %s", segment.name, val.TypeDesc()), Position: pos}
		}
		currentMap = nextMap
	}

	panic("Path expression had no segments")
}

type mapLookup interface {
	Lookup(name string) (Value, bool)
}

func (m Map) Lookup(name string) (Value, bool) { return m.Get(name) }

// splitPath assumes expr already passed validatePathExpr.
func splitPath(expr string) []pathSegment {
	var segments []pathSegment
	for _, rawSegment := range strings.Split(expr, ".") {
		segment := pathSegment{name: rawSegment}
		if open := strings.IndexByte(rawSegment, '['); open != -1 {
			segment.name = rawSegment[:open]
			for _, rawIdx := range strings.Split(rawSegment[open:], "[") {
				if len(rawIdx) == 0 {
					continue
				}
				idx, err := strconv.Atoi(strings.TrimSuffix(rawIdx, "]"))
				if err != nil {
					// digits validated at parse time, so only int overflow
					// lands here; no list is that long
					idx = math.MaxInt
				}
				segment.indexes = append(segment.indexes, idx)
			}
		}
		segments = append(segments, segment)
	}
	return segments
}
