// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"templet.dev/templet/pkg/files"
	"templet.dev/templet/pkg/orderedmap"
	"templet.dev/templet/pkg/template"
)

// DataValuesFlags collects the inputs that become the render environment.
type DataValuesFlags struct {
	EnvFromStrings []string
	EnvFromYAML    []string

	KVsFromStrings []string
	KVsFromYAML    []string
	KVsFromFiles   []string

	FromFiles []string
}

func (s *DataValuesFlags) Set(cmdFlags CmdFlags) {
	cmdFlags.StringArrayVar(&s.EnvFromStrings, "data-values-env", nil, "Extract data values (as strings) from prefixed env vars (format: PREFIX for PREFIX_all__key1=str) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.EnvFromYAML, "data-values-env-yaml", nil, "Extract data values (parsed as YAML) from prefixed env vars (format: PREFIX for PREFIX_all__key1=true) (can be specified multiple times)")

	cmdFlags.StringArrayVarP(&s.KVsFromStrings, "data-value", "v", nil, "Set specific data value to given value, as string (format: all.key1.subkey=123) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromYAML, "data-value-yaml", nil, "Set specific data value to given value, parsed as YAML (format: all.key1.subkey=true) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromFiles, "data-value-file", nil, "Set specific data value to given file contents, as string (format: all.key1.subkey=/file/path) (can be specified multiple times)")

	cmdFlags.StringArrayVar(&s.FromFiles, "data-values-file", nil, "Set multiple data values via a YAML, JSON or TOML document (file path, '-' or URL) (can be specified multiple times)")
}

type dataValuesFlagsSource struct {
	Values        []string
	TransformFunc func(string) (interface{}, error)
}

// Values merges all data values inputs into the render environment.
// Document files come first; env vars, then KV flags, then KV files take
// precedence over what was set before them.
func (s *DataValuesFlags) Values() (template.Map, error) {
	plainValFunc := func(rawVal string) (interface{}, error) { return rawVal, nil }

	yamlValFunc := func(rawVal string) (interface{}, error) {
		val, err := s.parseYAML(rawVal)
		if err != nil {
			return nil, fmt.Errorf("Deserializing YAML value: %s", err)
		}
		return val, nil
	}

	var result []*orderedmap.Map

	for _, file := range s.FromFiles {
		vals, err := s.document(file)
		if err != nil {
			return template.Map{}, fmt.Errorf("Extracting data values from file '%s': %s", file, err)
		}
		result = append(result, vals)
	}

	for _, src := range []dataValuesFlagsSource{{s.EnvFromStrings, plainValFunc}, {s.EnvFromYAML, yamlValFunc}} {
		for _, envPrefix := range src.Values {
			vals, err := s.env(envPrefix, src.TransformFunc)
			if err != nil {
				return template.Map{}, fmt.Errorf("Extracting data values from env under prefix '%s': %s", envPrefix, err)
			}
			result = append(result, vals)
		}
	}

	// KVs and files take precedence over environment variables
	for _, src := range []dataValuesFlagsSource{{s.KVsFromStrings, plainValFunc}, {s.KVsFromYAML, yamlValFunc}} {
		for _, kv := range src.Values {
			vals, err := s.kv(kv, src.TransformFunc)
			if err != nil {
				return template.Map{}, fmt.Errorf("Extracting data value from KV: %s", err)
			}
			result = append(result, vals)
		}
	}

	for _, file := range s.KVsFromFiles {
		vals, err := s.file(file)
		if err != nil {
			return template.Map{}, fmt.Errorf("Extracting data value from file: %s", err)
		}
		result = append(result, vals)
	}

	merged, err := s.convertIntoNestedMap(result)
	if err != nil {
		return template.Map{}, err
	}

	return s.box(merged)
}

func (s *DataValuesFlags) env(prefix string, valueFunc func(string) (interface{}, error)) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	for _, envVar := range os.Environ() {
		pieces := strings.SplitN(envVar, "=", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected env variable to be key-value pair (format: key=value)")
		}

		if !strings.HasPrefix(pieces[0], prefix+"_") {
			continue
		}

		val, err := valueFunc(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from env variable '%s': %s", pieces[0], err)
		}

		// '__' gets translated into a '.' since periods may not be liked by shells
		result.Set(strings.Replace(strings.TrimPrefix(pieces[0], prefix+"_"), "__", ".", -1), val)
	}

	return result, nil
}

func (s *DataValuesFlags) kv(kv string, valueFunc func(string) (interface{}, error)) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=value")
	}

	val, err := valueFunc(pieces[1])
	if err != nil {
		return nil, fmt.Errorf("Deserializing value for key '%s': %s", pieces[0], err)
	}

	result.Set(pieces[0], val)

	return result, nil
}

func (s *DataValuesFlags) file(kv string) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=/file/path")
	}

	contents, err := files.NewSource(pieces[1]).Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading file '%s': %s", pieces[1], err)
	}

	result.Set(pieces[0], string(contents))

	return result, nil
}

// document reads a whole YAML, JSON or TOML document (chosen by file
// extension; non-TOML defaults to YAML, which covers JSON) and exposes
// its top-level keys as data values.
func (s *DataValuesFlags) document(path string) (*orderedmap.Map, error) {
	contents, err := files.NewSource(path).Bytes()
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}

	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(contents, &doc)
	} else {
		err = yaml.Unmarshal(contents, &doc)
	}
	if err != nil {
		return nil, err
	}

	result := orderedmap.NewMap()
	for _, key := range sortedKeys(doc) {
		result.Set(key, doc[key])
	}

	return result, nil
}

func (s *DataValuesFlags) parseYAML(data string) (interface{}, error) {
	var val interface{}
	err := yaml.Unmarshal([]byte(data), &val)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *DataValuesFlags) convertIntoNestedMap(multipleVals []*orderedmap.Map) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()
	for _, vals := range multipleVals {
		err := vals.IterateErr(func(key string, val interface{}) error {
			keyPieces := strings.Split(key, ".")
			currMap := result
			for _, keyPiece := range keyPieces[:len(keyPieces)-1] {
				subMap, found := currMap.Get(keyPiece)
				if found {
					if typedSubMap, ok := subMap.(*orderedmap.Map); ok {
						currMap = typedSubMap
					} else {
						return fmt.Errorf("Expected key '%s' to not conflict with other data values at piece '%s'", key, keyPiece)
					}
				} else {
					newCurrMap := orderedmap.NewMap()
					currMap.Set(keyPiece, newCurrMap)
					currMap = newCurrMap
				}
			}
			currMap.Set(keyPieces[len(keyPieces)-1], val)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *DataValuesFlags) box(vals *orderedmap.Map) (template.Map, error) {
	boxed, err := template.NewValueFromPlain(vals)
	if err != nil {
		return template.Map{}, err
	}

	envMap, ok := boxed.(template.Map)
	if !ok {
		return template.Map{}, fmt.Errorf("Expected data values to box into a map, but was a %s", boxed.TypeDesc())
	}

	return envMap, nil
}

// deterministic merge order
func sortedKeys(doc map[string]interface{}) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
