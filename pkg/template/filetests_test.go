// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k14s/difflib"
	"gopkg.in/yaml.v3"
	"templet.dev/templet/pkg/template"
)

// Each filetest has three sections separated by '+++' lines: template
// text, data values as YAML, and the expected output (or 'ERR:' followed
// by the expected error). A single trailing newline in the expected
// section is ignored so files can end with a newline.
func TestFiletests(t *testing.T) {
	files, err := os.ReadDir("filetests")
	if err != nil {
		t.Fatal(err)
	}

	var errs []error

	for _, file := range files {
		filePath := filepath.Join("filetests", file.Name())

		contents, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatal(err)
		}

		const (
			testSep   = "\n+++\n"
			errPrefix = "ERR:"
		)

		pieces := strings.SplitN(string(contents), testSep, 3)
		if len(pieces) != 3 {
			t.Fatalf("expected file %s to include two +++ separators", filePath)
		}

		expectedStr := strings.TrimSuffix(pieces[2], "\n")

		resultStr, testErr := evalFiletest(pieces[0], pieces[1])

		if strings.HasPrefix(expectedStr, errPrefix) {
			if testErr == nil {
				err = fmt.Errorf("expected eval error, but did not receive it")
			} else {
				err = expectEquals(testErr.Error(), strings.TrimPrefix(expectedStr, errPrefix))
			}
		} else {
			if testErr == nil {
				err = expectEquals(resultStr, expectedStr)
			} else {
				err = fmt.Errorf("eval error: %s", testErr)
			}
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s", file.Name(), err))
		}
	}

	for _, err := range errs {
		t.Errorf("%s", err.Error())
	}
}

func evalFiletest(tplData, valuesData string) (string, error) {
	var plainVals map[string]interface{}

	err := yaml.Unmarshal([]byte(valuesData), &plainVals)
	if err != nil {
		return "", fmt.Errorf("deserializing values: %s", err)
	}

	boxed, err := template.NewValueFromPlain(plainVals)
	if err != nil {
		return "", fmt.Errorf("boxing values: %s", err)
	}

	tpl, err := template.NewParser().Parse([]byte(tplData), "stdin")
	if err != nil {
		return "", err
	}

	return tpl.Render(boxed.(template.Map))
}

func expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(resultStr, "\n"), strings.Split(expectedStr, "\n"))
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n### expected %d chars:\n>>>%s<<<\n### diff:\n%s",
			len(resultStr), resultStr, len(expectedStr), expectedStr, diff)
	}
	return nil
}
