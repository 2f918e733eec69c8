// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
	"templet.dev/templet/pkg/template"
)

// Any input must either parse+render cleanly or fail with one of the
// engine's own error kinds; it must never panic.
func TestRenderArbitraryInputNeverPanics(t *testing.T) {
	f := fuzz.New().NumElements(0, 200)
	env := envWith(map[string]template.Value{
		"x":  template.NewScalar("v"),
		"xs": template.NewList(template.NewScalar("a")),
	})

	for i := 0; i < 1000; i++ {
		var data string
		f.Fuzz(&data)

		_, err := template.Render(data, env)
		if err == nil {
			continue
		}

		switch err.(type) {
		case template.InvalidTagError, template.ExpressionSyntaxError, template.MissingTagError:
		default:
			t.Fatalf("input %q: unexpected error kind %T: %s", data, err, err)
		}
	}
}

func TestRenderTagFreeInputPassesThrough(t *testing.T) {
	f := fuzz.New()

	for i := 0; i < 1000; i++ {
		var data string
		f.Fuzz(&data)
		data = strings.ReplaceAll(data, "{", "")

		out, err := template.Render(data, envWith(nil))
		require.NoError(t, err)
		require.Equal(t, data, out)
	}
}
