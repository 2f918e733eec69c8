// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package playground

import (
	"fmt"

	"templet.dev/templet/pkg/template"
)

func renderTemplate(req renderRequest) (string, error) {
	boxed, err := template.NewValueFromPlain(req.Values)
	if err != nil {
		return "", fmt.Errorf("Deserializing values: %s", err)
	}

	env, ok := boxed.(template.Map)
	if !ok {
		return "", fmt.Errorf("Expected values to be a map, but was a %s", boxed.TypeDesc())
	}

	tpl, err := template.NewParser().Parse([]byte(req.Template), "playground")
	if err != nil {
		return "", err
	}

	return tpl.Render(env)
}
