// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"time"

	"github.com/spf13/cobra"
	cmdcore "templet.dev/templet/pkg/cmd/core"
	"templet.dev/templet/pkg/files"
	"templet.dev/templet/pkg/template"
	"templet.dev/templet/pkg/version"
)

type RenderOptions struct {
	Debug           bool
	RequiredVersion string

	TemplateFiles   []string
	OutputFile      string
	DataValuesFlags DataValuesFlags
}

func NewOptions() *RenderOptions {
	return &RenderOptions{}
}

func NewCmd(o *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render text templates against provided data values",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.TemplateFiles, "file", "f", nil, "Template file (file path, '-' for stdin, or http(s) URL) (can be specified multiple times)")
	cmd.Flags().StringVarP(&o.OutputFile, "output-file", "o", "", "Write rendered output to given file (default: stdout)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().StringVar(&o.RequiredVersion, "required-version", "", "Fail if templet version does not meet the given minimum")
	o.DataValuesFlags.Set(cmd.Flags())
	return cmd
}

func (o *RenderOptions) Run() error {
	ui := cmdcore.NewPlainUI(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	if len(o.RequiredVersion) > 0 {
		if err := version.RequireAtLeast(o.RequiredVersion); err != nil {
			return err
		}
	}

	out, err := o.render(ui)
	if err != nil {
		return err
	}

	if len(o.OutputFile) > 0 {
		return files.NewOutputFile(o.OutputFile, []byte(out)).Create()
	}

	ui.Printf("%s", out)
	return nil
}

// render concatenates the rendered output of all template inputs, in the
// order they were given, all against the same environment.
func (o *RenderOptions) render(ui files.UI) (string, error) {
	env, err := o.DataValuesFlags.Values()
	if err != nil {
		return "", err
	}

	var result string

	for _, path := range o.TemplateFiles {
		src := files.NewSource(path)

		ui.Debugf("rendering %s\n", src.Description())

		data, err := src.Bytes()
		if err != nil {
			return "", err
		}

		relPath, err := src.RelativePath()
		if err != nil {
			return "", err
		}

		tpl, err := template.NewParser().Parse(data, relPath)
		if err != nil {
			return "", err
		}

		out, err := tpl.Render(env)
		if err != nil {
			return "", err
		}

		result += out
	}

	return result, nil
}
