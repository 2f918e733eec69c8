// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
	cmdrender "templet.dev/templet/pkg/cmd/render"
	"templet.dev/templet/pkg/version"
)

type TempletOptions struct{}

func NewDefaultTempletOptions() *TempletOptions {
	return &TempletOptions{}
}

func NewDefaultTempletCmd() *cobra.Command {
	return NewTempletCmd(NewDefaultTempletOptions())
}

func NewTempletCmd(o *TempletOptions) *cobra.Command {
	cmd := cmdrender.NewCmd(cmdrender.NewOptions())

	cmd.Use = "templet"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "templet renders text templates"
	cmd.Long = `templet renders text templates.

Templates interleave literal text with '{$ name }' value tags and
'{% if %}' / '{% for %}' block tags, filled in from data values.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(cmdrender.NewCmd(cmdrender.NewOptions())) // same as top-level command
	cmd.AddCommand(NewPlaygroundCmd(NewPlaygroundOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
