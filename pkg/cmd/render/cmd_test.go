// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmdrender "templet.dev/templet/pkg/cmd/render"
)

func TestRenderCmdWritesOutputFile(t *testing.T) {
	dir := t.TempDir()

	tplPath := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(tplPath, []byte("Hello, {$name}!"), 0600))

	outPath := filepath.Join(dir, "out.txt")

	cmd := cmdrender.NewCmd(cmdrender.NewOptions())
	cmd.SetArgs([]string{"-f", tplPath, "-v", "name=John", "--output-file", outPath})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Hello, John!", string(out))
}

func TestRenderCmdConcatenatesMultipleTemplates(t *testing.T) {
	dir := t.TempDir()

	tpl1 := filepath.Join(dir, "one.txt")
	require.NoError(t, os.WriteFile(tpl1, []byte("one:{$x};"), 0600))
	tpl2 := filepath.Join(dir, "two.txt")
	require.NoError(t, os.WriteFile(tpl2, []byte("two:{$x};"), 0600))

	outPath := filepath.Join(dir, "out.txt")

	cmd := cmdrender.NewCmd(cmdrender.NewOptions())
	cmd.SetArgs([]string{"-f", tpl1, "-f", tpl2, "-v", "x=v", "-o", outPath})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "one:v;two:v;", string(out))
}

func TestRenderCmdSurfacesTemplateErrors(t *testing.T) {
	dir := t.TempDir()

	tplPath := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(tplPath, []byte("{% for xs %}"), 0600))

	cmd := cmdrender.NewCmd(cmdrender.NewOptions())
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"-f", tplPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid expression")
}

func TestRenderCmdRequiredVersion(t *testing.T) {
	cmd := cmdrender.NewCmd(cmdrender.NewOptions())
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--required-version", "99.0.0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum required version")
}
