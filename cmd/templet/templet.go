// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
	"templet.dev/templet/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultTempletCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "templet: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
