// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"templet.dev/templet/pkg/playground"
)

type PlaygroundOptions struct {
	ListenAddr string
}

func NewPlaygroundOptions() *PlaygroundOptions {
	return &PlaygroundOptions{}
}

func NewPlaygroundCmd(o *PlaygroundOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Starts playground HTTP server",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	return cmd
}

func (o *PlaygroundOptions) Run() error {
	return playground.NewServer(playground.ServerOpts{
		ListenAddr: o.ListenAddr,
	}).Run()
}
