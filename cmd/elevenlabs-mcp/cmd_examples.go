package main

import (
	"github.com/spf13/cobra"

	"github.com/spboyer/elevenlabs-mcp/internal/catalog"
)

func newExamplesCommand(_ *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Print example tool calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return catalog.Print(cmd.OutOrStdout())
		},
	}
}
