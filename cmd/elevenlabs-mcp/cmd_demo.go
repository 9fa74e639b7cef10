package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/elevenlabs-mcp/internal/demo"
)

func newDemoCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Exercise the tools against the live ElevenLabs API",
		Long: `Call the list-models, list-voices and text-to-speech tools directly and
print what they return. The generated sample is written to
<output dir>/demo_sample.mp3.

Requires ELEVENLABS_API_KEY. Each step is reported separately; a failing step
does not stop the demo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner := &demo.Runner{
				HasAPIKey: g.cfg.HasAPIKey(),
				OutputDir: g.cfg.OutputDir,
				Out:       cmd.OutOrStdout(),
				Progress:  cmd.ErrOrStderr(),
				Logger:    g.logger.Named("demo"),
			}
			if runner.HasAPIKey {
				ts, err := newToolset(g, nil)
				if err != nil {
					return fmt.Errorf("building tools: %w", err)
				}
				runner.Handlers = ts
			}

			err := runner.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.OutOrStdout(), "\n🛑 Demo interrupted by user")
			}
			return err
		},
	}
}
