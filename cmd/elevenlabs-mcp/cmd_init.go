package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/elevenlabs-mcp/internal/checks"
	"github.com/spboyer/elevenlabs-mcp/internal/wizard"
)

func newInitCommand(g *globals) *cobra.Command {
	var (
		apiKey string
		force  bool
	)

	cmd := &cobra.Command{
		Annotations: map[string]string{annotationLenientConfig: "true"},
		Use:   "init",
		Short: "Write a .env file with your ElevenLabs settings",
		Long: `Write a .env file with your ElevenLabs settings.

With --api-key the file is written without prompting, using the current
configuration for every other value. Otherwise an interactive form asks for
the API key, default voice, model, output format and output directory.

An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := g.envFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(g.dir, path)
			}

			answers := wizard.DefaultAnswers(g.cfg)
			if apiKey != "" {
				answers.APIKey = apiKey
			} else {
				a, err := wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), answers)
				if err != nil {
					return err
				}
				answers = *a
			}

			if err := wizard.WriteEnvFile(path, answers, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (ELEVENLABS_API_KEY=%s)\n", path, checks.MaskKey(answers.APIKey))
			fmt.Fprintln(cmd.OutOrStdout(), "Next: elevenlabs-mcp check")
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key to write without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .env file")
	return cmd
}
