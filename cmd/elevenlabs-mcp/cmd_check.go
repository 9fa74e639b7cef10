package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spboyer/elevenlabs-mcp/internal/checks"
)

func newCheckCommand(g *globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Annotations: map[string]string{annotationLenientConfig: "true"},
		Use:   "check",
		Short: "Validate the local setup",
		Long: `Validate the local setup before running the server.

Checks, in order:
  runtime-version    Go toolchain that built the binary is recent enough
  project-structure  Required project files exist under --dir
  dependencies       Required modules are linked into the binary
  api-key            ELEVENLABS_API_KEY is set in the environment or .env
  output-directory   The audio output directory is writable
  server-probe       The MCP server builds and lists every tool

Every check runs even if an earlier one fails. Exits with status 1 when any
check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q (use text or json)", format)
			}

			results, err := checks.RunChecks(cmd.Context(), setupCheckers(g))
			if err != nil {
				g.logger.Debug("checker errors", zap.Error(err))
			}

			report := checks.NewReport(results)
			out := cmd.OutOrStdout()
			if format == "json" {
				err = report.WriteJSON(out)
			} else {
				err = report.WriteText(out)
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			if !report.Passed {
				return &CheckFailureError{Failed: report.Tally.Failed(), Total: report.Tally.Total}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

func setupCheckers(g *globals) []checks.Checker {
	return []checks.Checker{
		&checks.RuntimeChecker{},
		&checks.StructureChecker{Dir: g.dir},
		&checks.DependencyChecker{ReadBuildInfo: readBuildInfo},
		&checks.CredentialChecker{Dir: g.dir, EnvFile: g.envFile, ConfigErr: g.cfgErr},
		&checks.OutputDirChecker{Path: g.cfg.OutputDir},
		&checks.ServerProbe{Build: func() (checks.RequestHandler, error) {
			return newServer(g, nil)
		}},
	}
}
