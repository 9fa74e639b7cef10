package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spboyer/elevenlabs-mcp/internal/config"
)

var version = "dev"

// globals carries the persistent flags and the state built from them in
// PersistentPreRunE.
type globals struct {
	dir     string
	envFile string
	debug   bool

	cfg    *config.Config
	cfgErr error
	logger *zap.Logger
}

// annotationLenientConfig marks commands that still run when the
// configuration loaded with errors. They read the problems from
// globals.cfgErr instead.
const annotationLenientConfig = "lenient-config"

func newRootCommand() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "elevenlabs-mcp",
		Short: "ElevenLabs text-to-speech MCP server",
		Long: `elevenlabs-mcp exposes ElevenLabs text-to-speech as Model Context Protocol
tools over stdio.

Run without a subcommand to start the server. Use "check" to validate a local
setup, "demo" to exercise the tools against the live API and "examples" to
print example tool calls.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, lenient := cmd.Annotations[annotationLenientConfig]
			return g.setup(lenient)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, g, serveOptions{})
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&g.dir, "dir", ".", "Project directory")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", config.DefaultEnvFile, "Path of the .env file, relative to --dir")

	cmd.AddCommand(newServeCommand(g))
	cmd.AddCommand(newCheckCommand(g))
	cmd.AddCommand(newDemoCommand(g))
	cmd.AddCommand(newExamplesCommand(g))
	cmd.AddCommand(newInitCommand(g))

	return cmd
}

// setup loads the configuration and builds the logger. Logs always go to
// stderr; stdout carries MCP frames and command output. When lenient is set a
// configuration error is kept in cfgErr and the defaults are used.
func (g *globals) setup(lenient bool) error {
	cfg, err := config.Load(config.Options{Dir: g.dir, EnvFile: g.envFile})
	if err != nil && !lenient {
		return err
	}
	g.cfg = cfg
	g.cfgErr = err

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if g.debug {
		level.SetLevel(zapcore.DebugLevel)
	} else if l, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		level = l
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if !g.debug {
		zc.Development = false
		zc.DisableStacktrace = true
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	g.logger = logger.Named("elevenlabs-mcp")
	zap.ReplaceGlobals(g.logger)
	g.logger.Debug("configuration loaded",
		zap.String("env_file", cfg.EnvFile),
		zap.Bool("env_file_found", cfg.EnvFileFound),
		zap.Bool("api_key_set", cfg.HasAPIKey()),
		zap.String("output_dir", cfg.OutputDir))
	if g.cfgErr != nil {
		g.logger.Warn("configuration loaded with errors", zap.Error(g.cfgErr))
	}
	return nil
}

func execute(ctx context.Context) error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
