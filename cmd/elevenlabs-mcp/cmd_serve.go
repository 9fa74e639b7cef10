package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/spboyer/elevenlabs-mcp/internal/jsonrpc"
	"github.com/spboyer/elevenlabs-mcp/internal/metrics"
)

type serveOptions struct {
	tcpAddr        string
	tcpAllowRemote bool
	metricsAddr    string
}

func newServeCommand(g *globals) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server.

By default, the server communicates over stdin/stdout using newline-delimited
JSON-RPC 2.0, which is how MCP clients launch it.

Use --tcp to listen on a TCP address instead (useful for debugging).
TCP defaults to loopback (127.0.0.1). Use --tcp-allow-remote to bind
to all interfaces.

Use --metrics-addr to expose Prometheus metrics and a health check over HTTP.

Tools:
  elevenlabs_list_voices            List available voices
  elevenlabs_get_models             List text-to-speech models
  elevenlabs_text_to_speech         Convert text to an audio file
  elevenlabs_get_voice_info         Get details about one voice
  elevenlabs_stream_text_to_speech  Stream text-to-speech into an audio file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.tcpAddr, "tcp", "", "TCP address to listen on (e.g., :9000)")
	cmd.Flags().BoolVar(&opts.tcpAllowRemote, "tcp-allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the server to the network with no authentication)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /healthz on this address (e.g., 127.0.0.1:9090)")

	return cmd
}

func runServe(cmd *cobra.Command, g *globals, opts serveOptions) error {
	logger := g.logger
	if !g.cfg.HasAPIKey() {
		logger.Warn("ELEVENLABS_API_KEY is not set; tool calls will fail until it is configured")
	}

	var m *metrics.Metrics
	if opts.metricsAddr != "" {
		m = metrics.New(logger.Named("metrics"))
	}
	srv, err := newServer(g, m)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	if m != nil {
		eg.Go(func() error {
			return metrics.Serve(ctx, opts.metricsAddr, m)
		})
	}

	eg.Go(func() error {
		// The metrics server follows the transport's lifetime.
		defer cancel()

		if opts.tcpAddr != "" {
			addr := resolveTCPAddr(opts.tcpAddr, opts.tcpAllowRemote, logger)
			listener, err := jsonrpc.NewTCPListener(addr, srv.RPC())
			if err != nil {
				return fmt.Errorf("failed to start TCP server: %w", err)
			}
			defer listener.Close() //nolint:errcheck
			logger.Info("MCP server listening", zap.Stringer("addr", listener.Addr()))
			return ignoreCancel(listener.Serve(ctx))
		}

		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logger.Warn("stdin is a terminal; the server expects an MCP client to send JSON-RPC frames")
		}
		// A read from stdin cannot be interrupted, so stop waiting on it
		// once ctx is done.
		done := make(chan error, 1)
		go func() { done <- srv.ServeStdio(ctx, in, cmd.OutOrStdout()) }()
		select {
		case err := <-done:
			return ignoreCancel(err)
		case <-ctx.Done():
			return nil
		}
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	// Surface an interrupt to main for the exit code.
	return cmd.Context().Err()
}

// ignoreCancel drops the error a serve loop returns when it is stopped
// through its context.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resolveTCPAddr keeps TCP addresses on loopback unless allowRemote is set.
func resolveTCPAddr(addr string, allowRemote bool, logger *zap.Logger) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// A bare port such as "9000".
		host = ""
		port = addr
	}

	if allowRemote {
		logger.Warn("TCP server binding to all interfaces; no authentication is provided",
			zap.String("address", addr))
		return addr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		return net.JoinHostPort("127.0.0.1", port)
	}
	return addr
}
