package main

import (
	"github.com/spboyer/elevenlabs-mcp/internal/elevenlabs"
	"github.com/spboyer/elevenlabs-mcp/internal/mcp"
	"github.com/spboyer/elevenlabs-mcp/internal/metrics"
	"github.com/spboyer/elevenlabs-mcp/internal/tools"
)

// newToolset builds the API client and tool handlers from the loaded
// configuration. m may be nil.
func newToolset(g *globals, m *metrics.Metrics) (*tools.Toolset, error) {
	opts := []elevenlabs.Option{
		elevenlabs.WithLogger(g.logger.Named("api")),
		elevenlabs.WithRateLimit(g.cfg.RequestsPerSecond),
	}
	if m != nil {
		opts = append(opts, elevenlabs.WithRecorder(m))
	}
	client := elevenlabs.NewClient(g.cfg.APIKey, g.cfg.BaseURL, g.cfg.Timeout, opts...)

	return tools.New(client, tools.Settings{
		DefaultVoiceID: g.cfg.DefaultVoiceID,
		DefaultModelID: g.cfg.DefaultModelID,
		OutputFormat:   g.cfg.OutputFormat,
		OutputDir:      g.cfg.OutputDir,
	}, g.logger.Named("tools"))
}

// newServer builds the MCP server over a fresh tool set.
func newServer(g *globals, m *metrics.Metrics) (*mcp.Server, error) {
	ts, err := newToolset(g, m)
	if err != nil {
		return nil, err
	}
	opts := []mcp.Option{mcp.WithLogger(g.logger.Named("mcp")), mcp.WithVersion(version)}
	if m != nil {
		opts = append(opts, mcp.WithMetrics(m))
	}
	return mcp.NewServer(ts, opts...)
}
