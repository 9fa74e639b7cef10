package mcp

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// ServeStdio runs the MCP server on the given reader/writer (typically
// stdin/stdout) until the reader is exhausted or ctx is done.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	s.logger.Info("serving MCP over stdio", zap.Int("tools", len(s.provider.Tools())))
	return s.rpc.ServeStdio(ctx, r, w)
}
