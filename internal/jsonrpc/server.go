package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Server handles JSON-RPC 2.0 requests over a Transport.
type Server struct {
	registry *MethodRegistry
	logger   *zap.Logger
}

// NewServer creates a JSON-RPC server with the given method registry.
func NewServer(registry *MethodRegistry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{registry: registry, logger: logger}
}

// ServeTransport reads requests from the transport and writes responses,
// one request at a time. It returns nil when the reader reaches io.EOF,
// ctx.Err() when the context is done between requests, and the underlying
// error for any other read or write failure.
func (s *Server) ServeTransport(ctx context.Context, t *Transport) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, rawJSON, err := t.ReadRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if rawJSON == nil {
				s.logger.Debug("read error", zap.Error(err))
				return err
			}
			// Malformed line: report it and keep reading.
			s.logger.Debug("parse error", zap.Error(err))
			if writeErr := s.write(t, &Response{
				JSONRPC: Version,
				Error:   ErrParseError(err.Error()),
				ID:      json.RawMessage("null"),
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		resp := s.handle(ctx, req, rawJSON)
		if resp == nil {
			continue
		}
		if err := s.write(t, resp); err != nil {
			return err
		}
	}
}

// handle dispatches one request. It returns nil for notifications.
func (s *Server) handle(ctx context.Context, req *Request, rawJSON []byte) *Response {
	// Detect notifications: requests where the "id" key is absent from JSON.
	// Per JSON-RPC 2.0, notifications MUST NOT receive a response.
	isNotification := !hasIDField(rawJSON)

	if req.JSONRPC != Version {
		if isNotification {
			return nil
		}
		return &Response{
			JSONRPC: Version,
			Error:   ErrInvalidRequest(`jsonrpc field must be "2.0"`),
			ID:      req.ID,
		}
	}

	handler := s.registry.Lookup(req.Method)
	if handler == nil {
		s.logger.Debug("method not found", zap.String("method", req.Method))
		if isNotification {
			return nil
		}
		return &Response{
			JSONRPC: Version,
			Error:   ErrMethodNotFound(req.Method),
			ID:      req.ID,
		}
	}

	start := time.Now()
	result, rpcErr := s.invoke(ctx, handler, req)
	s.logger.Debug("handled request",
		zap.String("method", req.Method),
		zap.Bool("notification", isNotification),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("error", rpcErr != nil))

	if isNotification {
		return nil
	}

	resp := &Response{
		JSONRPC: Version,
		ID:      req.ID,
	}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// invoke runs the handler, converting a panic into an internal error.
func (s *Server) invoke(ctx context.Context, h Handler, req *Request) (result any, rpcErr *Error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panicked",
				zap.String("method", req.Method),
				zap.Any("panic", r))
			result, rpcErr = nil, ErrInternalError(fmt.Sprintf("panic: %v", r))
		}
	}()
	return h(ctx, req.Params)
}

func (s *Server) write(t *Transport, resp *Response) error {
	if err := t.WriteResponse(resp); err != nil {
		s.logger.Debug("write error", zap.Error(err))
		return err
	}
	return nil
}

// hasIDField checks whether the raw JSON contains an "id" key at the top level.
func hasIDField(raw []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	_, exists := obj["id"]
	return exists
}

// ServeStdio runs the server on the given reader and writer, normally
// os.Stdin and os.Stdout.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return s.ServeTransport(ctx, NewTransport(stdin, stdout))
}
