package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/spboyer/elevenlabs-mcp/internal/jsonrpc"
	"github.com/spboyer/elevenlabs-mcp/internal/metrics"
	"github.com/spboyer/elevenlabs-mcp/internal/tools"
	"github.com/spboyer/elevenlabs-mcp/internal/validation"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "elevenlabs-mcp"
	instructions    = "Text-to-speech tools backed by the ElevenLabs API. " +
		"Use elevenlabs_list_voices to discover voice IDs before synthesizing speech."
)

// ToolProvider supplies tool definitions and executes calls.
type ToolProvider interface {
	Tools() []mcpgo.Tool
	Call(ctx context.Context, name string, args map[string]any) (*mcpgo.CallToolResult, error)
}

var _ ToolProvider = (*tools.Toolset)(nil)

// Server handles MCP protocol messages on top of a JSON-RPC method registry.
type Server struct {
	provider  ToolProvider
	validator *validation.ToolValidator
	reg       *jsonrpc.MethodRegistry
	rpc       *jsonrpc.Server
	metrics   *metrics.Metrics
	logger    *zap.Logger
	version   string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records RPC and tool call metrics to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// NewServer creates an MCP server for the given tools. It fails if a tool's
// input schema does not compile.
func NewServer(provider ToolProvider, opts ...Option) (*Server, error) {
	s := &Server{
		provider: provider,
		reg:      jsonrpc.NewMethodRegistry(),
		logger:   zap.NewNop(),
		version:  "0.0.0-dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	validator, err := validation.NewToolValidator(provider.Tools())
	if err != nil {
		return nil, fmt.Errorf("compiling tool schemas: %w", err)
	}
	s.validator = validator

	s.register("initialize", s.handleInitialize)
	s.register("notifications/initialized", func(context.Context, json.RawMessage) (any, *jsonrpc.Error) {
		s.logger.Debug("client acknowledged initialization")
		return struct{}{}, nil
	})
	s.register("ping", func(context.Context, json.RawMessage) (any, *jsonrpc.Error) {
		return struct{}{}, nil
	})
	s.register("tools/list", s.handleToolsList)
	s.register("tools/call", s.handleToolsCall)

	s.rpc = jsonrpc.NewServer(s.reg, s.logger)
	return s, nil
}

func (s *Server) register(method string, h jsonrpc.Handler) {
	s.reg.Register(method, func(ctx context.Context, params json.RawMessage) (any, *jsonrpc.Error) {
		if s.metrics != nil {
			s.metrics.ObserveRPC(method)
		}
		return h(ctx, params)
	})
}

// RPC returns the JSON-RPC server, for use with a TCP listener.
func (s *Server) RPC() *jsonrpc.Server {
	return s.rpc
}

// HandleRequest processes a single request in-process. It returns nil for
// notifications.
func (s *Server) HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	handler := s.reg.Lookup(req.Method)
	if handler == nil {
		if req.ID == nil {
			return nil
		}
		return &jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			Error:   jsonrpc.ErrMethodNotFound(req.Method),
			ID:      req.ID,
		}
	}

	result, rpcErr := handler(ctx, req.Params)
	if req.ID == nil {
		return nil
	}
	resp := &jsonrpc.Response{JSONRPC: jsonrpc.Version, ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// --- initialize ---

type initializeResult struct {
	ProtocolVersion string               `json:"protocolVersion"`
	Capabilities    capabilities         `json:"capabilities"`
	ServerInfo      mcpgo.Implementation `json:"serverInfo"`
	Instructions    string               `json:"instructions,omitempty"`
}

type capabilities struct {
	Tools *toolsCap `json:"tools,omitempty"`
}

type toolsCap struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type initializeParams struct {
	ProtocolVersion string               `json:"protocolVersion"`
	ClientInfo      mcpgo.Implementation `json:"clientInfo"`
}

func (s *Server) handleInitialize(_ context.Context, params json.RawMessage) (any, *jsonrpc.Error) {
	var p initializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, jsonrpc.ErrInvalidParams(err.Error())
		}
	}
	s.logger.Info("client initialized",
		zap.String("client", p.ClientInfo.Name),
		zap.String("client_version", p.ClientInfo.Version),
		zap.String("protocol_version", p.ProtocolVersion))

	return initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    capabilities{Tools: &toolsCap{}},
		ServerInfo:      mcpgo.Implementation{Name: serverName, Version: s.version},
		Instructions:    instructions,
	}, nil
}

// --- tools/list ---

func (s *Server) handleToolsList(context.Context, json.RawMessage) (any, *jsonrpc.Error) {
	return mcpgo.ListToolsResult{Tools: s.provider.Tools()}, nil
}

// --- tools/call ---

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, *jsonrpc.Error) {
	var p toolsCallParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, jsonrpc.ErrInvalidParams(err.Error())
	}
	if p.Name == "" {
		return nil, jsonrpc.ErrInvalidParams("name is required")
	}

	start := time.Now()
	result, outcome := s.callTool(ctx, p.Name, p.Arguments)
	if s.metrics != nil {
		s.metrics.ObserveToolCall(p.Name, outcome, time.Since(start))
	}
	return result, nil
}

// callTool validates and runs one tool call. Failures are reported in the
// result with isError set rather than as JSON-RPC errors.
func (s *Server) callTool(ctx context.Context, name string, args map[string]any) (*mcpgo.CallToolResult, string) {
	if errs := s.validator.Validate(name, args); len(errs) > 0 {
		s.logger.Debug("invalid tool arguments", zap.String("tool", name), zap.Strings("errors", errs))
		msg := fmt.Sprintf("invalid arguments for %s:\n- %s", name, strings.Join(errs, "\n- "))
		return mcpgo.NewToolResultError(msg), metrics.OutcomeInvalid
	}

	result, err := s.provider.Call(ctx, name, args)
	if err != nil {
		if errors.Is(err, tools.ErrToolNotRegistered) {
			return mcpgo.NewToolResultError(fmt.Sprintf("unknown tool: %s", name)), metrics.OutcomeInvalid
		}
		s.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		return mcpgo.NewToolResultError(err.Error()), metrics.OutcomeError
	}
	if result == nil {
		return mcpgo.NewToolResultError("tool returned no result"), metrics.OutcomeError
	}
	if result.IsError {
		return result, metrics.OutcomeError
	}
	return result, metrics.OutcomeSuccess
}
