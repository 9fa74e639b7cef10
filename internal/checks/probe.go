package checks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/spboyer/elevenlabs-mcp/internal/jsonrpc"
	"github.com/spboyer/elevenlabs-mcp/internal/tools"
)

// RequestHandler answers JSON-RPC requests in-process.
type RequestHandler interface {
	HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response
}

// ServerProbe builds the MCP server and round-trips initialize and
// tools/list against it without any transport.
type ServerProbe struct {
	Build func() (RequestHandler, error)
	// Expected defaults to the names of tools.Definitions.
	Expected []string
}

func (c *ServerProbe) Name() string  { return "server-probe" }
func (c *ServerProbe) Title() string { return "Testing server construction..." }

func (c *ServerProbe) Check(ctx context.Context) (r *CheckResult, err error) {
	r = &CheckResult{Name: c.Name(), Title: c.Title()}

	defer func() {
		if p := recover(); p != nil {
			r, err = c.buildError(fmt.Errorf("panic: %v", p)), nil
		}
	}()

	if c.Build == nil {
		return nil, errors.New("no server factory configured")
	}
	srv, err := c.Build()
	if err != nil {
		if errors.Is(err, tools.ErrToolNotRegistered) {
			return c.notFound(err.Error()), nil
		}
		return c.buildError(err), nil
	}

	if _, err := call(ctx, srv, "initialize", `{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"elevenlabs-mcp-check","version":"0"}}`); err != nil {
		return c.buildError(err), nil
	}
	raw, err := call(ctx, srv, "tools/list", `{}`)
	if err != nil {
		return c.buildError(err), nil
	}
	var list mcpgo.ListToolsResult
	if err := json.Unmarshal(raw, &list); err != nil {
		return c.buildError(fmt.Errorf("decoding tools/list result: %w", err)), nil
	}

	var names []string
	for _, t := range list.Tools {
		names = append(names, t.Name)
	}
	for _, want := range c.expected() {
		if !slices.Contains(names, want) {
			return c.notFound(fmt.Sprintf("%s: %s", tools.ErrToolNotRegistered, want)), nil
		}
	}

	r.Passed = true
	r.ok("Server builds successfully (%d tools)", len(names))
	r.Summary = fmt.Sprintf("server builds successfully (%d tools)", len(names))
	r.Data = map[string]any{"tools": names}
	return r, nil
}

func (c *ServerProbe) expected() []string {
	if c.Expected != nil {
		return c.Expected
	}
	var names []string
	for _, d := range tools.Definitions() {
		names = append(names, d.Name)
	}
	return names
}

func (c *ServerProbe) notFound(detail string) *CheckResult {
	r := &CheckResult{Name: c.Name(), Title: c.Title()}
	r.fail("Server tool not found: %s", detail)
	r.Summary = "server tool not found: " + detail
	return r
}

func (c *ServerProbe) buildError(err error) *CheckResult {
	r := &CheckResult{Name: c.Name(), Title: c.Title()}
	r.fail("Error building server: %v", err)
	r.Summary = "error building server: " + err.Error()
	return r
}

func call(ctx context.Context, srv RequestHandler, method, params string) (json.RawMessage, error) {
	resp := srv.HandleRequest(ctx, &jsonrpc.Request{
		JSONRPC: jsonrpc.Version,
		Method:  method,
		Params:  json.RawMessage(params),
		ID:      json.RawMessage(`1`),
	})
	if resp == nil {
		return nil, fmt.Errorf("%s: no response", method)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s", method, resp.Error.Message)
	}
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: encoding result: %w", method, err)
	}
	return raw, nil
}
