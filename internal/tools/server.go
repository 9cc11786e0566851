package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	pullweights "github.com/pullweights/mcp"
)

// serverName identifies the adapter to MCP clients.
const serverName = "pullweights"

// NewServer builds an MCP server with every registry tool registered.
func NewServer(tb *Toolbox) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: pullweights.Version,
	}, &mcp.ServerOptions{
		HasTools: true,
	})

	server.AddTool(searchTool(), handler(tb, "search", (*Toolbox).Search))
	server.AddTool(lsTool(), handler(tb, "ls", (*Toolbox).Ls))
	server.AddTool(inspectTool(), handler(tb, "inspect", (*Toolbox).Inspect))
	server.AddTool(tagsTool(), handler(tb, "tags", (*Toolbox).Tags))
	server.AddTool(pullTool(), handler(tb, "pull", (*Toolbox).Pull))
	server.AddTool(pushTool(), handler(tb, "push", (*Toolbox).Push))
	server.AddTool(updateTool(), handler(tb, "update", (*Toolbox).Update))

	return server
}

// Serve runs the MCP server over stdio until ctx is cancelled or the client
// disconnects. Stdout carries the protocol; logging goes to stderr only.
func Serve(ctx context.Context, tb *Toolbox) error {
	return NewServer(tb).Run(ctx, &mcp.StdioTransport{})
}

// handler adapts a typed Toolbox method to the MCP tool-handler shape. It
// decodes the raw arguments, invokes the method, and folds any failure into
// the result's error channel as a single text message so the calling model
// can read it. Each invocation gets a ULID for log correlation.
func handler[A any](tb *Toolbox, name string, fn func(*Toolbox, context.Context, A) (string, error)) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args A
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return errorResult(fmt.Sprintf("invalid arguments for %s: %v", name, err)), nil
			}
		}

		id := ulid.Make().String()
		start := time.Now()
		tb.log.Debug("tool call", "id", id, "tool", name)

		text, err := fn(tb, ctx, args)
		if err != nil {
			tb.log.Debug("tool failed",
				"id", id, "tool", name, "duration", time.Since(start), "error", err)

			return errorResult(err.Error()), nil
		}

		tb.log.Debug("tool done", "id", id, "tool", name, "duration", time.Since(start))

		return textResult(text), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}
