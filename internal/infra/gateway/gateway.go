package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/toolset"
)

// Dispatcher executes a named tool and always produces an envelope.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) domain.Result
}

// Gateway exposes the tool catalogue over MCP.
type Gateway struct {
	server     *mcp.Server
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewGateway(catalog *toolset.Catalog, dispatcher Dispatcher, logger *zap.Logger) (*Gateway, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    domain.ServerName,
			Version: domain.ServerVersion,
		}, &mcp.ServerOptions{HasTools: true}),
		dispatcher: dispatcher,
		logger:     logger.Named("gateway"),
	}
	for _, tool := range catalog.ListTools() {
		g.server.AddTool(&mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		}, g.toolHandler(tool.Name))
	}
	return g, nil
}

// Server returns the underlying MCP server.
func (g *Gateway) Server() *mcp.Server {
	return g.server
}

// Run serves MCP over stdin and stdout until ctx is canceled or the peer
// disconnects.
func (g *Gateway) Run(ctx context.Context) error {
	g.logger.Info("gateway starting (stdio transport)")
	return g.server.Run(ctx, &mcp.StdioTransport{})
}

func (g *Gateway) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				g.logger.Error("tool handler panic", zap.String("tool", name), zap.Any("panic", recovered))
				result = envelopeResult(domain.Failf("internal error: %v", recovered))
				err = nil
			}
		}()

		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, decodeErr := decodeArguments(raw)
		if decodeErr != nil {
			return envelopeResult(domain.Fail(decodeErr.Error())), nil
		}
		return envelopeResult(g.dispatcher.Dispatch(ctx, name, args)), nil
	}
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func envelopeResult(result domain.Result) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.Pretty()}},
		IsError: !result.OK(),
	}
}
