package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/toolset"
)

type dispatchCall struct {
	name string
	args map[string]any
}

type fakeDispatcher struct {
	mu     sync.Mutex
	calls  []dispatchCall
	result domain.Result
	panic  any
}

func (f *fakeDispatcher) Dispatch(_ context.Context, name string, args map[string]any) domain.Result {
	f.mu.Lock()
	f.calls = append(f.calls, dispatchCall{name: name, args: args})
	f.mu.Unlock()
	if f.panic != nil {
		panic(f.panic)
	}
	return f.result
}

func (f *fakeDispatcher) recorded() []dispatchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dispatchCall(nil), f.calls...)
}

func newTestGateway(t *testing.T, dispatcher Dispatcher) *Gateway {
	t.Helper()
	gw, err := NewGateway(toolset.MustCatalog(), dispatcher, zap.NewNop())
	require.NoError(t, err)
	return gw
}

func connectClient(t *testing.T, ctx context.Context, server *mcp.Server) (*mcp.Client, *mcp.ClientSession) {
	t.Helper()
	ct, st := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	return client, session
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestGateway_ListsEveryCatalogueTool(t *testing.T) {
	ctx := context.Background()
	catalog := toolset.MustCatalog()
	gw := newTestGateway(t, &fakeDispatcher{})

	_, session := connectClient(t, ctx, gw.Server())
	defer session.Close()

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, res.Tools, catalog.Len())

	names := make(map[string]bool, len(res.Tools))
	for _, tool := range res.Tools {
		names[tool.Name] = true
		require.NotEmpty(t, tool.Description, tool.Name)
		require.NotNil(t, tool.InputSchema, tool.Name)
	}
	for _, descriptor := range catalog.ListTools() {
		assert.True(t, names[descriptor.Name], "missing %s", descriptor.Name)
	}
}

func TestGateway_CallToolReturnsPrettyEnvelope(t *testing.T) {
	ctx := context.Background()
	dispatcher := &fakeDispatcher{result: domain.Success(json.RawMessage(`{"items":[{"id":1}],"total":1}`))}
	gw := newTestGateway(t, dispatcher)

	_, session := connectClient(t, ctx, gw.Server())
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_class_students",
		Arguments: map[string]any{"class_id": 7},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "{\n  \"items\": [\n    {\n      \"id\": 1\n    }\n  ],\n  \"total\": 1\n}", resultText(t, res))

	calls := dispatcher.recorded()
	require.Len(t, calls, 1)
	require.Equal(t, "get_class_students", calls[0].name)
	require.Equal(t, map[string]any{"class_id": float64(7)}, calls[0].args)
}

func TestGateway_FailureEnvelopeSetsIsError(t *testing.T) {
	ctx := context.Background()
	dispatcher := &fakeDispatcher{result: domain.HTTPFailure(404, "Client error '404 Not Found' for url 'http://backend/users/9'", `{"detail":"Not found"}`)}
	gw := newTestGateway(t, dispatcher)

	_, session := connectClient(t, ctx, gw.Server())
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_user_by_id",
		Arguments: map[string]any{"user_id": 9},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	var failure domain.Failure
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &failure))
	require.True(t, failure.Error)
	require.Equal(t, 404, failure.StatusCode)
	require.NotNil(t, failure.Detail)
	require.Equal(t, `{"detail":"Not found"}`, *failure.Detail)
}

func TestGateway_CallWithoutArgumentsDispatchesEmptyMap(t *testing.T) {
	ctx := context.Background()
	dispatcher := &fakeDispatcher{result: domain.Success(json.RawMessage(`[]`))}
	gw := newTestGateway(t, dispatcher)

	_, session := connectClient(t, ctx, gw.Server())
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_my_profile"})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "[]", resultText(t, res))

	calls := dispatcher.recorded()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].args)
	require.Empty(t, calls[0].args)
}

func TestGateway_ToolHandler(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		dispatcher *fakeDispatcher
		wantError  bool
		wantText   string
		wantCalls  int
	}{
		{
			name:       "malformed arguments",
			raw:        `{"user_id":`,
			dispatcher: &fakeDispatcher{},
			wantError:  true,
			wantCalls:  0,
		},
		{
			name:       "arguments not an object",
			raw:        `[1,2]`,
			dispatcher: &fakeDispatcher{},
			wantError:  true,
			wantCalls:  0,
		},
		{
			name:       "null arguments",
			raw:        `null`,
			dispatcher: &fakeDispatcher{result: domain.Success(nil)},
			wantText:   "null",
			wantCalls:  1,
		},
		{
			name:       "dispatcher panic",
			raw:        `{}`,
			dispatcher: &fakeDispatcher{panic: "boom"},
			wantError:  true,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, tt.dispatcher)
			handler := gw.toolHandler("get_user_by_id")

			res, err := handler(context.Background(), &mcp.CallToolRequest{
				Params: &mcp.CallToolParamsRaw{Name: "get_user_by_id", Arguments: json.RawMessage(tt.raw)},
			})
			require.NoError(t, err)
			require.Equal(t, tt.wantError, res.IsError)
			require.Len(t, tt.dispatcher.recorded(), tt.wantCalls)

			text := resultText(t, res)
			if tt.wantText != "" {
				require.Equal(t, tt.wantText, text)
			}
			if tt.wantError {
				var failure domain.Failure
				require.NoError(t, json.Unmarshal([]byte(text), &failure))
				require.True(t, failure.Error)
				require.NotEmpty(t, failure.Message)
			}
		})
	}
}

func TestNewGateway_Requirements(t *testing.T) {
	_, err := NewGateway(nil, &fakeDispatcher{}, nil)
	require.Error(t, err)

	_, err = NewGateway(toolset.MustCatalog(), nil, nil)
	require.Error(t, err)
}
