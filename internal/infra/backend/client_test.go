package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/telemetry"
)

type fakeTokens struct {
	token       string
	err         error
	calls       atomic.Int32
	invalidated atomic.Int32
}

func (f *fakeTokens) EnsureToken(context.Context) (string, error) {
	f.calls.Add(1)
	return f.token, f.err
}

func (f *fakeTokens) Invalidate() {
	f.invalidated.Add(1)
}

type recordingMetrics struct {
	telemetry.NoopMetrics
	mu       sync.Mutex
	requests []domain.BackendRequestMetric
}

func (m *recordingMetrics) ObserveBackendRequest(metric domain.BackendRequestMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, metric)
}

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	captured := make(chan capturedRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured <- capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   string(raw),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newTestClient(t *testing.T, baseURL string, tokens TokenSource, metrics domain.Metrics) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL:    baseURL,
		Tokens:     tokens,
		HTTPClient: NewHTTPClient(5 * time.Second),
		Metrics:    metrics,
	})
	require.NoError(t, err)
	return client
}

func TestExecuteGetSendsQueryAndHeaders(t *testing.T) {
	server, captured := newBackend(t, http.StatusOK, `[{"id":1,"name":"Physics"}]`)
	tokens := &fakeTokens{token: "tok-123"}
	metrics := &recordingMetrics{}
	client := newTestClient(t, server.URL+"/", tokens, metrics)

	ctx := telemetry.WithRequestMeta(context.Background(), telemetry.RequestMeta{RequestID: "req-1"})
	result := client.Execute(ctx, "get", "/departments/", map[string]any{"ignored": true}, url.Values{"include_stats": {"true"}})

	require.True(t, result.OK())
	assert.JSONEq(t, `[{"id":1,"name":"Physics"}]`, string(result.Body))

	req := <-captured
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/departments/", req.Path)
	assert.Equal(t, "true", req.Query.Get("include_stats"))
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "req-1", req.Header.Get(telemetry.RequestIDHeader))
	assert.Equal(t, domain.ServerName+"/"+domain.ServerVersion, req.Header.Get("User-Agent"))
	assert.Empty(t, req.Body)

	require.Len(t, metrics.requests, 1)
	assert.Equal(t, http.MethodGet, metrics.requests[0].Method)
	assert.Equal(t, http.StatusOK, metrics.requests[0].Status)
}

func TestExecutePostSendsJSONBody(t *testing.T) {
	server, captured := newBackend(t, http.StatusCreated, `{"id":9}`)
	client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

	result := client.Execute(context.Background(), "POST", "/departments/", map[string]any{
		"name":        "Physics",
		"code":        "PHY",
		"description": nil,
		"is_active":   true,
	}, url.Values{"ignored": {"1"}})

	require.True(t, result.OK())
	req := <-captured
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Empty(t, req.Query)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Physics","code":"PHY","description":null,"is_active":true}`, req.Body)
}

func TestExecuteDeleteBody(t *testing.T) {
	t.Run("with body", func(t *testing.T) {
		server, captured := newBackend(t, http.StatusOK, `{"ok":true}`)
		client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

		result := client.Execute(context.Background(), "DELETE", "/notifications/devices/unregister", map[string]any{"fcm_token": "abc"}, nil)
		require.True(t, result.OK())
		req := <-captured
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.JSONEq(t, `{"fcm_token":"abc"}`, req.Body)
	})

	t.Run("without body", func(t *testing.T) {
		server, captured := newBackend(t, http.StatusOK, `{"ok":true}`)
		client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

		result := client.Execute(context.Background(), "DELETE", "/posts/3", nil, nil)
		require.True(t, result.OK())
		req := <-captured
		assert.Empty(t, req.Body)
	})
}

func TestExecuteUnsupportedMethodSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)
	tokens := &fakeTokens{token: "t"}
	client := newTestClient(t, server.URL, tokens, nil)

	result := client.Execute(context.Background(), "PATCH", "/posts/1/metadata", map[string]any{"a": 1}, nil)

	require.False(t, result.OK())
	assert.Equal(t, "Unsupported HTTP method: PATCH", result.Failure.Message)
	assert.Zero(t, result.Failure.StatusCode)
	assert.Zero(t, tokens.calls.Load())
	assert.Zero(t, hits.Load())
}

func TestExecuteErrorStatusBecomesEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		prefix string
	}{
		{"not found", http.StatusNotFound, `{"detail":"Post not found"}`, "Client error '404 Not Found' for url '"},
		{"server error", http.StatusInternalServerError, `oops`, "Server error '500 Internal Server Error' for url '"},
		{"empty detail", http.StatusConflict, ``, "Client error '409 Conflict' for url '"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, _ := newBackend(t, tc.status, tc.body)
			client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

			result := client.Execute(context.Background(), "GET", "/posts/7", nil, nil)

			require.False(t, result.OK())
			assert.Equal(t, domain.OutcomeBackendError, result.Outcome())
			assert.True(t, result.Failure.Error)
			assert.Equal(t, tc.status, result.Failure.StatusCode)
			assert.Equal(t, tc.prefix+server.URL+"/posts/7'", result.Failure.Message)
			require.NotNil(t, result.Failure.Detail)
			assert.Equal(t, tc.body, *result.Failure.Detail)
		})
	}
}

func TestExecuteUnauthorizedInvalidatesToken(t *testing.T) {
	server, _ := newBackend(t, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
	tokens := &fakeTokens{token: "stale"}
	client := newTestClient(t, server.URL, tokens, nil)

	result := client.Execute(context.Background(), "GET", "/users/me", nil, nil)

	require.False(t, result.OK())
	assert.Equal(t, http.StatusUnauthorized, result.Failure.StatusCode)
	assert.Equal(t, int32(1), tokens.invalidated.Load())
}

func TestExecuteEmptyBodyIsNull(t *testing.T) {
	server, _ := newBackend(t, http.StatusNoContent, "")
	client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

	result := client.Execute(context.Background(), "DELETE", "/folders/2", nil, nil)

	require.True(t, result.OK())
	assert.Equal(t, "null", string(result.Body))
}

func TestExecuteNonJSONBody(t *testing.T) {
	server, _ := newBackend(t, http.StatusOK, "<html>hi</html>")
	client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

	result := client.Execute(context.Background(), "GET", "/", nil, nil)

	require.False(t, result.OK())
	assert.Zero(t, result.Failure.StatusCode)
	assert.Contains(t, result.Failure.Message, "not valid JSON")
}

func TestExecuteTokenFailure(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)
	tokens := &fakeTokens{err: domain.E(domain.CodeUnauthenticated, "auth.login", "login rejected with status 401", domain.ErrLoginRejected)}
	client := newTestClient(t, server.URL, tokens, nil)

	result := client.Execute(context.Background(), "GET", "/departments/", nil, nil)

	require.False(t, result.OK())
	assert.Equal(t, domain.OutcomeError, result.Outcome())
	assert.Contains(t, result.Failure.Message, "login rejected with status 401")
	assert.Zero(t, hits.Load())
}

func TestExecuteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	metrics := &recordingMetrics{}
	client := newTestClient(t, baseURL, &fakeTokens{token: "t"}, metrics)
	result := client.Execute(context.Background(), "GET", "/departments/", nil, nil)

	require.False(t, result.OK())
	assert.Zero(t, result.Failure.StatusCode)
	assert.NotEmpty(t, result.Failure.Message)
	require.Len(t, metrics.requests, 1)
	assert.Zero(t, metrics.requests[0].Status)
}

func TestExecuteBodyIsVerbatim(t *testing.T) {
	payload := `{"items":[1,2.5,"x"],"nested":{"flag":false}}`
	server, _ := newBackend(t, http.StatusOK, payload)
	client := newTestClient(t, server.URL, &fakeTokens{token: "t"}, nil)

	result := client.Execute(context.Background(), "GET", "/posts/", nil, nil)

	require.True(t, result.OK())
	var decoded map[string]any
	require.NoError(t, result.Decode(&decoded))
	assert.Equal(t, payload, string(result.Body))
	assert.Equal(t, map[string]any{"flag": false}, decoded["nested"])
}

func TestNewClientRequiresTokensAndBaseURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "http://localhost:8000"})
	require.Error(t, err)

	_, err = NewClient(Options{Tokens: &fakeTokens{}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrLoginRejected))
}

func TestStatusMessage(t *testing.T) {
	target, err := url.Parse("http://localhost:8000/posts/1")
	require.NoError(t, err)
	assert.Equal(t, "Client error '404 Not Found' for url 'http://localhost:8000/posts/1'", statusMessage(404, target))

	raw, err := json.Marshal(domain.HTTPFailure(404, statusMessage(404, target), "x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":true,"status_code":404,"message":"Client error '404 Not Found' for url 'http://localhost:8000/posts/1'","detail":"x"}`, string(raw))
}
