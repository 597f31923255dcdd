package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/telemetry"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	EnsureToken(ctx context.Context) (string, error)
	Invalidate()
}

type Options struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
	Metrics    domain.Metrics
	Logger     *zap.Logger
	Clock      func() time.Time
}

// Client executes authenticated JSON requests against the backend and turns
// every outcome into a result envelope.
type Client struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
	metrics domain.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewClient(opts Options) (*Client, error) {
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base url is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := opts.HTTPClient
	if client == nil {
		client = NewHTTPClient(0)
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Client{
		baseURL: base,
		tokens:  opts.Tokens,
		client:  client,
		metrics: metrics,
		logger:  logger.Named("backend"),
		now:     clock,
	}, nil
}

// Execute sends one request. GET carries query; POST, PUT and DELETE carry
// body as JSON when it is non-nil. It never returns a Go error: failures are
// reported through the envelope.
func (c *Client) Execute(ctx context.Context, method, path string, body any, query url.Values) domain.Result {
	verb, ok := resolveMethod(method)
	if !ok {
		return domain.Failf("Unsupported HTTP method: %s", method)
	}

	token, err := c.tokens.EnsureToken(ctx)
	if err != nil {
		return domain.Fail(err.Error())
	}

	req, err := c.newRequest(ctx, verb, path, body, query, token)
	if err != nil {
		return domain.Fail(err.Error())
	}

	logger := telemetry.LoggerWithRequest(ctx, c.logger)
	started := c.now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(verb, 0, started)
		logger.Warn("backend request failed",
			telemetry.EventField(telemetry.EventBackendError),
			telemetry.MethodField(verb),
			telemetry.PathField(path),
			zap.Error(err),
		)
		return domain.Fail(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.observe(verb, resp.StatusCode, started)
	if err != nil {
		return domain.Fail(fmt.Sprintf("read response from %s: %v", req.URL.Redacted(), err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		logger.Warn("backend returned error status",
			telemetry.EventField(telemetry.EventBackendError),
			telemetry.MethodField(verb),
			telemetry.PathField(path),
			telemetry.StatusField(resp.StatusCode),
		)
		return domain.HTTPFailure(resp.StatusCode, statusMessage(resp.StatusCode, req.URL), string(raw))
	}

	logger.Debug("backend request",
		telemetry.EventField(telemetry.EventBackendRequest),
		telemetry.MethodField(verb),
		telemetry.PathField(path),
		telemetry.StatusField(resp.StatusCode),
		telemetry.DurationField(c.now().Sub(started)),
	)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return domain.Success(nil)
	}
	if !json.Valid(trimmed) {
		return domain.Failf("decode response from %s: body is not valid JSON", req.URL.Redacted())
	}
	return domain.Success(json.RawMessage(trimmed))
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, query url.Values, token string) (*http.Request, error) {
	target := c.baseURL + path
	if method == http.MethodGet && len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if method != http.MethodGet && body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	telemetry.InjectRequestID(ctx, req.Header)
	return req, nil
}

func (c *Client) observe(method string, status int, started time.Time) {
	c.metrics.ObserveBackendRequest(domain.BackendRequestMetric{
		Method:   method,
		Status:   status,
		Duration: c.now().Sub(started),
	})
}

func resolveMethod(method string) (string, bool) {
	switch verb := strings.ToUpper(strings.TrimSpace(method)); verb {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return verb, true
	default:
		return "", false
	}
}

func statusMessage(status int, target *url.URL) string {
	class := "Client error"
	if status >= http.StatusInternalServerError {
		class = "Server error"
	}
	return fmt.Sprintf("%s '%d %s' for url '%s'", class, status, http.StatusText(status), target.Redacted())
}
