package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/telemetry"
)

const loginFlightKey = "login"

// Options configures a TokenManager.
type Options struct {
	BaseURL       string
	LoginPath     string
	Username      string
	Password      string
	HTTPClient    *http.Client
	Clock         func() time.Time
	RefreshMargin time.Duration
	FallbackTTL   time.Duration
	Metrics       domain.Metrics
	Logger        *zap.Logger
}

// TokenManager owns the bearer credential used for every backend call. It
// logs in lazily and refreshes when the cached token is within the refresh
// margin of its expiry. Concurrent refreshes share a single login request.
type TokenManager struct {
	loginURL      string
	username      string
	password      string
	client        *http.Client
	now           func() time.Time
	refreshMargin time.Duration
	fallbackTTL   time.Duration
	metrics       domain.Metrics
	logger        *zap.Logger

	mu      sync.RWMutex
	cred    domain.Credential
	lastErr error
	flight  singleflight.Group
}

func NewTokenManager(opts Options) *TokenManager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = domain.DefaultLoginPath
	}
	fallback := opts.FallbackTTL
	if fallback <= 0 {
		fallback = domain.DefaultFallbackTTLSeconds * time.Second
	}
	margin := opts.RefreshMargin
	if margin < 0 {
		margin = 0
	}
	return &TokenManager{
		loginURL:      strings.TrimRight(opts.BaseURL, "/") + loginPath,
		username:      opts.Username,
		password:      opts.Password,
		client:        client,
		now:           clock,
		refreshMargin: margin,
		fallbackTTL:   fallback,
		metrics:       metrics,
		logger:        logger.Named("auth"),
	}
}

// EnsureToken returns a bearer token that stays valid for at least the
// refresh margin, logging in when the cache is empty or stale.
func (m *TokenManager) EnsureToken(ctx context.Context) (string, error) {
	if token, ok := m.cached(); ok {
		return token, nil
	}

	// The login runs detached from the first caller's cancellation so that
	// waiters sharing the flight are not failed by someone else's deadline.
	ch := m.flight.DoChan(loginFlightKey, func() (any, error) {
		if token, ok := m.cached(); ok {
			return token, nil
		}
		cred, err := m.login(context.WithoutCancel(ctx))
		m.store(cred, err)
		if err != nil {
			return "", err
		}
		return cred.Token, nil
	})

	select {
	case <-ctx.Done():
		return "", domain.Wrap(domain.CodeCanceled, "auth.ensure_token", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Credential returns the cached credential, if any.
func (m *TokenManager) Credential() (domain.Credential, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred, m.cred.Token != ""
}

// Invalidate drops the cached credential so the next call logs in again.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = domain.Credential{}
}

// Health reports the most recent login failure, cleared by the next success.
func (m *TokenManager) Health() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *TokenManager) cached() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred.Fresh(m.now(), m.refreshMargin) {
		return m.cred.Token, true
	}
	return "", false
}

func (m *TokenManager) store(cred domain.Credential, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastErr = err
		return
	}
	m.cred = cred
	m.lastErr = nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (m *TokenManager) login(ctx context.Context) (domain.Credential, error) {
	const op = "auth.login"
	started := m.now()
	cred, err := m.doLogin(ctx, op)
	duration := m.now().Sub(started)

	if err != nil {
		m.metrics.ObserveTokenRefresh(domain.RefreshOutcomeFailure, duration)
		telemetry.LoggerWithRequest(ctx, m.logger).Warn("login failed",
			telemetry.EventField(telemetry.EventLoginFailure),
			zap.Error(err),
		)
		return domain.Credential{}, err
	}

	m.metrics.ObserveTokenRefresh(domain.RefreshOutcomeSuccess, duration)
	m.metrics.SetTokenExpiry(cred.ExpiresAt)
	telemetry.LoggerWithRequest(ctx, m.logger).Info("login succeeded",
		telemetry.EventField(telemetry.EventLoginSuccess),
		zap.Time("expires_at", cred.ExpiresAt),
	)
	return cred, nil
}

func (m *TokenManager) doLogin(ctx context.Context, op string) (domain.Credential, error) {
	payload, err := json.Marshal(loginRequest{Username: m.username, Password: m.password})
	if err != nil {
		return domain.Credential{}, domain.E(domain.CodeInternal, op, "encode login request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.loginURL, bytes.NewReader(payload))
	if err != nil {
		return domain.Credential{}, domain.E(domain.CodeInternal, op, "build login request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	telemetry.InjectRequestID(ctx, req.Header)

	resp, err := m.client.Do(req)
	if err != nil {
		return domain.Credential{}, domain.E(domain.CodeUnavailable, op, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Credential{}, domain.E(domain.CodeUnavailable, op, "read login response", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := fmt.Sprintf("login rejected with status %d", resp.StatusCode)
		if text := strings.TrimSpace(string(body)); text != "" {
			msg += ": " + text
		}
		return domain.Credential{}, domain.E(domain.CodeUnauthenticated, op, msg, domain.ErrLoginRejected)
	}

	var decoded loginResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.Credential{}, domain.E(domain.CodeUnauthenticated, op, "decode login response", err)
	}
	if decoded.AccessToken == "" {
		return domain.Credential{}, domain.E(domain.CodeUnauthenticated, op, "", domain.ErrMissingToken)
	}

	now := m.now()
	return domain.Credential{
		Token:      decoded.AccessToken,
		ExpiresAt:  TokenExpiry(decoded.AccessToken, now, m.fallbackTTL),
		ObtainedAt: now,
	}, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Tokens that cannot be decoded, or carry no exp, expire fallback after now.
func TokenExpiry(token string, now time.Time, fallback time.Duration) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return now.Add(fallback)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return now.Add(fallback)
	}
	return exp.Time
}
