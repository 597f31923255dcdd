package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/auth"
	"yunitemcp/internal/infra/gateway"
	"yunitemcp/internal/infra/telemetry"
	"yunitemcp/internal/infra/toolset"
)

// Application wires the adapter runtime and its dependencies.
type Application struct {
	ctx    context.Context
	cfg    domain.Config
	logger *zap.Logger

	registry   *prometheus.Registry
	health     *telemetry.HealthTracker
	tokens     *auth.TokenManager
	catalog    *toolset.Catalog
	dispatcher *toolset.Dispatcher
	gateway    *gateway.Gateway
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context    context.Context
	Config     domain.Config
	Logger     *zap.Logger
	Registry   *prometheus.Registry
	Health     *telemetry.HealthTracker
	Tokens     *auth.TokenManager
	Catalog    *toolset.Catalog
	Dispatcher *toolset.Dispatcher
	Gateway    *gateway.Gateway
}

func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		ctx:        ctx,
		cfg:        opts.Config,
		logger:     logger.Named("app"),
		registry:   opts.Registry,
		health:     opts.Health,
		tokens:     opts.Tokens,
		catalog:    opts.Catalog,
		dispatcher: opts.Dispatcher,
		gateway:    opts.Gateway,
	}
}

// Dispatcher returns the tool dispatcher.
func (a *Application) Dispatcher() *toolset.Dispatcher {
	return a.dispatcher
}

// Catalog returns the tool catalogue.
func (a *Application) Catalog() *toolset.Catalog {
	return a.catalog
}

// Probe performs one login against the backend.
func (a *Application) Probe(ctx context.Context) error {
	if _, err := a.tokens.EnsureToken(ctx); err != nil {
		return fmt.Errorf("backend login failed: %w", err)
	}
	if cred, ok := a.tokens.Credential(); ok {
		a.logger.Info("backend login succeeded", zap.Time("expires_at", cred.ExpiresAt))
	}
	return nil
}

// Run probes the backend when configured, then serves the selected
// transport and the observability endpoints until the context ends.
func (a *Application) Run() error {
	transport := domain.NormalizeTransport(a.cfg.Server.Transport)
	a.logger.Info("configuration loaded",
		zap.String("backend", a.cfg.API.BaseURL),
		zap.String("transport", string(transport)),
		zap.Int("tools", a.catalog.Len()),
	)

	if a.cfg.Auth.ProbeOnStart {
		if err := a.Probe(a.ctx); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return telemetry.StartHTTPServer(groupCtx, telemetry.HTTPServerOptions{
			Addr:          a.cfg.Observability.ListenAddress,
			EnableMetrics: a.cfg.Observability.Metrics,
			EnableHealthz: a.cfg.Observability.Healthz,
			Health:        a.health,
			Registry:      a.registry,
		}, a.logger)
	})
	group.Go(func() error {
		defer cancel()
		return a.serve(groupCtx, transport)
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *Application) serve(ctx context.Context, transport domain.TransportKind) error {
	switch transport {
	case domain.TransportStdio:
		return a.gateway.Run(ctx)
	case domain.TransportStreamableHTTP:
		return a.gateway.RunStreamableHTTP(ctx, a.httpOptions())
	case domain.TransportSSE:
		return a.gateway.RunSSE(ctx, a.httpOptions())
	default:
		return fmt.Errorf("unsupported transport: %s", transport)
	}
}

func (a *Application) httpOptions() gateway.HTTPOptions {
	server := a.cfg.Server
	return gateway.HTTPOptions{
		Addr:           net.JoinHostPort(server.Host, strconv.Itoa(server.Port)),
		Path:           server.Path,
		Token:          server.Token,
		AllowedOrigins: server.AllowedOrigins,
		JSONResponse:   server.JSONResponse,
	}
}
