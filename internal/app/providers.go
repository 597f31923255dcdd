package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/auth"
	"yunitemcp/internal/infra/backend"
	"yunitemcp/internal/infra/gateway"
	"yunitemcp/internal/infra/telemetry"
	"yunitemcp/internal/infra/toolset"
)

const tokenHealthCheck = "backend_token"

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

func NewBackendHTTPClient(cfg domain.Config) *http.Client {
	return backend.NewHTTPClient(cfg.API.Timeout)
}

func NewTokenManager(
	cfg domain.Config,
	client *http.Client,
	metrics domain.Metrics,
	health *telemetry.HealthTracker,
	logger *zap.Logger,
) *auth.TokenManager {
	tokens := auth.NewTokenManager(auth.Options{
		BaseURL:       cfg.API.BaseURL,
		LoginPath:     cfg.Auth.LoginPath,
		Username:      cfg.API.Username,
		Password:      cfg.API.Password,
		HTTPClient:    client,
		RefreshMargin: cfg.Auth.RefreshMargin,
		FallbackTTL:   cfg.Auth.FallbackTTL,
		Metrics:       metrics,
		Logger:        logger,
	})
	health.Register(tokenHealthCheck, tokens.Health)
	return tokens
}

func NewBackendClient(
	cfg domain.Config,
	tokens *auth.TokenManager,
	client *http.Client,
	metrics domain.Metrics,
	logger *zap.Logger,
) (*backend.Client, error) {
	return backend.NewClient(backend.Options{
		BaseURL:    cfg.API.BaseURL,
		Tokens:     tokens,
		HTTPClient: client,
		Metrics:    metrics,
		Logger:     logger,
	})
}

func NewCatalog() (*toolset.Catalog, error) {
	return toolset.NewCatalog()
}

func NewDispatcher(
	cfg domain.Config,
	catalog *toolset.Catalog,
	executor *backend.Client,
	metrics domain.Metrics,
	logger *zap.Logger,
) (*toolset.Dispatcher, error) {
	return toolset.NewDispatcher(toolset.DispatcherOptions{
		Catalog:           catalog,
		Executor:          executor,
		ValidateArguments: cfg.Tools.ValidateArguments,
		Metrics:           metrics,
		Logger:            logger,
	})
}

func NewGateway(catalog *toolset.Catalog, dispatcher *toolset.Dispatcher, logger *zap.Logger) (*gateway.Gateway, error) {
	return gateway.NewGateway(catalog, dispatcher, logger)
}
