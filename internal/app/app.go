package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"yunitemcp/internal/app/seed"
	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/config"
	"yunitemcp/internal/infra/toolset"
)

type App struct {
	logger *zap.Logger
}

// ServeConfig selects the configuration file and any command-line
// overrides applied on top of it.
type ServeConfig struct {
	ConfigPath string
	Override   func(*domain.Config)
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger}
}

// LoadConfig reads the configuration and applies the overrides.
func (a *App) LoadConfig(ctx context.Context, cfg ServeConfig) (domain.Config, error) {
	loaded, err := config.NewLoader(a.logger).Load(ctx, cfg.ConfigPath)
	if err != nil {
		return domain.Config{}, err
	}
	if cfg.Override != nil {
		cfg.Override(&loaded)
	}
	loaded.Server.Transport = domain.NormalizeTransport(loaded.Server.Transport)
	return loaded, nil
}

// Serve runs the adapter until ctx is canceled.
func (a *App) Serve(ctx context.Context, cfg ServeConfig) error {
	application, logger, err := a.build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	return application.Run()
}

// Call dispatches one tool and returns its envelope.
func (a *App) Call(ctx context.Context, cfg ServeConfig, tool string, args map[string]any) (domain.Result, error) {
	application, _, err := a.build(ctx, cfg)
	if err != nil {
		return domain.Result{}, err
	}
	return application.Dispatcher().Dispatch(ctx, tool, args), nil
}

// Smoke logs in and calls the core read tools once each.
func (a *App) Smoke(ctx context.Context, cfg ServeConfig) ([]seed.Check, error) {
	application, _, err := a.build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := application.Probe(ctx); err != nil {
		return nil, err
	}
	return seed.Smoke(ctx, application.Dispatcher()), nil
}

// Seed creates sample data through the dispatcher.
func (a *App) Seed(ctx context.Context, cfg ServeConfig) (seed.Report, error) {
	application, logger, err := a.build(ctx, cfg)
	if err != nil {
		return seed.Report{}, err
	}
	if err := application.Probe(ctx); err != nil {
		return seed.Report{}, err
	}
	return seed.NewSeeder(application.Dispatcher(), logger).Run(ctx)
}

// Tools returns the catalogue, optionally restricted to one group.
func (a *App) Tools(group string) ([]toolset.Descriptor, error) {
	catalog, err := toolset.NewCatalog()
	if err != nil {
		return nil, err
	}
	if group == "" {
		return catalog.ListTools(), nil
	}
	switch domain.ToolGroup(group) {
	case domain.ToolGroupRead, domain.ToolGroupWrite:
		return catalog.Group(domain.ToolGroup(group)), nil
	default:
		return nil, fmt.Errorf("unknown tool group %q (want read or write)", group)
	}
}

func (a *App) build(ctx context.Context, cfg ServeConfig) (*Application, *zap.Logger, error) {
	loaded, err := a.LoadConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger, err := BuildLogger(loaded.Log)
	if err != nil {
		return nil, nil, err
	}
	application, err := InitializeApplication(ctx, loaded, LoggingConfig{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return application, logger, nil
}
