package app

import (
	"context"
	"net"
	"strconv"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/toolset"
)

// ConfigSummary is the redacted view printed by the validate command.
type ConfigSummary struct {
	BaseURL           string   `json:"base_url"`
	Username          string   `json:"username"`
	PasswordSet       bool     `json:"password_set"`
	LoginPath         string   `json:"login_path"`
	Transport         string   `json:"transport"`
	Listen            string   `json:"listen,omitempty"`
	Path              string   `json:"path,omitempty"`
	InboundAuth       bool     `json:"inbound_auth"`
	AllowedOrigins    []string `json:"allowed_origins,omitempty"`
	ValidateArguments bool     `json:"validate_arguments"`
	ProbeOnStart      bool     `json:"probe_on_start"`
	ReadTools         int      `json:"read_tools"`
	WriteTools        int      `json:"write_tools"`
}

// ValidateConfig loads the configuration and the catalogue without
// contacting the backend.
func (a *App) ValidateConfig(ctx context.Context, cfg ServeConfig) (ConfigSummary, error) {
	loaded, err := a.LoadConfig(ctx, cfg)
	if err != nil {
		return ConfigSummary{}, err
	}
	catalog, err := toolset.NewCatalog()
	if err != nil {
		return ConfigSummary{}, err
	}
	return summarize(loaded, catalog), nil
}

func summarize(cfg domain.Config, catalog *toolset.Catalog) ConfigSummary {
	summary := ConfigSummary{
		BaseURL:           cfg.API.BaseURL,
		Username:          cfg.API.Username,
		PasswordSet:       cfg.API.Password != "",
		LoginPath:         cfg.Auth.LoginPath,
		Transport:         string(cfg.Server.Transport),
		InboundAuth:       cfg.Server.Token != "",
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		ValidateArguments: cfg.Tools.ValidateArguments,
		ProbeOnStart:      cfg.Auth.ProbeOnStart,
		ReadTools:         len(catalog.Group(domain.ToolGroupRead)),
		WriteTools:        len(catalog.Group(domain.ToolGroupWrite)),
	}
	if cfg.Server.Transport != domain.TransportStdio {
		summary.Listen = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
		if cfg.Server.Transport == domain.TransportStreamableHTTP {
			summary.Path = cfg.Server.Path
		}
	}
	return summary
}
