package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yunitemcp/internal/domain"
)

// EnvPrefix namespaces environment overrides, e.g. YUNITE_SERVER_TRANSPORT.
const EnvPrefix = "YUNITE"

// legacyEnv keeps the variable names deployments already export.
var legacyEnv = map[string]string{
	"api.baseURL":  "API_BASE_URL",
	"api.username": "ADMIN_USERNAME",
	"api.password": "ADMIN_PASSWORD",
	"server.port":  "SERVER_PORT",
}

type Loader struct {
	logger    *zap.Logger
	lookupEnv func(string) (string, bool)
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config"), lookupEnv: os.LookupEnv}
}

func newConfigViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", legacy, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", domain.DefaultAPIBaseURL)
	v.SetDefault("api.username", "")
	v.SetDefault("api.password", "")
	v.SetDefault("api.timeoutSeconds", 0)
	v.SetDefault("auth.loginPath", domain.DefaultLoginPath)
	v.SetDefault("auth.refreshMarginSeconds", domain.DefaultRefreshMarginSeconds)
	v.SetDefault("auth.fallbackTTLSeconds", domain.DefaultFallbackTTLSeconds)
	v.SetDefault("auth.probeOnStart", domain.DefaultProbeOnStart)
	v.SetDefault("server.transport", string(domain.DefaultServerTransport))
	v.SetDefault("server.host", domain.DefaultServerHost)
	v.SetDefault("server.port", domain.DefaultServerPort)
	v.SetDefault("server.path", domain.DefaultServerPath)
	v.SetDefault("server.token", "")
	v.SetDefault("server.allowedOrigins", []string{})
	v.SetDefault("server.jsonResponse", false)
	v.SetDefault("tools.validateArguments", domain.DefaultValidateArguments)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.metrics", false)
	v.SetDefault("observability.healthz", false)
	v.SetDefault("log.level", domain.DefaultLogLevel)
	v.SetDefault("log.format", domain.DefaultLogFormat)
}

type rawConfig struct {
	API           rawAPIConfig           `mapstructure:"api"`
	Auth          rawAuthConfig          `mapstructure:"auth"`
	Server        rawServerConfig        `mapstructure:"server"`
	Tools         rawToolsConfig         `mapstructure:"tools"`
	Observability rawObservabilityConfig `mapstructure:"observability"`
	Log           rawLogConfig           `mapstructure:"log"`
}

type rawAPIConfig struct {
	BaseURL        string `mapstructure:"baseURL"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type rawAuthConfig struct {
	LoginPath            string `mapstructure:"loginPath"`
	RefreshMarginSeconds int    `mapstructure:"refreshMarginSeconds"`
	FallbackTTLSeconds   int    `mapstructure:"fallbackTTLSeconds"`
	ProbeOnStart         bool   `mapstructure:"probeOnStart"`
}

type rawServerConfig struct {
	Transport      string   `mapstructure:"transport"`
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Path           string   `mapstructure:"path"`
	Token          string   `mapstructure:"token"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	JSONResponse   bool     `mapstructure:"jsonResponse"`
}

type rawToolsConfig struct {
	ValidateArguments bool `mapstructure:"validateArguments"`
}

type rawObservabilityConfig struct {
	ListenAddress string `mapstructure:"listenAddress"`
	Metrics       bool   `mapstructure:"metrics"`
	Healthz       bool   `mapstructure:"healthz"`
}

type rawLogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the optional YAML file at path, applies environment overrides
// and defaults, and validates the result. An empty path loads from the
// environment alone.
func (l *Loader) Load(ctx context.Context, path string) (domain.Config, error) {
	v, err := newConfigViper()
	if err != nil {
		return domain.Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}

		expanded, missing, err := expandConfigEnv(data, l.lookupEnv)
		if err != nil {
			return domain.Config{}, err
		}
		if len(missing) > 0 {
			l.logger.Warn("missing environment variables in config", zap.String("path", path), zap.Strings("missing", missing))
		}
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return domain.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	cfg, errs := normalizeConfig(raw)
	if len(errs) > 0 {
		return domain.Config{}, errors.New(strings.Join(errs, "; "))
	}
	if cfg.API.Username == "" || cfg.API.Password == "" {
		l.logger.Warn("backend credentials are not configured; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}
	return cfg, nil
}

func normalizeConfig(raw rawConfig) (domain.Config, []string) {
	var errs []string

	baseURL := strings.TrimRight(strings.TrimSpace(raw.API.BaseURL), "/")
	if parsed, err := url.Parse(baseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Sprintf("api.baseURL must be an absolute http(s) URL, got %q", raw.API.BaseURL))
	}
	if raw.API.TimeoutSeconds < 0 {
		errs = append(errs, "api.timeoutSeconds must be >= 0")
	}

	loginPath := strings.TrimSpace(raw.Auth.LoginPath)
	if !strings.HasPrefix(loginPath, "/") {
		errs = append(errs, "auth.loginPath must start with /")
	}
	if raw.Auth.RefreshMarginSeconds < 0 {
		errs = append(errs, "auth.refreshMarginSeconds must be >= 0")
	}
	if raw.Auth.FallbackTTLSeconds <= 0 {
		errs = append(errs, "auth.fallbackTTLSeconds must be > 0")
	}

	transport := domain.NormalizeTransport(domain.TransportKind(strings.ToLower(strings.TrimSpace(raw.Server.Transport))))
	switch transport {
	case domain.TransportStdio, domain.TransportStreamableHTTP, domain.TransportSSE:
	default:
		errs = append(errs, fmt.Sprintf("server.transport must be stdio, streamable-http or sse, got %q", raw.Server.Transport))
	}
	if raw.Server.Port <= 0 || raw.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be between 1 and 65535, got %d", raw.Server.Port))
	}
	path := strings.TrimSpace(raw.Server.Path)
	if !strings.HasPrefix(path, "/") {
		errs = append(errs, "server.path must start with /")
	}

	level := strings.ToLower(strings.TrimSpace(raw.Log.Level))
	if _, err := zapcore.ParseLevel(level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level is invalid: %q", raw.Log.Level))
	}
	format := strings.ToLower(strings.TrimSpace(raw.Log.Format))
	if format != "json" && format != "console" {
		errs = append(errs, fmt.Sprintf("log.format must be json or console, got %q", raw.Log.Format))
	}

	return domain.Config{
		API: domain.APIConfig{
			BaseURL:  baseURL,
			Username: raw.API.Username,
			Password: raw.API.Password,
			Timeout:  time.Duration(raw.API.TimeoutSeconds) * time.Second,
		},
		Auth: domain.AuthConfig{
			LoginPath:     loginPath,
			RefreshMargin: time.Duration(raw.Auth.RefreshMarginSeconds) * time.Second,
			FallbackTTL:   time.Duration(raw.Auth.FallbackTTLSeconds) * time.Second,
			ProbeOnStart:  raw.Auth.ProbeOnStart,
		},
		Server: domain.ServerConfig{
			Transport:      transport,
			Host:           strings.TrimSpace(raw.Server.Host),
			Port:           raw.Server.Port,
			Path:           path,
			Token:          raw.Server.Token,
			AllowedOrigins: normalizeOrigins(raw.Server.AllowedOrigins),
			JSONResponse:   raw.Server.JSONResponse,
		},
		Tools: domain.ToolsConfig{
			ValidateArguments: raw.Tools.ValidateArguments,
		},
		Observability: domain.ObservabilityConfig{
			ListenAddress: strings.TrimSpace(raw.Observability.ListenAddress),
			Metrics:       raw.Observability.Metrics,
			Healthz:       raw.Observability.Healthz,
		},
		Log: domain.LogConfig{
			Level:  level,
			Format: format,
		},
	}, errs
}

func normalizeOrigins(origins []string) []string {
	var out []string
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
