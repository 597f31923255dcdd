package domain

import "time"

// TransportKind selects the inbound protocol front.
type TransportKind string

const (
	TransportStdio          TransportKind = "stdio"
	TransportStreamableHTTP TransportKind = "streamable-http"
	TransportSSE            TransportKind = "sse"
)

// NormalizeTransport maps empty values to the default transport.
func NormalizeTransport(kind TransportKind) TransportKind {
	if kind == "" {
		return DefaultServerTransport
	}
	return kind
}

// Config is the process configuration, read once at startup.
type Config struct {
	API           APIConfig
	Auth          AuthConfig
	Server        ServerConfig
	Tools         ToolsConfig
	Observability ObservabilityConfig
	Log           LogConfig
}

// APIConfig describes the backend and the fixed principal used for every call.
type APIConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

type AuthConfig struct {
	LoginPath     string
	RefreshMargin time.Duration
	FallbackTTL   time.Duration
	ProbeOnStart  bool
}

type ServerConfig struct {
	Transport      TransportKind
	Host           string
	Port           int
	Path           string
	Token          string
	AllowedOrigins []string
	JSONResponse   bool
}

type ToolsConfig struct {
	ValidateArguments bool
}

type ObservabilityConfig struct {
	ListenAddress string
	Metrics       bool
	Healthz       bool
}

type LogConfig struct {
	Level  string
	Format string
}
