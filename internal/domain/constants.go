package domain

const (
	DefaultAPIBaseURL                 = "http://localhost:8000"
	DefaultLoginPath                  = "/auth/login"
	DefaultRefreshMarginSeconds       = 300
	DefaultFallbackTTLSeconds         = 3600
	DefaultProbeOnStart               = true
	DefaultServerTransport            = TransportStreamableHTTP
	DefaultServerHost                 = "0.0.0.0"
	DefaultServerPort                 = 7000
	DefaultServerPath                 = "/mcp"
	DefaultValidateArguments          = true
	DefaultObservabilityListenAddress = "127.0.0.1:9090"
	DefaultLogLevel                   = "info"
	DefaultLogFormat                  = "json"
)

const (
	ServerName    = "yunite-mcp-server"
	ServerVersion = "1.0.0"
)
