package gateway

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"yunitemcp/internal/domain"
)

const shutdownGrace = 5 * time.Second

// HTTPOptions configures the HTTP fronts.
type HTTPOptions struct {
	Addr           string
	Path           string
	Token          string
	AllowedOrigins []string
	JSONResponse   bool
}

// StreamableHTTPHandler builds the mux for the streamable HTTP front.
func (g *Gateway) StreamableHTTPHandler(opts HTTPOptions) http.Handler {
	path := opts.Path
	if path == "" {
		path = domain.DefaultServerPath
	}
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return g.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: opts.JSONResponse})

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler())
	mux.Handle(path, guard(opts, mcpHandler))
	return mux
}

// SSEHandler builds the mux for the legacy SSE front. The stream is opened
// with GET /sse and client messages are posted to /messages?sessionid=...
func (g *Gateway) SSEHandler(opts HTTPOptions) http.Handler {
	sseHandler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return g.server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler())
	mux.Handle("/sse", guard(opts, sseHandler))
	mux.Handle("/messages", guard(opts, sseHandler))
	return mux
}

// RunStreamableHTTP serves the streamable HTTP front until ctx is canceled.
func (g *Gateway) RunStreamableHTTP(ctx context.Context, opts HTTPOptions) error {
	return g.serveHTTP(ctx, "streamable-http", opts, g.StreamableHTTPHandler(opts))
}

// RunSSE serves the legacy SSE front until ctx is canceled.
func (g *Gateway) RunSSE(ctx context.Context, opts HTTPOptions) error {
	return g.serveHTTP(ctx, "sse", opts, g.SSEHandler(opts))
}

func (g *Gateway) serveHTTP(ctx context.Context, kind string, opts HTTPOptions, handler http.Handler) error {
	if strings.TrimSpace(opts.Addr) == "" {
		return errors.New("http address is required")
	}
	if !IsLocalhostAddr(opts.Addr) && strings.TrimSpace(opts.Token) == "" {
		g.logger.Warn("http front bound to a non-local address without a bearer token",
			zap.String("addr", opts.Addr),
		)
	}

	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("%s gateway failed to start: %w", kind, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		g.logger.Info("gateway listening",
			zap.String("transport", kind),
			zap.String("addr", listener.Addr().String()),
			zap.String("path", opts.Path),
		)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("%s gateway stopped: %w", kind, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			g.logger.Error("gateway shutdown error", zap.Error(err))
			return err
		}
		g.logger.Info("gateway stopped", zap.String("transport", kind))
		return nil
	}
}

func guard(opts HTTPOptions, next http.Handler) http.Handler {
	token := strings.TrimSpace(opts.Token)
	origins := normalizeOrigins(opts.AllowedOrigins)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !originAllowed(origins, r.Header.Get("Origin")) {
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}
		if token != "" && !bearerMatches(r.Header.Get("Authorization"), token) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerMatches(header, token string) bool {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return false
	}
	presented := strings.TrimSpace(header[len(prefix):])
	return subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1
}

func normalizeOrigins(origins []string) map[string]struct{} {
	if len(origins) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		set[strings.ToLower(origin)] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Requests without an Origin header are not browser requests and always pass.
func originAllowed(allowed map[string]struct{}, origin string) bool {
	if allowed == nil || origin == "" {
		return true
	}
	if _, ok := allowed["*"]; ok {
		return true
	}
	_, ok := allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
	return ok
}

func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
}

// IsLocalhostAddr reports whether addr binds only the loopback interface.
func IsLocalhostAddr(addr string) bool {
	host := addr
	if strings.Contains(addr, ":") {
		if h, _, err := net.SplitHostPort(addr); err == nil {
			host = h
		}
	}
	host = strings.TrimSpace(host)
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}
