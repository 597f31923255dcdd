package backend

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"yunitemcp/internal/domain"
)

// NewHTTPClient builds the outbound client shared by login and tool calls.
// A zero timeout leaves the transport default in place.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(newHeaderRoundTripper(http.DefaultTransport)),
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers http.Header
}

func newHeaderRoundTripper(base http.RoundTripper) *headerRoundTripper {
	headers := http.Header{}
	headers.Set("User-Agent", domain.ServerName+"/"+domain.ServerVersion)
	return &headerRoundTripper{base: base, headers: headers}
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(h.headers) == 0 {
		return h.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for key, values := range h.headers {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return h.base.RoundTrip(req)
}
