package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"yunitemcp/internal/domain"
)

type PrometheusMetrics struct {
	toolCalls        *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec
	backendRequests  *prometheus.CounterVec
	backendDuration  *prometheus.HistogramVec
	tokenRefreshes   *prometheus.CounterVec
	tokenRefreshTime prometheus.Histogram
	tokenExpiry      prometheus.Gauge
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yunitemcp_tool_calls_total",
				Help: "Total number of tool calls by tool, group and outcome",
			},
			[]string{"tool", "group", "outcome"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yunitemcp_tool_call_duration_seconds",
				Help:    "Duration of tool calls in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"group", "outcome"},
		),
		backendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yunitemcp_backend_requests_total",
				Help: "Total number of backend API requests by method and status",
			},
			[]string{"method", "status"},
		),
		backendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yunitemcp_backend_request_duration_seconds",
				Help:    "Duration of backend API requests in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		tokenRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yunitemcp_token_refreshes_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		tokenRefreshTime: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "yunitemcp_token_refresh_duration_seconds",
				Help:    "Duration of login requests in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		tokenExpiry: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "yunitemcp_token_expiry_timestamp_seconds",
				Help: "Unix time at which the cached bearer token expires",
			},
		),
	}
}

func (p *PrometheusMetrics) ObserveToolCall(metric domain.ToolCallMetric) {
	group := string(metric.Group)
	if group == "" {
		group = "none"
	}
	outcome := string(metric.Outcome)
	p.toolCalls.WithLabelValues(metric.Tool, group, outcome).Inc()
	p.toolDuration.WithLabelValues(group, outcome).Observe(metric.Duration.Seconds())
}

func (p *PrometheusMetrics) ObserveBackendRequest(metric domain.BackendRequestMetric) {
	status := "none"
	if metric.Status > 0 {
		status = strconv.Itoa(metric.Status)
	}
	p.backendRequests.WithLabelValues(metric.Method, status).Inc()
	p.backendDuration.WithLabelValues(metric.Method).Observe(metric.Duration.Seconds())
}

func (p *PrometheusMetrics) ObserveTokenRefresh(outcome domain.RefreshOutcome, duration time.Duration) {
	p.tokenRefreshes.WithLabelValues(string(outcome)).Inc()
	p.tokenRefreshTime.Observe(duration.Seconds())
}

func (p *PrometheusMetrics) SetTokenExpiry(expiresAt time.Time) {
	p.tokenExpiry.Set(float64(expiresAt.Unix()))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
