package telemetry

import (
	"time"

	"yunitemcp/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveToolCall(_ domain.ToolCallMetric) {}

func (n *NoopMetrics) ObserveBackendRequest(_ domain.BackendRequestMetric) {}

func (n *NoopMetrics) ObserveTokenRefresh(_ domain.RefreshOutcome, _ time.Duration) {}

func (n *NoopMetrics) SetTokenExpiry(_ time.Time) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
