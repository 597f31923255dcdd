package domain

import "time"

// CallOutcome labels how a tool dispatch ended.
type CallOutcome string

const (
	// OutcomeSuccess indicates the backend returned a body.
	OutcomeSuccess CallOutcome = "success"
	// OutcomeBackendError indicates the backend answered with an error status.
	OutcomeBackendError CallOutcome = "backend_error"
	// OutcomeValidation indicates the arguments failed schema validation.
	OutcomeValidation CallOutcome = "validation_error"
	// OutcomeUnknownTool indicates no catalogue entry matched the name.
	OutcomeUnknownTool CallOutcome = "unknown_tool"
	// OutcomeError indicates a local or transport failure.
	OutcomeError CallOutcome = "error"
)

// RefreshOutcome labels a token refresh attempt.
type RefreshOutcome string

const (
	RefreshOutcomeSuccess RefreshOutcome = "success"
	RefreshOutcomeFailure RefreshOutcome = "failure"
)

// ToolCallMetric captures one dispatch.
type ToolCallMetric struct {
	Tool     string
	Group    ToolGroup
	Outcome  CallOutcome
	Duration time.Duration
}

// BackendRequestMetric captures one outbound request. Status is zero when
// no response was received.
type BackendRequestMetric struct {
	Method   string
	Status   int
	Duration time.Duration
}

// Metrics records operational metrics for dispatch, backend calls and auth.
type Metrics interface {
	ObserveToolCall(metric ToolCallMetric)
	ObserveBackendRequest(metric BackendRequestMetric)
	ObserveTokenRefresh(outcome RefreshOutcome, duration time.Duration)
	SetTokenExpiry(expiresAt time.Time)
}
