package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldTool       = "tool"
	FieldGroup      = "group"
	FieldOutcome    = "outcome"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDurationMs = "duration_ms"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
)

const (
	EventToolCall       = "tool_call"
	EventUnknownTool    = "unknown_tool"
	EventValidation     = "validation_failure"
	EventBackendRequest = "backend_request"
	EventBackendError   = "backend_error"
	EventLoginSuccess   = "login_success"
	EventLoginFailure   = "login_failure"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ToolField(name string) zap.Field {
	return zap.String(FieldTool, name)
}

func GroupField(group string) zap.Field {
	return zap.String(FieldGroup, group)
}

func OutcomeField(outcome string) zap.Field {
	return zap.String(FieldOutcome, outcome)
}

func MethodField(method string) zap.Field {
	return zap.String(FieldMethod, method)
}

func PathField(path string) zap.Field {
	return zap.String(FieldPath, path)
}

func StatusField(status int) zap.Field {
	return zap.Int(FieldStatus, status)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}
