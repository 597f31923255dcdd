package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FailureKind classifies a failure envelope for metrics and callers that
// need to tell validation problems apart from backend rejections.
type FailureKind string

const (
	// FailureValidation marks arguments rejected before any request was sent.
	FailureValidation FailureKind = "validation"
)

// Failure is the structured error object returned in place of a backend body.
type Failure struct {
	Error      bool        `json:"error"`
	Kind       FailureKind `json:"kind,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
	Message    string      `json:"message"`
	Detail     *string     `json:"detail,omitempty"`
}

// Result is the envelope produced by one tool dispatch. Exactly one of Body
// and Failure is meaningful: a nil Failure means Body holds the backend's
// JSON response verbatim.
type Result struct {
	Body    json.RawMessage
	Failure *Failure
}

var nullBody = json.RawMessage("null")

// Success wraps a raw backend body. An empty body is treated as JSON null.
func Success(body json.RawMessage) Result {
	if len(bytes.TrimSpace(body)) == 0 {
		return Result{Body: nullBody}
	}
	return Result{Body: body}
}

// Fail builds a failure envelope without a status code.
func Fail(message string) Result {
	return Result{Failure: &Failure{Error: true, Message: message}}
}

// Failf is Fail with formatting.
func Failf(format string, args ...any) Result {
	return Fail(fmt.Sprintf(format, args...))
}

// HTTPFailure builds the envelope for a backend response with an error status.
// The raw response text is always carried in detail, even when empty.
func HTTPFailure(status int, message, detail string) Result {
	return Result{Failure: &Failure{
		Error:      true,
		StatusCode: status,
		Message:    message,
		Detail:     &detail,
	}}
}

// ValidationFailure builds the envelope for arguments that did not satisfy
// the advertised input schema.
func ValidationFailure(message, detail string) Result {
	return Result{Failure: &Failure{
		Error:   true,
		Kind:    FailureValidation,
		Message: message,
		Detail:  &detail,
	}}
}

// OK reports whether the result carries a backend body.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Outcome classifies the result for metrics.
func (r Result) Outcome() CallOutcome {
	switch {
	case r.Failure == nil:
		return OutcomeSuccess
	case r.Failure.Kind == FailureValidation:
		return OutcomeValidation
	case r.Failure.StatusCode > 0:
		return OutcomeBackendError
	default:
		return OutcomeError
	}
}

// MarshalJSON renders the body or the failure object.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	if len(r.Body) == 0 {
		return nullBody, nil
	}
	return r.Body, nil
}

// Pretty renders the envelope as two-space indented JSON text.
func (r Result) Pretty() string {
	raw, err := json.Marshal(r)
	if err != nil {
		raw, _ = json.Marshal(Failure{Error: true, Message: err.Error()})
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

// Decode unmarshals a successful body into v.
func (r Result) Decode(v any) error {
	if r.Failure != nil {
		return fmt.Errorf("decode result: %s", r.Failure.Message)
	}
	return json.Unmarshal(r.Body, v)
}
