package seed

import (
	"context"
	"time"
)

// Check is the outcome of one smoke call.
type Check struct {
	Tool     string        `json:"tool"`
	OK       bool          `json:"ok"`
	Count    int           `json:"count,omitempty"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

type smokeCall struct {
	tool string
	args map[string]any
	list bool
}

var smokeCalls = []smokeCall{
	{tool: "get_my_profile"},
	{tool: "list_departments", list: true},
	{tool: "list_programs", list: true},
	{tool: "list_cohorts", list: true},
	{tool: "list_posts", args: map[string]any{"limit": 5}, list: true},
	{tool: "list_classes", list: true},
	{tool: "get_my_groups", list: true},
}

// SmokeTools lists the tools exercised by Smoke, in call order.
func SmokeTools() []string {
	names := make([]string, 0, len(smokeCalls))
	for _, call := range smokeCalls {
		names = append(names, call.tool)
	}
	return names
}

// Smoke calls the core read tools once each and reports per-tool results.
// It never stops early.
func Smoke(ctx context.Context, dispatcher Dispatcher) []Check {
	checks := make([]Check, 0, len(smokeCalls))
	for _, call := range smokeCalls {
		started := time.Now()
		result := dispatcher.Dispatch(ctx, call.tool, call.args)
		check := Check{Tool: call.tool, OK: result.OK(), Duration: time.Since(started)}
		switch {
		case !result.OK():
			check.Message = result.Failure.Message
		case call.list:
			if _, count, err := decodeItems(result.Body); err == nil {
				check.Count = count
			}
		}
		checks = append(checks, check)
	}
	return checks
}

// Passed reports whether every check succeeded.
func Passed(checks []Check) bool {
	for _, check := range checks {
		if !check.OK {
			return false
		}
	}
	return true
}
