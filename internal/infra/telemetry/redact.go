package telemetry

import "strings"

var sensitiveKeys = []string{
	"password",
	"token",
	"secret",
	"authorization",
	"file_data",
}

// ContainsSensitiveKey reports whether values under key must not be logged.
func ContainsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, needle := range sensitiveKeys {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

// RedactArguments returns a shallow copy of args with sensitive values masked.
func RedactArguments(args map[string]any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, len(args))
	for key, value := range args {
		if ContainsSensitiveKey(key) {
			out[key] = "***"
			continue
		}
		out[key] = value
	}
	return out
}
