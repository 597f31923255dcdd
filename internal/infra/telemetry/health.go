package telemetry

import (
	"sort"
	"sync"
)

// HealthProbe reports a component's health; a non-nil error marks it down.
type HealthProbe func() error

type HealthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthReport struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks,omitempty"`
}

// HealthTracker aggregates named probes into one report.
type HealthTracker struct {
	mu     sync.RWMutex
	probes map[string]HealthProbe
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{probes: make(map[string]HealthProbe)}
}

func (h *HealthTracker) Register(name string, probe HealthProbe) {
	if h == nil || probe == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[name] = probe
}

func (h *HealthTracker) Report() HealthReport {
	report := HealthReport{Status: "ok"}
	if h == nil {
		return report
	}
	h.mu.RLock()
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	probes := make(map[string]HealthProbe, len(h.probes))
	for name, probe := range h.probes {
		probes[name] = probe
	}
	h.mu.RUnlock()

	sort.Strings(names)
	for _, name := range names {
		check := HealthCheck{Name: name, Status: "ok"}
		if err := probes[name](); err != nil {
			check.Status = "error"
			check.Error = err.Error()
			report.Status = "degraded"
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}
