package observability

import (
	"context"

	"github.com/kbukum/diarscribe/provider"
)

// HealthStatus represents the health state of a collaborator or the
// pipeline as a whole.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes one collaborator.
type Health struct {
	Name     string       `json:"name" yaml:"name"`
	Stage    string       `json:"stage" yaml:"stage"`
	Status   HealthStatus `json:"status" yaml:"status"`
	Optional bool         `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// ServiceHealth aggregates collaborator health.
type ServiceHealth struct {
	Service    string       `json:"service" yaml:"service"`
	Status     HealthStatus `json:"status" yaml:"status"`
	Version    string       `json:"version,omitempty" yaml:"version,omitempty"`
	Components []Health     `json:"components,omitempty" yaml:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Status: HealthStatusUp, Version: version}
}

// CheckProvider probes p. An unavailable optional collaborator only
// degrades the pipeline, since its stage falls back or is skipped.
func CheckProvider(ctx context.Context, stage string, p provider.Provider, optional bool) Health {
	h := Health{Name: p.Name(), Stage: stage, Status: HealthStatusUp, Optional: optional}
	if !p.IsAvailable(ctx) {
		h.Status = HealthStatusDown
		if optional {
			h.Status = HealthStatusDegraded
		}
	}
	return h
}

// AddComponent adds a component health result and degrades overall status if needed.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)

	switch ch.Status {
	case HealthStatusDown:
		sh.Status = HealthStatusDown
	case HealthStatusDegraded:
		if sh.Status != HealthStatusDown {
			sh.Status = HealthStatusDegraded
		}
	}
}
