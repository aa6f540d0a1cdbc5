package component

import "context"

// HealthStatus is the state a component reports.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's report.
type Health struct {
	Name    string       `json:"name" yaml:"name"`
	Status  HealthStatus `json:"status" yaml:"status"`
	Message string       `json:"message,omitempty" yaml:"message,omitempty"`
}

// Component is infrastructure that lives for the whole run, such as the
// artifact store or the run-history database. Model backends are not
// components: they are created and released per stage by provider.Use.
type Component interface {
	// Name is the registry key and must be unique.
	Name() string
	// Start opens connections or directories. A failed Start stops every
	// component started before it.
	Start(ctx context.Context) error
	// Stop releases what Start acquired.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}
