package provider

import "context"

// Provider is the base interface all collaborator backends implement.
type Provider interface {
	// Name returns the backend's registered name.
	Name() string
	// IsAvailable checks if the backend can handle a request right now.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a fresh backend instance.
type Factory[T Provider] func() (T, error)
