package provider

import "context"

// Initializable is implemented by backends that need setup before use,
// such as loading a model or checking that a binary exists.
type Initializable interface {
	Init(ctx context.Context) error
}

// Closeable is implemented by backends holding resources that must be
// released, such as a loaded model.
type Closeable interface {
	Close(ctx context.Context) error
}
