package provider

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Use runs fn with p inside an acquisition scope: p is initialized if it
// implements Initializable, fn runs, and p is closed if it implements
// Closeable. Close runs on every exit path, including a failed Init and a
// panic in fn, and uses a context that outlives cancellation of ctx so
// resources are always released.
func Use[T Provider, R any](ctx context.Context, p T, fn func(context.Context, T) (R, error)) (result R, err error) {
	defer func() {
		c, ok := any(p).(Closeable)
		if !ok {
			return
		}
		if cerr := c.Close(context.WithoutCancel(ctx)); cerr != nil {
			err = stderrors.Join(err, fmt.Errorf("close %s: %w", p.Name(), cerr))
		}
	}()

	if i, ok := any(p).(Initializable); ok {
		if err := i.Init(ctx); err != nil {
			var zero R
			return zero, fmt.Errorf("init %s: %w", p.Name(), err)
		}
	}
	return fn(ctx, p)
}

// UseNamed creates a fresh backend from reg and runs it through Use.
func UseNamed[T Provider, R any](ctx context.Context, reg *Registry[T], name string, fn func(context.Context, T) (R, error)) (R, error) {
	p, err := reg.Create(name)
	if err != nil {
		var zero R
		return zero, err
	}
	return Use(ctx, p, fn)
}
