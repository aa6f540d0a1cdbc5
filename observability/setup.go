package observability

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/diarscribe/logger"
)

// ShutdownFunc flushes and stops the telemetry providers.
type ShutdownFunc func(context.Context) error

// Setup installs OTLP tracer and meter providers when cfg.Enabled is set.
// The returned function is safe to call when telemetry is disabled.
func Setup(ctx context.Context, cfg Config, res Resource, log *logger.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	tp, err := InitTracer(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	if log != nil {
		log.Info("telemetry initialized", logger.Fields(
			"endpoint", cfg.Endpoint,
			"sample_rate", cfg.SampleRate,
			"interval", cfg.Interval.String(),
		))
	}
	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
