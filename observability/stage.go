package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/diarscribe/errors"
)

// Stage statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Stage tracks one pipeline stage: a span plus duration and status metrics.
type Stage struct {
	name    string
	start   time.Time
	span    trace.Span
	ctx     context.Context
	metrics *Metrics
}

// StartStage starts a span for the named stage. metrics may be nil.
func StartStage(ctx context.Context, metrics *Metrics, name string) (context.Context, *Stage) {
	ctx, span := StartSpan(ctx, SpanStage+"."+name, trace.WithAttributes(attribute.String(AttrStage, name)))
	return ctx, &Stage{name: name, start: time.Now(), span: span, ctx: ctx, metrics: metrics}
}

// Name returns the stage name.
func (s *Stage) Name() string { return s.name }

// Elapsed returns the time since the stage started.
func (s *Stage) Elapsed() time.Duration { return time.Since(s.start) }

// Skip ends the stage with status skipped.
func (s *Stage) Skip(reason string) {
	s.span.SetAttributes(attribute.String("skip.reason", reason))
	s.finish(StatusSkipped)
}

// End ends the stage, with status error when err is non-nil.
func (s *Stage) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		if appErr, ok := errors.As(err); ok {
			s.span.SetAttributes(attribute.String(AttrErrorCode, string(appErr.Code)))
		}
		s.finish(StatusError)
		return
	}
	s.finish(StatusOK)
}

func (s *Stage) finish(status string) {
	d := s.Elapsed()
	s.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	s.span.End()
	if s.metrics != nil {
		s.metrics.RecordStage(s.ctx, s.name, status, d)
	}
}
