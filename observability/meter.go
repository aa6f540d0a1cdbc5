package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The provider must be shut down on exit to flush metrics.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the package meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the pipeline's metric instruments.
type Metrics struct {
	stageTotal     metric.Int64Counter
	stageDuration  metric.Float64Histogram
	runTotal       metric.Int64Counter
	wordsTotal     metric.Int64Counter
	sentencesTotal metric.Int64Counter
	skippedTotal   metric.Int64Counter
}

// RunCounts are the per-run totals recorded when a run completes.
type RunCounts struct {
	Words          int
	Sentences      int
	SkippedRecords int
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.stageTotal, err = meter.Int64Counter("diarscribe.stage.total",
		metric.WithDescription("Pipeline stages executed, by stage and status"),
	); err != nil {
		return nil, fmt.Errorf("creating stage.total counter: %w", err)
	}
	if m.stageDuration, err = meter.Float64Histogram("diarscribe.stage.duration",
		metric.WithDescription("Duration of pipeline stages in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating stage.duration histogram: %w", err)
	}
	if m.runTotal, err = meter.Int64Counter("diarscribe.run.total",
		metric.WithDescription("Pipeline runs, by status"),
	); err != nil {
		return nil, fmt.Errorf("creating run.total counter: %w", err)
	}
	if m.wordsTotal, err = meter.Int64Counter("diarscribe.words.total",
		metric.WithDescription("Words attributed to speakers"),
	); err != nil {
		return nil, fmt.Errorf("creating words.total counter: %w", err)
	}
	if m.sentencesTotal, err = meter.Int64Counter("diarscribe.sentences.total",
		metric.WithDescription("Sentences emitted"),
	); err != nil {
		return nil, fmt.Errorf("creating sentences.total counter: %w", err)
	}
	if m.skippedTotal, err = meter.Int64Counter("diarscribe.timeline.skipped_records",
		metric.WithDescription("Malformed diarizer records skipped"),
	); err != nil {
		return nil, fmt.Errorf("creating timeline.skipped_records counter: %w", err)
	}
	return &m, nil
}

// RecordStage records one stage execution.
func (m *Metrics) RecordStage(ctx context.Context, stage, status string, d time.Duration) {
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrStatus, status),
	))
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String(AttrStage, stage)))
}

// RecordRun records a finished run and, when it succeeded, its totals.
func (m *Metrics) RecordRun(ctx context.Context, status string, counts RunCounts) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
	if status != StatusOK {
		return
	}
	m.wordsTotal.Add(ctx, int64(counts.Words))
	m.sentencesTotal.Add(ctx, int64(counts.Sentences))
	m.skippedTotal.Add(ctx, int64(counts.SkippedRecords))
}
