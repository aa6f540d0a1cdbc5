// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Telemetry is off unless enabled in config; the global no-op providers
// are then left in place, so stage spans and counters cost nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry, observability.Resource{ServiceName: "diarscribe"}, log)
//	defer shutdown(ctx)
//
//	ctx, stage := observability.StartStage(ctx, metrics, "transcription")
//	defer stage.End(err)
package observability
