// Package component manages infrastructure that outlives a single stage:
// the artifact store, the run-history database and the telemetry
// exporters. Components start in registration order before a run and
// stop in reverse order after it.
package component
