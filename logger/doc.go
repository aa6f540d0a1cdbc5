// Package logger provides structured logging for diarscribe using zerolog.
//
// Diagnostics are written to stderr by default so that the rendered
// transcript and subtitle files are the only products of a run.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("timeline")
//	log.Warn("timeline record skipped", logger.Fields("line", 12))
package logger
