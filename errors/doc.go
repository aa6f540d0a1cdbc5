// Package errors provides the structured error type shared by every
// diarscribe stage.
//
// Each error carries a machine-readable ErrorCode so callers can decide
// between fatal and recoverable branches without string matching:
//
//	if errors.HasCode(err, errors.ErrCodeEmptyTimeline) {
//	    // nothing to align against
//	}
package errors
