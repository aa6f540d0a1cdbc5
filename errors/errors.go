package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code" yaml:"code"`
	// Message is a human-readable error message.
	Message string `json:"message" yaml:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable" yaml:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-" yaml:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// IsRetryable reports whether err's chain contains a retryable AppError.
func IsRetryable(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Retryable
}

// --- Alignment errors ---

// EmptyTimeline creates the error for a diarization result with zero turns.
func EmptyTimeline() *AppError {
	return &AppError{
		Code: ErrCodeEmptyTimeline, Message: "No speaker turns were supplied; there is nothing to align words against.",
	}
}

// AlignmentLengthMismatch creates the error for a punctuation label sequence
// whose length differs from the word sequence.
func AlignmentLengthMismatch(words, labels int) *AppError {
	return &AppError{
		Code:    ErrCodeAlignmentLengthMismatch,
		Message: fmt.Sprintf("Punctuation labels (%d) do not match word count (%d).", labels, words),
		Details: map[string]any{"words": words, "labels": labels},
	}
}

// MalformedTimelineRecord creates the diagnostic for a diarizer record that
// failed to parse. The record is skipped, not fatal.
func MalformedTimelineRecord(line int, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedTimelineRecord,
		Message: fmt.Sprintf("Timeline record on line %d skipped: %s", line, reason),
		Details: map[string]any{"line": line, "reason": reason},
	}
}

// OverlappingTimeline creates the error for two turns that overlap in time.
func OverlappingTimeline(prevEndMs, nextStartMs int64) *AppError {
	return &AppError{
		Code:    ErrCodeOverlappingTimeline,
		Message: fmt.Sprintf("Speaker turn starting at %dms overlaps the previous turn ending at %dms.", nextStartMs, prevEndMs),
		Details: map[string]any{"prev_end_ms": prevEndMs, "next_start_ms": nextStartMs},
	}
}

// UnsupportedLanguage creates the diagnostic for a language without a
// punctuation model. Punctuation restoration is skipped, not fatal.
func UnsupportedLanguage(lang string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedLanguage,
		Message: fmt.Sprintf("Punctuation restoration is not available for %q.", lang),
		Details: map[string]any{"language": lang},
	}
}

// --- Input errors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		Details: details,
	}
}

// --- Collaborator and infrastructure errors ---

// ExternalServiceError creates a new AppError for a failed collaborator call.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s collaborator failed.", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Timeout creates a new AppError for a collaborator call that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("The %s operation took too long.", operation),
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// StorageError creates a new AppError for an artifact that could not be published.
func StorageError(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStorage, Message: fmt.Sprintf("Could not publish %s.", path),
		Retryable: true, Details: map[string]any{"path": path}, Cause: cause,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}
