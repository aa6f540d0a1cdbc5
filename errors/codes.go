package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Alignment errors
const (
	// ErrCodeEmptyTimeline indicates no speaker turns were supplied.
	ErrCodeEmptyTimeline ErrorCode = "EMPTY_TIMELINE"
	// ErrCodeAlignmentLengthMismatch indicates punctuation labels do not match the word count.
	ErrCodeAlignmentLengthMismatch ErrorCode = "ALIGNMENT_LENGTH_MISMATCH"
	// ErrCodeMalformedTimelineRecord indicates a diarizer record could not be parsed.
	ErrCodeMalformedTimelineRecord ErrorCode = "MALFORMED_TIMELINE_RECORD"
	// ErrCodeOverlappingTimeline indicates two speaker turns share part of the timeline.
	ErrCodeOverlappingTimeline ErrorCode = "OVERLAPPING_TIMELINE"
	// ErrCodeUnsupportedLanguage indicates no punctuation model exists for the language.
	ErrCodeUnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Collaborator and infrastructure errors
const (
	// ErrCodeExternalService indicates an error from an external collaborator.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeTimeout indicates a collaborator call timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeStorage indicates an artifact could not be published.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeExternalService: true,
	ErrCodeTimeout:         true,
	ErrCodeStorage:         true,
}

// fatalCodes abort a run before any artifact is published.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeEmptyTimeline:           true,
	ErrCodeAlignmentLengthMismatch: true,
	ErrCodeOverlappingTimeline:     true,
	ErrCodeInvalidInput:            true,
	ErrCodeNotFound:                true,
	ErrCodeExternalService:         true,
	ErrCodeTimeout:                 true,
	ErrCodeStorage:                 true,
	ErrCodeInternal:                true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// IsFatalCode returns true if the error code must abort the run.
// MALFORMED_TIMELINE_RECORD and UNSUPPORTED_LANGUAGE are recovered locally.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
