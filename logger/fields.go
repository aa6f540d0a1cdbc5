package logger

import (
	"time"
)

// Standard field keys used across pipeline stages.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldStage     = "stage"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldCode      = "code"
	FieldDuration  = "duration_ms"
	FieldLanguage  = "language"
	FieldPath      = "path"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Info("stage finished", logger.Fields("stage", "transcription", "words", 412))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}

// Merge copies extra into fields and returns fields.
func Merge(fields map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{}, len(extra))
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
