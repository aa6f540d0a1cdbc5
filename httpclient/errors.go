package httpclient

import (
	"fmt"
	"net/http"

	"github.com/kbukum/diarscribe/errors"
)

// maxErrorBody limits how much of a failed response is kept in the error.
const maxErrorBody = 512

// classifyStatus converts a non-2xx response into an application error.
// 408, 429 and 5xx are retryable; other 4xx responses are not.
func classifyStatus(service string, status int, body []byte) *errors.AppError {
	if status >= 200 && status < 300 {
		return nil
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	cause := fmt.Errorf("HTTP %d: %s", status, body)

	switch {
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return errors.Timeout(service).WithCause(cause).WithDetail("status", status)
	case status == http.StatusNotFound:
		return errors.NotFound(service+" endpoint", "").WithCause(cause)
	case status == http.StatusTooManyRequests || status >= 500:
		return errors.ExternalServiceError(service, cause).WithDetail("status", status)
	default:
		appErr := errors.ExternalServiceError(service, cause).WithDetail("status", status)
		appErr.Retryable = false
		return appErr
	}
}

// transportError wraps a failure to reach the sidecar.
func transportError(service string, err error, ctxErr error) *errors.AppError {
	if ctxErr != nil {
		return errors.Timeout(service).WithCause(err)
	}
	return errors.ExternalServiceError(service, err)
}
