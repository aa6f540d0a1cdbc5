// Package resilience retries collaborator calls with exponential backoff.
//
// Only failures that can plausibly succeed on a second attempt are
// retried: transport errors and application errors flagged as retryable.
// Context cancellation always stops the loop.
//
//	words, err := resilience.Retry(ctx, cfg, func() ([]transcript.Word, error) {
//	    return backend.fetch(ctx)
//	})
package resilience
