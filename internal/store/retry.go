package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultRetryBackoff returns the backoff used for backend operations: up to
// three retries spaced 1s, 2s and 3s apart. Backoffs are stateful, so every
// retried operation needs a fresh one.
func DefaultRetryBackoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewFibonacci(time.Second))
}

// WithRetry runs fn with backoff until it succeeds, fails with an error the
// classifier does not mark [Retryable], or the backoff stops. The last error
// of fn is returned unwrapped.
func WithRetry(ctx context.Context, classifier ErrorClassificator, backoff retry.Backoff, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && classifier.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}
