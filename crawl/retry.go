package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/folio"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt number about to
// be made and the error of the previous one.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying after each of delays. Pages that do
// not exist (ENOTFOUND) are not retried.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			if onRetry != nil {
				onRetry(url, attempt+1, lastErr)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if folio.ErrorCode(err) == folio.ENOTFOUND || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}
