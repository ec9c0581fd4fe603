package llm

import (
	"context"
	"time"

	"github.com/louisbranch/gmtrainer/internal/errors"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 2 * time.Second
)

// RetryConfig tunes the retry wrapper. Zero values use package defaults.
type RetryConfig struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// InitialBackoff is the wait before the second attempt. Each further
	// attempt doubles the previous wait.
	InitialBackoff time.Duration
	// Sleep overrides the wait function. Tests use this to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// RetryClient wraps a Client and retries transient provider failures with
// doubling backoff. Auth failures are returned immediately since repeating
// the same credentials cannot succeed.
type RetryClient struct {
	inner          Client
	attempts       int
	initialBackoff time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

// NewRetryClient wraps inner with retry behavior.
func NewRetryClient(inner Client, cfg RetryConfig) *RetryClient {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultRetryAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultRetryBackoff
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	return &RetryClient{
		inner:          inner,
		attempts:       cfg.Attempts,
		initialBackoff: cfg.InitialBackoff,
		sleep:          cfg.Sleep,
	}
}

func (c *RetryClient) Generate(ctx context.Context, req Request) (Response, error) {
	backoff := c.initialBackoff
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, backoff); err != nil {
				return Response{}, err
			}
			backoff *= 2
		}
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}

		res, err := c.inner.Generate(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !retryable(err) {
			return Response{}, err
		}
	}
	return Response{}, lastErr
}

func retryable(err error) bool {
	code := errors.GetCode(err)
	if code == errors.CodeProviderAuth {
		return false
	}
	return errors.IsRecoverable(code)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
