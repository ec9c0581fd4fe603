package llm

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/gmtrainer/internal/errors"
)

// scriptedClient returns its scripted errors in order, then succeeds.
type scriptedClient struct {
	failures []error
	calls    int
	response Response
}

func (c *scriptedClient) Generate(ctx context.Context, req Request) (Response, error) {
	defer func() { c.calls++ }()
	if c.calls < len(c.failures) {
		return Response{}, c.failures[c.calls]
	}
	return c.response, nil
}

func noSleep(waits *[]time.Duration) func(ctx context.Context, d time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}

func TestRetryClientSucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	inner := &scriptedClient{
		failures: []error{
			errors.New(errors.CodeProviderUnavailable, "down"),
			errors.New(errors.CodeProviderRateLimited, "slow down"),
		},
		response: Response{Text: "Bolzar casts Witchbolt."},
	}
	var waits []time.Duration
	client := NewRetryClient(inner, RetryConfig{Sleep: noSleep(&waits)})

	res, err := client.Generate(context.Background(), Request{Prompt: "GM: narration"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Text != "Bolzar casts Witchbolt." {
		t.Fatalf("text = %q", res.Text)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryClientBackoffDoubles(t *testing.T) {
	t.Parallel()

	inner := &scriptedClient{
		failures: []error{
			errors.New(errors.CodeProviderUnavailable, "down"),
			errors.New(errors.CodeProviderUnavailable, "down"),
		},
		response: Response{Text: "ok"},
	}
	var waits []time.Duration
	client := NewRetryClient(inner, RetryConfig{Sleep: noSleep(&waits)})

	if _, err := client.Generate(context.Background(), Request{Prompt: "GM: narration"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v, want %v", waits, want)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Fatalf("waits[%d] = %v, want %v", i, waits[i], want[i])
		}
	}
}

func TestRetryClientExhaustsAttempts(t *testing.T) {
	t.Parallel()

	inner := &scriptedClient{
		failures: []error{
			errors.New(errors.CodeProviderUnavailable, "down"),
			errors.New(errors.CodeProviderUnavailable, "down"),
			errors.New(errors.CodeProviderUnavailable, "down"),
		},
	}
	var waits []time.Duration
	client := NewRetryClient(inner, RetryConfig{Sleep: noSleep(&waits)})

	_, err := client.Generate(context.Background(), Request{Prompt: "GM: narration"})
	if got := errors.GetCode(err); got != errors.CodeProviderUnavailable {
		t.Fatalf("code = %s, want %s", got, errors.CodeProviderUnavailable)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryClientDoesNotRetryAuthFailure(t *testing.T) {
	t.Parallel()

	inner := &scriptedClient{
		failures: []error{errors.New(errors.CodeProviderAuth, "bad key")},
	}
	var waits []time.Duration
	client := NewRetryClient(inner, RetryConfig{Sleep: noSleep(&waits)})

	_, err := client.Generate(context.Background(), Request{Prompt: "GM: narration"})
	if got := errors.GetCode(err); got != errors.CodeProviderAuth {
		t.Fatalf("code = %s, want %s", got, errors.CodeProviderAuth)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
	if len(waits) != 0 {
		t.Fatalf("waits = %v, want none", waits)
	}
}

func TestRetryClientDoesNotRetryNonProviderErrors(t *testing.T) {
	t.Parallel()

	inner := &scriptedClient{
		failures: []error{errors.New(errors.CodeStorageUnavailable, "db gone")},
	}
	client := NewRetryClient(inner, RetryConfig{Sleep: noSleep(new([]time.Duration))})

	_, err := client.Generate(context.Background(), Request{Prompt: "GM: narration"})
	if got := errors.GetCode(err); got != errors.CodeStorageUnavailable {
		t.Fatalf("code = %s, want %s", got, errors.CodeStorageUnavailable)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
}

func TestRetryClientStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	inner := &scriptedClient{
		failures: []error{errors.New(errors.CodeProviderUnavailable, "down")},
	}
	ctx, cancel := context.WithCancel(context.Background())
	client := NewRetryClient(inner, RetryConfig{
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	})

	_, err := client.Generate(ctx, Request{Prompt: "GM: narration"})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
}
