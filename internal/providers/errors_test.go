package providers

import (
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorRetryable(t *testing.T) {
	if !(&StatusError{StatusCode: 503}).Retryable() {
		t.Fatalf("expected 503 to be retryable")
	}
	if (&StatusError{StatusCode: 404}).Retryable() {
		t.Fatalf("expected 404 not to be retryable")
	}
	if got := (&StatusError{Provider: "mlbstats", StatusCode: 404, Body: "nope"}).Error(); got != "mlbstats: unexpected status 404: nope" {
		t.Fatalf("unexpected message %q", got)
	}
}
