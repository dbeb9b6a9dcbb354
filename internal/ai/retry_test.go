package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubProvider scripts one outcome per attempt.
type stubProvider struct {
	calls   int
	outcome func(call int) (string, error)
}

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.outcome(s.calls)
}

func (s *stubProvider) Close() error { return nil }

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 10 * time.Millisecond}
}

func TestRetryPolicy_SuccessFirstAttempt(t *testing.T) {
	provider := &stubProvider{outcome: func(int) (string, error) {
		return "  Hi there!\n", nil
	}}

	reply, err := testPolicy().Generate(context.Background(), provider, "hello")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if reply != "Hi there!" {
		t.Errorf("Expected trimmed reply 'Hi there!', got %q", reply)
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
}

func TestRetryPolicy_SuccessAfterTransientFailures(t *testing.T) {
	provider := &stubProvider{outcome: func(call int) (string, error) {
		if call < 3 {
			return "", transient(errors.New("connection reset"))
		}
		return "third time lucky", nil
	}}

	reply, err := testPolicy().Generate(context.Background(), provider, "hello")
	if err != nil {
		t.Fatalf("Expected success on third attempt, got %v", err)
	}
	if reply != "third time lucky" {
		t.Errorf("Unexpected reply %q", reply)
	}
	if provider.calls != 3 {
		t.Errorf("Expected 3 provider calls, got %d", provider.calls)
	}
}

func TestRetryPolicy_QuotaShortCircuits(t *testing.T) {
	provider := &stubProvider{outcome: func(int) (string, error) {
		return "", quotaExceeded(errors.New("429: quota exhausted"))
	}}

	_, err := testPolicy().Generate(context.Background(), provider, "hello")
	if err == nil {
		t.Fatal("Expected error")
	}
	if provider.calls != 1 {
		t.Errorf("Quota failure must not be retried, got %d calls", provider.calls)
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Kind != KindQuotaExceeded {
		t.Errorf("Expected quota_exceeded classification, got %v", err)
	}
}

func TestRetryPolicy_ContentBlockedShortCircuits(t *testing.T) {
	provider := &stubProvider{outcome: func(int) (string, error) {
		return "", contentBlocked(errors.New("safety filter triggered"))
	}}

	_, err := testPolicy().Generate(context.Background(), provider, "hello")
	if err == nil {
		t.Fatal("Expected error")
	}
	if provider.calls != 1 {
		t.Errorf("Blocked failure must not be retried, got %d calls", provider.calls)
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Kind != KindContentBlocked {
		t.Errorf("Expected content_blocked classification, got %v", err)
	}
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	var retries []int
	policy := testPolicy()
	policy.OnRetry = func(attempt int, err error) {
		retries = append(retries, attempt)
	}

	provider := &stubProvider{outcome: func(int) (string, error) {
		return "", transient(errors.New("upstream timeout"))
	}}

	start := time.Now()
	_, err := policy.Generate(context.Background(), provider, "hello")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
	if provider.calls != 3 {
		t.Errorf("Expected exactly 3 provider calls, got %d", provider.calls)
	}
	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("Expected OnRetry after attempts 1 and 2, got %v", retries)
	}
	if elapsed < 2*policy.Delay {
		t.Errorf("Expected at least %v between first and last attempt, elapsed %v", 2*policy.Delay, elapsed)
	}
}

func TestRetryPolicy_ContextCancelledDuringDelay(t *testing.T) {
	provider := &stubProvider{outcome: func(int) (string, error) {
		return "", transient(errors.New("flaky"))
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Second}
	_, err := policy.Generate(ctx, provider, "hello")

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected context deadline error, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", provider.calls)
	}
}

func TestRetryPolicy_ZeroValueUsesDefaults(t *testing.T) {
	policy := NewRetryPolicy()
	if policy.MaxAttempts != 3 {
		t.Errorf("Expected 3 max attempts, got %d", policy.MaxAttempts)
	}
	if policy.Delay != 2000*time.Millisecond {
		t.Errorf("Expected 2000ms delay, got %v", policy.Delay)
	}
}
