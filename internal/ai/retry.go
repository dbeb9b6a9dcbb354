package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxAttempts bounds the retry loop, first call included.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = 2000 * time.Millisecond
)

// ErrProviderUnavailable is returned when every attempt failed with a
// transient error.
var ErrProviderUnavailable = errors.New("AI provider unavailable")

// RetryPolicy retries transient provider failures with a fixed delay.
// Quota and content-block failures short-circuit: they are never retried.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	OnRetry     func(attempt int, err error)
}

func NewRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay}
}

// Generate calls the provider until it succeeds or the attempt budget runs
// out. The successful text is returned trimmed of surrounding whitespace.
func (p RetryPolicy) Generate(ctx context.Context, provider Provider, prompt string) (string, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := provider.Generate(ctx, prompt)
		if err == nil {
			return strings.TrimSpace(text), nil
		}

		var provErr *ProviderError
		if errors.As(err, &provErr) {
			if provErr.Kind == KindQuotaExceeded || provErr.Kind == KindContentBlocked {
				return "", err
			}
		}

		lastErr = err
		if attempt == maxAttempts {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v", ErrProviderUnavailable, maxAttempts, lastErr)
}
