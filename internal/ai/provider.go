package ai

import (
	"context"
	"fmt"
)

// Provider performs one completion call per invocation. Retries are the
// caller's responsibility (see RetryPolicy).
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Kind classifies a provider failure. The retry policy and the HTTP layer
// branch on Kind only; raw SDK error text never leaves the client that
// produced it.
type Kind int

const (
	// KindTransient failures are worth retrying.
	KindTransient Kind = iota
	// KindQuotaExceeded means the provider refused for rate/quota reasons.
	KindQuotaExceeded
	// KindContentBlocked means the prompt or reply tripped a safety filter.
	KindContentBlocked
)

func (k Kind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindContentBlocked:
		return "content_blocked"
	default:
		return "transient"
	}
}

// ProviderError is a classified provider failure.
type ProviderError struct {
	Kind Kind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failure (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func quotaExceeded(err error) *ProviderError {
	return &ProviderError{Kind: KindQuotaExceeded, Err: err}
}

func contentBlocked(err error) *ProviderError {
	return &ProviderError{Kind: KindContentBlocked, Err: err}
}

func transient(err error) *ProviderError {
	return &ProviderError{Kind: KindTransient, Err: err}
}
