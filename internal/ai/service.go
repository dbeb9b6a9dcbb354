package ai

import (
	"context"
	"log"
)

// Service is the completion pipeline handed to the HTTP layer: one provider
// behind the retry policy. Attempt failures are logged here and never
// surface to the client beyond the mapped status code.
type Service struct {
	provider Provider
	policy   RetryPolicy
}

func NewService(provider Provider, policy RetryPolicy) *Service {
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, err error) {
			log.Printf("AI attempt %d failed, retrying: %v", attempt, err)
		}
	}
	return &Service{provider: provider, policy: policy}
}

func (s *Service) Complete(ctx context.Context, message string) (string, error) {
	return s.policy.Generate(ctx, s.provider, message)
}
