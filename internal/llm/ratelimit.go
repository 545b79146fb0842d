package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Client with a token-bucket limiter so a single noisy
// session can't exhaust the shared provider quota (grounded on
// FACorreiaa-loci-connect-api's x/time/rate dependency).
type RateLimited struct {
	inner   Client
	limiter *rate.Limiter
}

// NewRateLimited allows callsPerSecond sustained calls with a burst of
// burst before blocking.
func NewRateLimited(inner Client, callsPerSecond float64, burst int) *RateLimited {
	return &RateLimited{inner: inner, limiter: rate.NewLimiter(rate.Limit(callsPerSecond), burst)}
}

func (r *RateLimited) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Chat(ctx, messages, opts)
}

func (r *RateLimited) Complete(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Complete(ctx, prompt, opts)
}

func (r *RateLimited) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.ExtractJSON(ctx, prompt, systemPrompt)
}
