package gemini

import (
	"context"

	"resume_backend/internal/feature/resume/usecase"
	"resume_backend/internal/shared/ratelimiter"
)

// RateLimitedGenerator waits for the limiter before each call to the inner generator.
type RateLimitedGenerator struct {
	inner   usecase.BulletGenerator
	limiter ratelimiter.Limiter
}

// Compile-time check that RateLimitedGenerator implements BulletGenerator.
var _ usecase.BulletGenerator = (*RateLimitedGenerator)(nil)

// NewRateLimitedGenerator wraps inner.
func NewRateLimitedGenerator(inner usecase.BulletGenerator, limiter ratelimiter.Limiter) *RateLimitedGenerator {
	return &RateLimitedGenerator{inner: inner, limiter: limiter}
}

// Generate blocks until a slot is free, then makes the single call.
func (g *RateLimitedGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.inner.Generate(ctx, systemPrompt, prompt)
}
