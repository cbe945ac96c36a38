package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	err   error
	calls int
}

func (l *stubLimiter) Wait(context.Context) error {
	l.calls++
	return l.err
}

type countingGenerator struct{ calls int }

func (g *countingGenerator) Generate(context.Context, string, string) (string, error) {
	g.calls++
	return `["Built APIs"]`, nil
}

func TestRateLimitedGenerator(t *testing.T) {
	t.Run("waits then calls once", func(t *testing.T) {
		lim, inner := &stubLimiter{}, &countingGenerator{}

		out, err := NewRateLimitedGenerator(inner, lim).Generate(context.Background(), "sys", "p")

		assert.NoError(t, err)
		assert.Equal(t, `["Built APIs"]`, out)
		assert.Equal(t, 1, lim.calls)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("cancelled wait skips the call", func(t *testing.T) {
		lim, inner := &stubLimiter{err: context.Canceled}, &countingGenerator{}

		_, err := NewRateLimitedGenerator(inner, lim).Generate(context.Background(), "sys", "p")

		assert.True(t, errors.Is(err, context.Canceled))
		assert.Zero(t, inner.calls)
	})
}
