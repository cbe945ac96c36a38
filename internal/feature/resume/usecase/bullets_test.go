package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBulletGenerator is a mock implementation of BulletGenerator.
type mockBulletGenerator struct {
	GenerateFunc func(ctx context.Context, systemPrompt, prompt string) (string, error)
	calls        int
}

func (m *mockBulletGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	m.calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, prompt)
	}
	return `["Did a thing"]`, nil
}

func TestParseBullets(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "plain JSON array",
			raw:  `["Led migration to Go", "Cut latency by 40%"]`,
			want: []string{"Led migration to Go", "Cut latency by 40%"},
		},
		{
			name: "fenced JSON array",
			raw:  "```json\n[\"Built CI\", \"Wrote docs\"]\n```",
			want: []string{"Built CI", "Wrote docs"},
		},
		{
			name: "markdown list fallback",
			raw:  "- Led X\n• Built Y\n\n* Z",
			want: []string{"Led X", "Built Y", "Z"},
		},
		{
			name: "fenced prose fallback drops fence lines",
			raw:  "```\n- One\n- Two\n```",
			want: []string{"One", "Two"},
		},
		{
			name: "array of non-strings falls back to lines",
			raw:  `[1, 2]`,
			want: []string{"[1, 2]"},
		},
		{
			name: "blank items are dropped",
			raw:  `["A", "  ", "B"]`,
			want: []string{"A", "B"},
		},
		{
			name: "capped at five",
			raw:  `["1","2","3","4","5","6","7"]`,
			want: []string{"1", "2", "3", "4", "5"},
		},
		{
			name: "empty output",
			raw:  "  \n ``` \n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBullets(tt.raw))
		})
	}
}

func TestGenerateBullets(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the prompt and parses the answer", func(t *testing.T) {
		gen := &mockBulletGenerator{GenerateFunc: func(_ context.Context, sys, prompt string) (string, error) {
			assert.Equal(t, BulletSystemPrompt, sys)
			assert.Equal(t, "Create 3-5 resume bullet points for Engineer at Acme based on: built APIs. Return JSON array.", prompt)
			return "- Built APIs\n- Scaled them", nil
		}}
		uc := NewResumeUsecase(nil, gen, nil)

		got, err := uc.GenerateBullets(ctx, BulletRequest{Experience: " built APIs ", Position: "Engineer", Company: "Acme"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Built APIs", "Scaled them"}, got)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("experience is required", func(t *testing.T) {
		gen := &mockBulletGenerator{}
		uc := NewResumeUsecase(nil, gen, nil)

		_, err := uc.GenerateBullets(ctx, BulletRequest{Experience: "   "})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, gen.calls, "model must not be called")
	})

	t.Run("transport failure is not retried", func(t *testing.T) {
		gen := &mockBulletGenerator{GenerateFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("quota exceeded")
		}}
		uc := NewResumeUsecase(nil, gen, nil)

		_, err := uc.GenerateBullets(ctx, BulletRequest{Experience: "x"})

		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("empty answer", func(t *testing.T) {
		gen := &mockBulletGenerator{GenerateFunc: func(context.Context, string, string) (string, error) {
			return "```\n```", nil
		}}
		uc := NewResumeUsecase(nil, gen, nil)

		_, err := uc.GenerateBullets(ctx, BulletRequest{Experience: "x"})

		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
	t.Run("no generator configured", func(t *testing.T) {
		uc := NewResumeUsecase(nil, nil, nil)

		_, err := uc.GenerateBullets(ctx, BulletRequest{Experience: "x"})

		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}
