package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// MaxBullets caps the number of bullet points returned.
	MaxBullets = 5

	// BulletSystemPrompt frames the model as a resume writer.
	BulletSystemPrompt = "You are a professional resume writer. Output valid JSON array of strings only."

	// BulletPromptTemplate takes position, company and the experience text.
	BulletPromptTemplate = "Create 3-5 resume bullet points for %s at %s based on: %s. Return JSON array."
)

var (
	bulletListSchema = gojsonschema.NewStringLoader(`{
		"type": "array",
		"items": {"type": "string", "minLength": 1}
	}`)
	bulletSchema = mustSchema(bulletListSchema)

	listMarker = regexp.MustCompile(`^[-•*]\s*`)
)

func mustSchema(l gojsonschema.JSONLoader) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(l)
	if err != nil {
		panic(err)
	}
	return s
}

// BulletGenerator sends one prompt to a language model and returns its raw text.
type BulletGenerator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// BulletRequest describes the experience to write bullet points for.
type BulletRequest struct {
	Experience string
	Position   string
	Company    string
}

// GenerateBullets asks the model once for bullet points. There is no retry.
func (u *resumeUsecase) GenerateBullets(ctx context.Context, req BulletRequest) ([]string, error) {
	experience := strings.TrimSpace(req.Experience)
	if experience == "" {
		return nil, fmt.Errorf("%w: experience description is required", ErrValidation)
	}
	if u.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrGenerationFailed)
	}

	prompt := fmt.Sprintf(BulletPromptTemplate,
		strings.TrimSpace(req.Position), strings.TrimSpace(req.Company), experience)
	raw, err := u.generator.Generate(ctx, BulletSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	bullets := ParseBullets(raw)
	if len(bullets) == 0 {
		return nil, fmt.Errorf("%w: no bullet points in model output", ErrGenerationFailed)
	}
	return bullets, nil
}

// ParseBullets extracts bullet points from model output. A JSON array of
// strings is preferred; anything else is read as one bullet per line with
// leading list markers removed. Blank items are dropped and at most
// MaxBullets are kept.
func ParseBullets(raw string) []string {
	clean := stripFences(raw)

	items, ok := parseJSONList(clean)
	if !ok {
		items = parseLines(raw)
	}

	out := make([]string, 0, MaxBullets)
	for _, it := range items {
		if it = strings.TrimSpace(it); it == "" {
			continue
		}
		out = append(out, it)
		if len(out) == MaxBullets {
			break
		}
	}
	return out
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func parseJSONList(s string) ([]string, bool) {
	res, err := bulletSchema.Validate(gojsonschema.NewStringLoader(s))
	if err != nil || !res.Valid() {
		return nil, false
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

func parseLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
