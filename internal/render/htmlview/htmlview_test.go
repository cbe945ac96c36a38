package htmlview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_backend/internal/render"
)

func sampleDoc() render.Document {
	return render.Document{
		Title: "CV",
		Header: render.Header{
			Name:    "Alice <Admin>",
			Contact: "alice@x.com | Berlin",
			Links:   []string{"Website: https://alice.dev"},
		},
		Sections: []render.Section{
			{Kind: render.KindExperience, Heading: "Work Experience", Entries: []render.Entry{
				{Title: "Engineer at Acme", Period: "Jan 2020 - Present", Bullets: []string{"Built things"}},
			}},
			{Kind: render.KindSkills, Heading: "Skills", Body: "Go, SQL"},
		},
	}
}

func TestRender_ContainsSectionsInOrder(t *testing.T) {
	out, err := RenderString(sampleDoc(), "classic")
	require.NoError(t, err)

	exp := strings.Index(out, `data-section="experience"`)
	skills := strings.Index(out, `data-section="skills"`)
	require.Greater(t, exp, 0)
	assert.Greater(t, skills, exp)
	assert.NotContains(t, out, `data-section="summary"`)
	assert.Contains(t, out, `<span class="period">Jan 2020 - Present</span>`)
	assert.Contains(t, out, "<li>Built things</li>")
	assert.Contains(t, out, "Website: https://alice.dev")
	assert.Contains(t, out, "template-classic")
}

func TestRender_EscapesUserText(t *testing.T) {
	out, err := RenderString(sampleDoc(), "modern")
	require.NoError(t, err)

	assert.Contains(t, out, "Alice &lt;Admin&gt;")
	assert.NotContains(t, out, "<Admin>")
}

func TestRender_UnknownTemplateFallsBack(t *testing.T) {
	out, err := RenderString(sampleDoc(), "fancy")
	require.NoError(t, err)
	assert.Contains(t, out, "template-"+DefaultTemplate)
}

func TestTemplates(t *testing.T) {
	assert.Equal(t, []string{"classic", "minimal", "modern"}, Templates())
}
