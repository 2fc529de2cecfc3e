package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AnalysisPrompts(t *testing.T) {
	system, err := Get(AnalysisFile, KeySystem)
	require.NoError(t, err)
	assert.Contains(t, system, "Deal Breakers")

	user, err := Get(AnalysisFile, KeyUser)
	require.NoError(t, err)
	assert.Contains(t, user, "{{.Description}}")
	assert.Contains(t, user, `"role_scores"`)

	coaching, err := Get(AnalysisFile, KeyCoaching)
	require.NoError(t, err)
	assert.Contains(t, coaching, "## COACHING ANALYSIS REQUEST")
	assert.Contains(t, coaching, `"coaching_insights"`)
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(AnalysisFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"fills placeholders", "Role {{.Title}} at {{.Company}}", map[string]string{"Title": "CTO", "Company": "Acme"}, "Role CTO at Acme"},
		{"repeated placeholder", "{{.State}} or {{.State}}", map[string]string{"State": "GA"}, "GA or GA"},
		{"unknown placeholder kept", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"no placeholders", "plain", map[string]string{"Key": "Value"}, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render(AnalysisFile, KeyCoaching, map[string]string{"EvidenceContext": "EVIDENCE-BLOCK"})
	require.NoError(t, err)
	assert.Contains(t, out, "EVIDENCE-BLOCK")
	assert.NotContains(t, out, "{{.EvidenceContext}}")
}
