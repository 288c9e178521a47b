package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/domain"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestNew_ExplicitKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	r, err := New(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "const x = 1", "const x = 1"},
		{"bare fence", "```\nconst x = 1\n```", "const x = 1"},
		{"tsx fence", "```tsx\nconst x = 1\n```", "const x = 1"},
		{"trailing blank after fence", "```tsx\nconst x = 1\n```\n\n", "const x = 1"},
		{"unclosed fence", "```tsx\nconst x = 1", "const x = 1"},
		{"inner fences preserved", "```\na\n```md\nb\n```", "a\n```md\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestParseComplianceReport(t *testing.T) {
	text := "Here is my assessment:\n" +
		`{"compliant": false, "issues": [{"severity": "error", "category": "styling_mix", "message": "inline styles"}]}` +
		"\nHope that helps."

	report, err := ParseComplianceReport(text)
	require.NoError(t, err)

	assert.False(t, report.Compliant)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, domain.SeverityError, report.Issues[0].Severity)
	assert.Equal(t, "styling_mix", report.Issues[0].Category)
}

func TestParseComplianceReport_FencedJSON(t *testing.T) {
	report, err := ParseComplianceReport("```json\n{\"compliant\": true}\n```")
	require.NoError(t, err)
	assert.True(t, report.Compliant)
	assert.Empty(t, report.Issues)
}

func TestParseComplianceReport_DefaultsForOmittedFields(t *testing.T) {
	report, err := ParseComplianceReport(`{"compliant": false, "issues": [{"message": "off-palette color"}]}`)
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	assert.Equal(t, domain.SeverityWarning, report.Issues[0].Severity)
	assert.Equal(t, "design_compliance", report.Issues[0].Category)
}

func TestParseComplianceReport_NoJSON(t *testing.T) {
	_, err := ParseComplianceReport("I cannot assess this component.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object")
}

func TestParseComplianceReport_MalformedJSON(t *testing.T) {
	_, err := ParseComplianceReport(`{"compliant": `)
	require.Error(t, err)
}

func TestBuildRepairPrompt(t *testing.T) {
	issues := []domain.Issue{
		{
			Severity:   domain.SeverityCritical,
			Category:   "unbalanced_delimiters",
			Message:    "1 unclosed '{'",
			Line:       12,
			Suggestion: "close the function body",
		},
	}
	cfg := domain.TargetConfig{
		Framework:      domain.FrameworkNextApp,
		StylingSystem:  domain.StylingTailwind,
		UsesTypeScript: true,
	}

	prompt := buildRepairPrompt("export default function X() {", issues, cfg)

	assert.Contains(t, prompt, "Target framework: next-app")
	assert.Contains(t, prompt, "TypeScript: true")
	assert.Contains(t, prompt, "[critical] unbalanced_delimiters")
	assert.Contains(t, prompt, "(line 12)")
	assert.Contains(t, prompt, "suggestion: close the function body")
	assert.True(t, strings.Contains(prompt, "```tsx\nexport default function X() {"))
}

func TestBuildCompliancePrompt(t *testing.T) {
	prompt := buildCompliancePrompt("<div />", domain.TargetConfig{
		Framework:     domain.FrameworkReact,
		StylingSystem: domain.StylingCSSModules,
	})

	assert.Contains(t, prompt, "Styling system: css-modules")
	assert.Contains(t, prompt, `"compliant": bool`)
	assert.Contains(t, prompt, "<div />")
}
