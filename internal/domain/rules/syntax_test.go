package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/domain"
)

func findCategory(issues []domain.Issue, category string) *domain.Issue {
	for i := range issues {
		if issues[i].Category == category {
			return &issues[i]
		}
	}
	return nil
}

func TestSyntaxRule_CleanComponent(t *testing.T) {
	artifact := `export default function Box() {
  return (
    <div>
      <img src="a.png" alt="" />
    </div>
  )
}`
	assert.Empty(t, SyntaxRule{}.Check(artifact, domain.TargetConfig{}))
}

func TestSyntaxRule_UnbalancedDelimiters(t *testing.T) {
	issues := SyntaxRule{}.Check("function Box() { return (<div>", domain.TargetConfig{})

	iss := findCategory(issues, "unbalanced_delimiters")
	require.NotNil(t, iss)
	assert.Equal(t, domain.SeverityCritical, iss.Severity)
	assert.False(t, iss.AutoFixable)
}

func TestSyntaxRule_VoidElementNotSelfClosed(t *testing.T) {
	artifact := `export default function Pic() {
  return <div><img src="a.png"></div>
}`
	issues := SyntaxRule{}.Check(artifact, domain.TargetConfig{})

	iss := findCategory(issues, "malformed_tag")
	require.NotNil(t, iss)
	assert.Equal(t, domain.SeverityError, iss.Severity)
	assert.True(t, iss.AutoFixable)
	assert.Equal(t, 2, iss.Line)
}

func TestSyntaxRule_ClosingTagOnVoidElement(t *testing.T) {
	issues := SyntaxRule{}.Check(`<img src="a.png"></img>`, domain.TargetConfig{})

	var count int
	for _, iss := range issues {
		if iss.Category == "malformed_tag" {
			count++
		}
	}
	// The closing </img> is one issue; the opening tag is self-contained.
	assert.GreaterOrEqual(t, count, 1)
}

func TestSyntaxRule_DanglingExport(t *testing.T) {
	artifact := "function Box() { return <div /> }\nexport default\n"
	issues := SyntaxRule{}.Check(artifact, domain.TargetConfig{})

	iss := findCategory(issues, "malformed_export")
	require.NotNil(t, iss)
	assert.Equal(t, domain.SeverityError, iss.Severity)
	assert.Equal(t, 2, iss.Line)
}
