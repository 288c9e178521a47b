package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/fixers"
	"github.com/renderguard/renderguard/internal/domain/rules"
)

type panickyRule struct{}

func (panickyRule) Name() string                       { return "panicky" }
func (panickyRule) Stage() domain.Stage                { return domain.StageSyntax }
func (panickyRule) Matches(_ domain.TargetConfig) bool { return true }
func (panickyRule) Check(string, domain.TargetConfig) []domain.Issue {
	panic("validator exploded")
}

type panickyFixer struct{}

func (panickyFixer) Name() string               { return "panicky_fixer" }
func (panickyFixer) Stage() domain.Stage        { return domain.StageSyntax }
func (panickyFixer) CanFix([]domain.Issue) bool { return true }
func (panickyFixer) Fix(string, []domain.Issue) (string, []domain.Fix) {
	panic("fixer exploded")
}

func syntaxRules() []rules.Rule {
	return []rules.Rule{rules.SyntaxRule{}}
}

func TestStageRunner_CleanArtifactPassesImmediately(t *testing.T) {
	runner := NewStageRunner(fixers.DefaultFixers(), domain.DefaultOptions())
	artifact := "export default function A() { return <div /> }"

	out, result := runner.Run(domain.StageSyntax, syntaxRules(), artifact, domain.TargetConfig{}, true)

	assert.Equal(t, artifact, out)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.FixesApplied)
}

func TestStageRunner_FixesAndRechecks(t *testing.T) {
	runner := NewStageRunner(fixers.DefaultFixers(), domain.DefaultOptions())
	artifact := `export default function Pic() {
  return <div><img src="a.png"></div>
}`

	out, result := runner.Run(domain.StageSyntax, syntaxRules(), artifact, domain.TargetConfig{}, true)

	assert.True(t, result.Passed)
	assert.Contains(t, out, `<img src="a.png" />`)
	require.NotEmpty(t, result.FixesApplied)
	assert.Equal(t, "malformed_tag", result.FixesApplied[0].Category)
	assert.Equal(t, 0, domain.CountBlocking(result.Issues))
}

func TestStageRunner_FixingWithheld(t *testing.T) {
	runner := NewStageRunner(fixers.DefaultFixers(), domain.DefaultOptions())
	artifact := `export default function Pic() {
  return <div><img src="a.png"></div>
}`

	out, result := runner.Run(domain.StageSyntax, syntaxRules(), artifact, domain.TargetConfig{}, false)

	assert.Equal(t, artifact, out)
	assert.False(t, result.Passed)
	assert.Empty(t, result.FixesApplied)
}

func TestStageRunner_UnfixableCriticalFails(t *testing.T) {
	runner := NewStageRunner(fixers.DefaultFixers(), domain.DefaultOptions())
	artifact := "function A() { return (<div>"

	out, result := runner.Run(domain.StageSyntax, syntaxRules(), artifact, domain.TargetConfig{}, true)

	assert.Equal(t, artifact, out)
	assert.False(t, result.Passed)
	assert.Positive(t, domain.CountBlocking(result.Issues))
}

func TestStageRunner_PanickingRuleBecomesIssue(t *testing.T) {
	runner := NewStageRunner(nil, domain.DefaultOptions())

	out, result := runner.Run(domain.StageSyntax, []rules.Rule{panickyRule{}}, "whatever", domain.TargetConfig{}, true)

	assert.Equal(t, "whatever", out)
	assert.True(t, result.Passed) // a warning never blocks the stage
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "validator_error", result.Issues[0].Category)
	assert.Equal(t, domain.SeverityWarning, result.Issues[0].Severity)
	assert.Contains(t, result.Issues[0].Message, "panicky")
}

func TestStageRunner_PanickingFixerBecomesIssue(t *testing.T) {
	runner := NewStageRunner([]fixers.Fixer{panickyFixer{}}, domain.DefaultOptions())
	artifact := `export default function Pic() {
  return <img src="a.png">
}`

	out, result := runner.Run(domain.StageSyntax, syntaxRules(), artifact, domain.TargetConfig{}, true)

	assert.Equal(t, artifact, out)

	var fault *domain.Issue
	for i := range result.Issues {
		if result.Issues[i].Category == "fixer_error" {
			fault = &result.Issues[i]
		}
	}
	require.NotNil(t, fault)
	assert.Equal(t, domain.SeverityWarning, fault.Severity)
}
