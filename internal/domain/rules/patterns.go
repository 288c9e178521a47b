package rules

import (
	"fmt"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// NamingRule checks component naming conventions and export presence.
// Violations are informational; they shape consistency, not correctness.
type NamingRule struct{}

func (NamingRule) Name() string                       { return "naming" }
func (NamingRule) Stage() domain.Stage                { return domain.StagePatterns }
func (NamingRule) Matches(_ domain.TargetConfig) bool { return true }

func (NamingRule) Check(artifact string, _ domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue

	name := source.ComponentName(artifact)
	if name == "" {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: "unidentified_component",
			Message:  "no component declaration found (function or const with a PascalCase name)",
		})
	} else {
		if !isPascalCase(name) {
			issues = append(issues, domain.Issue{
				Severity:   domain.SeverityWarning,
				Category:   "component_naming",
				Message:    fmt.Sprintf("component %q is not PascalCase", name),
				Suggestion: "React components must start with an uppercase letter",
			})
		}
		// 2-4 CamelCase words is the sweet spot for discoverable names.
		if n := len(camelcase.Split(name)); n > 4 {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityInfo,
				Category: "component_naming_length",
				Message:  fmt.Sprintf("component name %q has %d words; 2-4 is conventional", name, n),
			})
		}
	}

	if source.HasExport(artifact) && !source.HasDefaultExport(artifact) {
		issues = append(issues, domain.Issue{
			Severity:    domain.SeverityWarning,
			Category:    "missing_default_export",
			Message:     "component has no default export",
			Suggestion:  "generated components are imported by default export",
			AutoFixable: true,
		})
	}

	return issues
}

func isPascalCase(name string) bool {
	if name == "" {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if r == '_' || r == '-' {
			return false
		}
	}
	return true
}
