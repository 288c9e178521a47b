package rules

import (
	"regexp"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

var (
	propsTypeRe = regexp.MustCompile(`(?:interface|type)\s+\w*Props\b`)
	anyUsageRe  = regexp.MustCompile(`:\s*any\b|<any>|as\s+any\b`)
)

// TypeScriptRule applies only under type-checking configurations: props
// should be described by an interface and `any` defeats the type checker.
type TypeScriptRule struct{}

func (TypeScriptRule) Name() string        { return "typescript" }
func (TypeScriptRule) Stage() domain.Stage { return domain.StageConfiguration }

func (TypeScriptRule) Matches(cfg domain.TargetConfig) bool {
	return cfg.UsesTypeScript
}

func (TypeScriptRule) Check(artifact string, _ domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue

	if len(source.PropNames(artifact)) > 0 && !propsTypeRe.MatchString(artifact) {
		issues = append(issues, domain.Issue{
			Severity:   domain.SeverityInfo,
			Category:   "missing_props_interface",
			Message:    "component takes props without a Props interface or type alias",
			Suggestion: "declare an interface describing the props",
		})
	}

	for _, m := range anyUsageRe.FindAllStringIndex(artifact, -1) {
		issues = append(issues, domain.Issue{
			Severity:   domain.SeverityWarning,
			Category:   "any_usage",
			Message:    "explicit any bypasses type checking",
			Line:       source.LineAt(artifact, m[0]),
			Suggestion: "replace any with a concrete type",
		})
	}

	return issues
}
