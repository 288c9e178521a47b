// Package fixers contains deterministic text transforms that remediate
// auto-fixable issues. Fixers chain within a stage: each consumes the
// previous fixer's output, and the whole stage result must clear the safety
// gate before it replaces the artifact.
package fixers

import "github.com/renderguard/renderguard/internal/domain"

// Fixer remediates one issue category with a deterministic rewrite.
type Fixer interface {
	Name() string
	Stage() domain.Stage
	CanFix(issues []domain.Issue) bool
	Fix(artifact string, issues []domain.Issue) (string, []domain.Fix)
}

// DefaultFixers returns the built-in fixers in declaration order, which is
// also their execution order within a stage.
func DefaultFixers() []Fixer {
	return []Fixer{
		SelfClosingTagFixer{},
		DedupeImportsFixer{},
		ClientDirectiveFixer{},
		StylingTokenFixer{},
		AltTextFixer{},
		DefaultExportFixer{},
	}
}

// hasCategory reports whether any issue carries the given category.
func hasCategory(issues []domain.Issue, category string) bool {
	for _, iss := range issues {
		if iss.Category == category {
			return true
		}
	}
	return false
}
