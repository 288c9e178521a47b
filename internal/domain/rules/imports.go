package rules

import (
	"fmt"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// builtinModules resolve without appearing in package.json dependencies.
var builtinModules = map[string]bool{
	"react":     true,
	"react-dom": true,
	"next":      true,
}

// ImportsRule resolves bare module specifiers against the project's
// dependency set and flags duplicated imports of the same module.
// Relative and aliased paths are assumed valid: filesystem resolution is
// out of scope for this pipeline.
type ImportsRule struct{}

func (ImportsRule) Name() string                       { return "imports" }
func (ImportsRule) Stage() domain.Stage                { return domain.StageImports }
func (ImportsRule) Matches(_ domain.TargetConfig) bool { return true }

func (ImportsRule) Check(artifact string, cfg domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue

	seen := make(map[string]int)
	for _, imp := range source.Imports(artifact) {
		if prev, ok := seen[imp.Module]; ok {
			issues = append(issues, domain.Issue{
				Severity:    domain.SeverityWarning,
				Category:    "duplicate_import",
				Message:     fmt.Sprintf("module %q already imported on line %d", imp.Module, prev),
				Line:        imp.Line,
				Suggestion:  "merge into a single import statement",
				AutoFixable: true,
			})
			continue
		}
		seen[imp.Module] = imp.Line

		if source.IsRelative(imp.Module) {
			continue
		}
		root := domain.PackageRoot(imp.Module)
		if builtinModules[root] {
			continue
		}
		if !cfg.HasDependency(imp.Module) {
			issues = append(issues, domain.Issue{
				Severity:   domain.SeverityError,
				Category:   "missing_dependency",
				Message:    fmt.Sprintf("module %q is not in the project's dependencies", imp.Module),
				Line:       imp.Line,
				Suggestion: fmt.Sprintf("add %q to the project's dependencies or remove the import", root),
			})
		}
	}

	return issues
}
