package fixers

import (
	"fmt"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// DedupeImportsFixer merges repeated imports of the same module into the
// first statement, unioning their named bindings.
type DedupeImportsFixer struct{}

func (DedupeImportsFixer) Name() string        { return "dedupe_imports" }
func (DedupeImportsFixer) Stage() domain.Stage { return domain.StageImports }

func (DedupeImportsFixer) CanFix(issues []domain.Issue) bool {
	return hasCategory(issues, "duplicate_import")
}

func (DedupeImportsFixer) Fix(artifact string, _ []domain.Issue) (string, []domain.Fix) {
	imports := source.Imports(artifact)

	first := make(map[string]source.ImportStatement)
	duplicates := make(map[string][]source.ImportStatement)
	for _, imp := range imports {
		if _, ok := first[imp.Module]; !ok {
			first[imp.Module] = imp
			continue
		}
		duplicates[imp.Module] = append(duplicates[imp.Module], imp)
	}

	var fixes []domain.Fix
	for module, dups := range duplicates {
		head := first[module]
		merged := mergeClauses(head, dups)

		if merged != head.Raw {
			artifact = strings.Replace(artifact, head.Raw, merged, 1)
		}
		for _, d := range dups {
			artifact = removeLine(artifact, d.Raw)
		}
		fixes = append(fixes, domain.Fix{
			Description:  fmt.Sprintf("merged %d duplicate import(s) of %q", len(dups), module),
			Confidence:   0.9,
			SourceBefore: head.Raw,
			SourceAfter:  merged,
			Category:     "duplicate_import",
		})
	}

	return artifact, fixes
}

// mergeClauses unions the named bindings of duplicates into the head import.
// Default and namespace bindings stay with whichever statement declared them
// first; identical clauses collapse to one.
func mergeClauses(head source.ImportStatement, dups []source.ImportStatement) string {
	defaultName, named := splitClause(head.Clause)
	seen := make(map[string]bool)
	for _, n := range named {
		seen[n] = true
	}

	for _, d := range dups {
		dDefault, dNamed := splitClause(d.Clause)
		if defaultName == "" {
			defaultName = dDefault
		}
		for _, n := range dNamed {
			if !seen[n] {
				seen[n] = true
				named = append(named, n)
			}
		}
	}

	var parts []string
	if defaultName != "" {
		parts = append(parts, defaultName)
	}
	if len(named) > 0 {
		parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("import %q", head.Module)
	}
	return fmt.Sprintf("import %s from %q", strings.Join(parts, ", "), head.Module)
}

// splitClause separates "Default, { a, b }" into its default binding and the
// named binding list.
func splitClause(clause string) (string, []string) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return "", nil
	}

	var named []string
	defaultName := clause
	if open := strings.Index(clause, "{"); open >= 0 {
		defaultName = strings.TrimSuffix(strings.TrimSpace(clause[:open]), ",")
		inner := clause[open+1:]
		if close := strings.Index(inner, "}"); close >= 0 {
			inner = inner[:close]
		}
		for _, n := range strings.Split(inner, ",") {
			if n = strings.TrimSpace(n); n != "" {
				named = append(named, n)
			}
		}
	}
	return strings.TrimSpace(defaultName), named
}

// removeLine deletes the line containing the exact statement text.
func removeLine(artifact, stmt string) string {
	lines := strings.Split(artifact, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == strings.TrimSpace(stmt) {
			return strings.Join(append(lines[:i], lines[i+1:]...), "\n")
		}
	}
	return strings.Replace(artifact, stmt, "", 1)
}
