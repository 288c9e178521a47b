// Package render performs the deeper, dependency-aware structural pass that
// runs once per request alongside the staged pipeline. It answers one
// question the per-stage validators cannot: would this component survive a
// structural render at all?
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

var dynamicImportRe = regexp.MustCompile(`(?:\bimport\(|\brequire\()\s*['"]([^'"]+)['"]`)

// Check runs every renderability probe and returns issues in the same shape
// as the staged validators.
func Check(artifact string, cfg domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue
	issues = append(issues, checkDependencies(artifact, cfg)...)
	issues = append(issues, checkDirectives(artifact, cfg)...)
	issues = append(issues, checkTypeInterfaces(artifact, cfg)...)
	issues = append(issues, simulateRender(artifact)...)
	return issues
}

// checkDependencies resolves every referenced module, including dynamic
// import() and require() calls the import validator does not see.
func checkDependencies(artifact string, cfg domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue

	seen := make(map[string]bool)
	report := func(module string, line int) {
		if seen[module] || source.IsRelative(module) {
			return
		}
		seen[module] = true
		root := domain.PackageRoot(module)
		if root == "react" || root == "react-dom" || root == "next" {
			return
		}
		if !cfg.HasDependency(module) {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Category: "unresolved_dependency",
				Message:  fmt.Sprintf("module %q cannot be resolved in the target project", module),
				Line:     line,
			})
		}
	}

	for _, imp := range source.Imports(artifact) {
		report(imp.Module, imp.Line)
	}
	for _, m := range dynamicImportRe.FindAllStringSubmatchIndex(artifact, -1) {
		report(artifact[m[2]:m[3]], source.LineAt(artifact, m[0]))
	}

	return issues
}

// checkDirectives verifies framework boundary markers at render depth.
func checkDirectives(artifact string, cfg domain.TargetConfig) []domain.Issue {
	if !cfg.RequiresClientDirective() {
		return nil
	}
	if len(source.ClientAPIs(artifact)) == 0 || source.HasDirective(artifact, "use client") {
		return nil
	}
	return []domain.Issue{{
		Severity: domain.SeverityError,
		Category: "render_boundary_violation",
		Message:  "component would render on the server while calling client-only APIs",
	}}
}

// checkTypeInterfaces is a presence heuristic: typed projects should
// describe their props.
func checkTypeInterfaces(artifact string, cfg domain.TargetConfig) []domain.Issue {
	if !cfg.UsesTypeScript {
		return nil
	}
	props := source.PropNames(artifact)
	if len(props) == 0 {
		return nil
	}
	if regexp.MustCompile(`(?:interface|type)\s+\w+\s*[={]`).MatchString(artifact) {
		return nil
	}
	return []domain.Issue{{
		Severity: domain.SeverityInfo,
		Category: "untyped_props",
		Message:  fmt.Sprintf("props (%s) have no type declaration", strings.Join(props, ", ")),
	}}
}

// simulateRender performs the structural render test: with synthetic values
// bound to the component's own declared prop names, the component must
// export something, return markup and keep its delimiters paired.
func simulateRender(artifact string) []domain.Issue {
	props := source.PropNames(artifact)
	var failures []string

	if !source.HasExport(artifact) {
		failures = append(failures, "no export statement")
	}
	if !source.HasReturnWithMarkup(artifact) {
		failures = append(failures, "no return with markup")
	}
	if !source.CountDelims(artifact).Balanced() {
		failures = append(failures, "unbalanced delimiters")
	}

	if len(failures) == 0 {
		return nil
	}
	return []domain.Issue{{
		Severity: domain.SeverityCritical,
		Category: "render_failure",
		Message: fmt.Sprintf("structural render with %d synthetic prop(s) failed: %s",
			len(props), strings.Join(failures, "; ")),
	}}
}
