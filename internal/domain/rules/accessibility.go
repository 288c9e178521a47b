package rules

import (
	"fmt"
	"regexp"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// iconOnlyButtonRe matches a button whose first child is an svg or an
// Icon-suffixed component, i.e. no visible text for screen readers.
var iconOnlyButtonRe = regexp.MustCompile(`<button([^>]*)>\s*<(svg|[A-Z]\w*Icon)\b`)

// AccessibilityRule checks descriptive attributes on interactive and media
// elements. Everything here is warning-level: accessibility gaps are
// reported but never block convergence.
type AccessibilityRule struct{}

func (AccessibilityRule) Name() string                       { return "accessibility" }
func (AccessibilityRule) Stage() domain.Stage                { return domain.StageAccessibility }
func (AccessibilityRule) Matches(_ domain.TargetConfig) bool { return true }

func (AccessibilityRule) Check(artifact string, _ domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue

	for _, tag := range source.Tags(artifact) {
		switch tag.Name {
		case "img", "Image":
			if !tag.HasAttr("alt") {
				issues = append(issues, domain.Issue{
					Severity:    domain.SeverityWarning,
					Category:    "missing_alt_text",
					Message:     fmt.Sprintf("<%s> has no alt attribute", tag.Name),
					Line:        tag.Line,
					Suggestion:  "describe the image, or use alt=\"\" for decorative images",
					AutoFixable: true,
				})
			}
		case "input", "textarea", "select":
			if !tag.HasAttr("aria-label") && !tag.HasAttr("aria-labelledby") && !tag.HasAttr("id") {
				issues = append(issues, domain.Issue{
					Severity:   domain.SeverityWarning,
					Category:   "missing_input_label",
					Message:    fmt.Sprintf("<%s> has no label association (id, aria-label or aria-labelledby)", tag.Name),
					Line:       tag.Line,
					Suggestion: "add an id referenced by a <label>, or an aria-label",
				})
			}
		}
	}

	for _, m := range iconOnlyButtonRe.FindAllStringSubmatchIndex(artifact, -1) {
		attrs := artifact[m[2]:m[3]]
		if regexp.MustCompile(`aria-label\s*=`).MatchString(attrs) {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity:   domain.SeverityWarning,
			Category:   "missing_button_label",
			Message:    "icon-only button has no aria-label",
			Line:       source.LineAt(artifact, m[0]),
			Suggestion: "add aria-label describing the action",
		})
	}

	return issues
}
