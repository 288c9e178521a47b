package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// voidElements are HTML elements that never take children and must be
// self-closing in JSX.
var voidElements = map[string]bool{
	"img": true, "br": true, "hr": true, "input": true,
	"meta": true, "link": true, "source": true, "track": true, "wbr": true,
}

var (
	danglingExportRe = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s*;?\s*$`)
	closedVoidRe     = regexp.MustCompile(`</(img|br|hr|input|meta|link|source|track|wbr)>`)
)

// SyntaxRule detects malformed tag constructs, unbalanced delimiters and
// broken export statements. It applies to every configuration.
type SyntaxRule struct{}

func (SyntaxRule) Name() string                       { return "syntax" }
func (SyntaxRule) Stage() domain.Stage                { return domain.StageSyntax }
func (SyntaxRule) Matches(_ domain.TargetConfig) bool { return true }

func (SyntaxRule) Check(artifact string, _ domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue

	d := source.CountDelims(artifact)
	if !d.Balanced() {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Category: "unbalanced_delimiters",
			Message: fmt.Sprintf("unbalanced delimiters: %d/%d parens, %d/%d braces, %d/%d brackets",
				d.OpenParen, d.CloseParen, d.OpenBrace, d.CloseBrace, d.OpenBracket, d.CloseBracket),
		})
	}

	// Void elements written with a plain close angle are not valid JSX.
	for _, tag := range source.Tags(artifact) {
		if voidElements[tag.Name] && !tag.SelfClosing {
			issues = append(issues, domain.Issue{
				Severity:    domain.SeverityError,
				Category:    "malformed_tag",
				Message:     fmt.Sprintf("void element <%s> must be self-closing in JSX", tag.Name),
				Line:        tag.Line,
				Suggestion:  fmt.Sprintf("write <%s ... />", tag.Name),
				AutoFixable: true,
			})
		}
	}
	for _, m := range closedVoidRe.FindAllStringIndex(artifact, -1) {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Category: "malformed_tag",
			Message:  fmt.Sprintf("closing tag %s for a void element", strings.TrimSpace(artifact[m[0]:m[1]])),
			Line:     source.LineAt(artifact, m[0]),
		})
	}

	if m := danglingExportRe.FindStringIndex(artifact); m != nil {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Category: "malformed_export",
			Message:  "export default has no value",
			Line:     source.LineAt(artifact, m[0]),
		})
	}

	return issues
}
