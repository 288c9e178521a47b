package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// tailwindPrefixes are utility-class prefixes from the Tailwind lexicon.
var tailwindPrefixes = []string{
	"bg-", "text-", "border-", "ring-", "fill-", "stroke-",
	"p-", "px-", "py-", "pt-", "pb-", "pl-", "pr-",
	"m-", "mx-", "my-", "mt-", "mb-", "ml-", "mr-",
	"w-", "h-", "min-w-", "min-h-", "max-w-", "max-h-",
	"rounded-", "shadow-", "items-", "justify-", "gap-", "space-",
	"font-", "leading-", "tracking-", "grid-", "col-", "row-",
}

// tailwindBare are standalone Tailwind utilities without a value suffix.
var tailwindBare = map[string]bool{
	"flex": true, "grid": true, "block": true, "inline": true,
	"hidden": true, "relative": true, "absolute": true, "fixed": true,
	"rounded": true, "shadow": true, "truncate": true, "underline": true,
}

// tailwindPalette are color families that require a numeric shade qualifier
// (bg-blue is invalid, bg-blue-500 is not).
var tailwindPalette = map[string]bool{
	"slate": true, "gray": true, "zinc": true, "neutral": true, "stone": true,
	"red": true, "orange": true, "amber": true, "yellow": true, "lime": true,
	"green": true, "emerald": true, "teal": true, "cyan": true, "sky": true,
	"blue": true, "indigo": true, "violet": true, "purple": true,
	"fuchsia": true, "pink": true, "rose": true,
}

var (
	styledUsageRe = regexp.MustCompile(`\bstyled[.(]`)
	colorPrefixes = []string{"bg-", "text-", "border-", "ring-", "fill-", "stroke-"}
)

// StylingRule enforces that a component styles itself with the target
// project's system. A foreign system is critical: the classes silently do
// nothing (or the styled template never resolves) at runtime.
type StylingRule struct{}

func (StylingRule) Name() string        { return "styling" }
func (StylingRule) Stage() domain.Stage { return domain.StageStyling }

func (StylingRule) Matches(cfg domain.TargetConfig) bool {
	return cfg.StylingSystem != ""
}

func (StylingRule) Check(artifact string, cfg domain.TargetConfig) []domain.Issue {
	switch cfg.StylingSystem {
	case domain.StylingTailwind:
		return checkTailwind(artifact)
	case domain.StylingStyledComponents, domain.StylingCSSModules:
		return checkComponentStyling(artifact, cfg.StylingSystem)
	default:
		return nil
	}
}

// checkTailwind flags styled-components usage and malformed utility tokens.
func checkTailwind(artifact string) []domain.Issue {
	var issues []domain.Issue

	if m := styledUsageRe.FindStringIndex(artifact); m != nil {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Category: "foreign_styling_system",
			Message:  "styled-components template used in a Tailwind project",
			Line:     source.LineAt(artifact, m[0]),
		})
	}

	for _, attr := range source.ClassAttributes(artifact) {
		for _, token := range strings.Fields(attr.Value) {
			if color, ok := BareColorToken(token); ok {
				issues = append(issues, domain.Issue{
					Severity:    domain.SeverityError,
					Category:    "invalid_styling_token",
					Message:     fmt.Sprintf("Tailwind color %q is missing a shade qualifier", token),
					Line:        attr.Line,
					Suggestion:  fmt.Sprintf("use %s-500 (or another shade) instead of %s", token, color),
					AutoFixable: true,
				})
			}
		}
	}

	return issues
}

// BareColorToken reports whether token is a color utility lacking its shade,
// returning the color family name.
func BareColorToken(token string) (string, bool) {
	for _, p := range colorPrefixes {
		if !strings.HasPrefix(token, p) {
			continue
		}
		rest := strings.TrimPrefix(token, p)
		if tailwindPalette[rest] {
			return rest, true
		}
	}
	return "", false
}

// checkComponentStyling flags Tailwind utility strings when the project
// styles through component props or CSS modules.
func checkComponentStyling(artifact string, system domain.StylingSystem) []domain.Issue {
	var issues []domain.Issue
	for _, attr := range source.ClassAttributes(artifact) {
		for _, token := range strings.Fields(attr.Value) {
			if !looksLikeTailwind(token) {
				continue
			}
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityCritical,
				Category: "foreign_styling_system",
				Message:  fmt.Sprintf("Tailwind utility class %q in a %s project", token, system),
				Line:     attr.Line,
			})
			break // one issue per attribute is enough signal
		}
	}
	return issues
}

func looksLikeTailwind(token string) bool {
	if tailwindBare[token] {
		return true
	}
	for _, p := range tailwindPrefixes {
		if strings.HasPrefix(token, p) && len(token) > len(p) {
			return true
		}
	}
	return false
}
