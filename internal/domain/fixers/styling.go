package fixers

import (
	"fmt"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/rules"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// defaultShade is appended to bare Tailwind color utilities. 500 is the
// palette midpoint and the shade Tailwind's own docs default to.
const defaultShade = "500"

// StylingTokenFixer canonicalizes Tailwind color tokens that lack their
// required shade qualifier.
type StylingTokenFixer struct{}

func (StylingTokenFixer) Name() string        { return "styling_tokens" }
func (StylingTokenFixer) Stage() domain.Stage { return domain.StageStyling }

func (StylingTokenFixer) CanFix(issues []domain.Issue) bool {
	return hasCategory(issues, "invalid_styling_token")
}

func (StylingTokenFixer) Fix(artifact string, _ []domain.Issue) (string, []domain.Fix) {
	var fixes []domain.Fix

	for _, attr := range source.ClassAttributes(artifact) {
		tokens := strings.Fields(attr.Value)
		changed := false
		for i, token := range tokens {
			if _, ok := rules.BareColorToken(token); ok {
				tokens[i] = token + "-" + defaultShade
				changed = true
				fixes = append(fixes, domain.Fix{
					Description:  fmt.Sprintf("canonicalized %q to %q", token, tokens[i]),
					Confidence:   0.8,
					SourceBefore: token,
					SourceAfter:  tokens[i],
					Category:     "invalid_styling_token",
				})
			}
		}
		if changed {
			artifact = strings.Replace(artifact, attr.Value, strings.Join(tokens, " "), 1)
		}
	}

	return artifact, fixes
}
