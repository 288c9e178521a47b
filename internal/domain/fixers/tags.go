package fixers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

var (
	voidTagNames = []string{"img", "br", "hr", "input", "meta", "link", "source", "track", "wbr"}
	voidCloseRe  = regexp.MustCompile(`\s*</(?:img|br|hr|input|meta|link|source|track|wbr)>`)
)

// SelfClosingTagFixer rewrites void elements to self-closing form and drops
// stray closing tags for them.
type SelfClosingTagFixer struct{}

func (SelfClosingTagFixer) Name() string        { return "self_closing_tags" }
func (SelfClosingTagFixer) Stage() domain.Stage { return domain.StageSyntax }

func (SelfClosingTagFixer) CanFix(issues []domain.Issue) bool {
	return hasCategory(issues, "malformed_tag")
}

func (SelfClosingTagFixer) Fix(artifact string, _ []domain.Issue) (string, []domain.Fix) {
	var fixes []domain.Fix

	for _, tag := range source.Tags(artifact) {
		if tag.SelfClosing || !isVoidTag(tag.Name) {
			continue
		}
		fixed := strings.TrimSuffix(tag.Raw, ">") + " />"
		artifact = strings.Replace(artifact, tag.Raw, fixed, 1)
		fixes = append(fixes, domain.Fix{
			Description:  fmt.Sprintf("self-closed void element <%s> on line %d", tag.Name, tag.Line),
			Confidence:   0.9,
			SourceBefore: tag.Raw,
			SourceAfter:  fixed,
			Category:     "malformed_tag",
		})
	}

	if m := voidCloseRe.FindString(artifact); m != "" {
		artifact = voidCloseRe.ReplaceAllString(artifact, "")
		fixes = append(fixes, domain.Fix{
			Description:  "removed closing tags on void elements",
			Confidence:   0.9,
			SourceBefore: m,
			Category:     "malformed_tag",
		})
	}

	return artifact, fixes
}

func isVoidTag(name string) bool {
	for _, v := range voidTagNames {
		if name == v {
			return true
		}
	}
	return false
}
