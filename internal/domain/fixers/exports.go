package fixers

import (
	"fmt"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// DefaultExportFixer appends a default export for the detected component.
// It declines when no component name is identifiable.
type DefaultExportFixer struct{}

func (DefaultExportFixer) Name() string        { return "default_export" }
func (DefaultExportFixer) Stage() domain.Stage { return domain.StagePatterns }

func (DefaultExportFixer) CanFix(issues []domain.Issue) bool {
	return hasCategory(issues, "missing_default_export")
}

func (DefaultExportFixer) Fix(artifact string, _ []domain.Issue) (string, []domain.Fix) {
	if source.HasDefaultExport(artifact) {
		return artifact, nil
	}
	name := source.ComponentName(artifact)
	if name == "" {
		return artifact, nil
	}

	stmt := fmt.Sprintf("export default %s", name)
	fixed := strings.TrimRight(artifact, "\n") + "\n\n" + stmt + "\n"
	return fixed, []domain.Fix{{
		Description: fmt.Sprintf("appended default export for %s", name),
		Confidence:  0.85,
		SourceAfter: stmt,
		Category:    "missing_default_export",
	}}
}

// AltTextFixer inserts an empty alt attribute on images that have none.
// An empty alt marks the image decorative, which is the safe default when
// the fixer cannot know the image's meaning.
type AltTextFixer struct{}

func (AltTextFixer) Name() string        { return "alt_text" }
func (AltTextFixer) Stage() domain.Stage { return domain.StageAccessibility }

func (AltTextFixer) CanFix(issues []domain.Issue) bool {
	return hasCategory(issues, "missing_alt_text")
}

func (AltTextFixer) Fix(artifact string, _ []domain.Issue) (string, []domain.Fix) {
	var fixes []domain.Fix

	for _, tag := range source.Tags(artifact) {
		if tag.Name != "img" && tag.Name != "Image" {
			continue
		}
		if tag.HasAttr("alt") {
			continue
		}
		var fixed string
		if tag.SelfClosing {
			fixed = strings.TrimSuffix(tag.Raw, "/>") + `alt="" />`
		} else {
			fixed = strings.TrimSuffix(tag.Raw, ">") + ` alt="">`
		}
		artifact = strings.Replace(artifact, tag.Raw, fixed, 1)
		fixes = append(fixes, domain.Fix{
			Description:  fmt.Sprintf("added empty alt attribute to <%s> on line %d", tag.Name, tag.Line),
			Confidence:   0.6,
			SourceBefore: tag.Raw,
			SourceAfter:  fixed,
			Category:     "missing_alt_text",
		})
	}

	return artifact, fixes
}
