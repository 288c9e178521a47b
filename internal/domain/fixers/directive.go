package fixers

import (
	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// ClientDirectiveFixer inserts the "use client" boundary marker at the very
// top of the artifact.
type ClientDirectiveFixer struct{}

func (ClientDirectiveFixer) Name() string        { return "client_directive" }
func (ClientDirectiveFixer) Stage() domain.Stage { return domain.StageFramework }

func (ClientDirectiveFixer) CanFix(issues []domain.Issue) bool {
	return hasCategory(issues, "missing_client_directive")
}

func (ClientDirectiveFixer) Fix(artifact string, _ []domain.Issue) (string, []domain.Fix) {
	if source.HasDirective(artifact, "use client") {
		return artifact, nil
	}
	fixed := "\"use client\"\n\n" + artifact
	return fixed, []domain.Fix{{
		Description: "inserted \"use client\" directive at the top of the component",
		Confidence:  0.95,
		SourceAfter: "\"use client\"",
		Category:    "missing_client_directive",
	}}
}
