package rules

import (
	"fmt"
	"strings"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// ClientDirectiveRule requires the "use client" boundary marker whenever
// client-only React APIs are referenced. Only app-router frameworks enforce
// the server/client split.
type ClientDirectiveRule struct{}

func (ClientDirectiveRule) Name() string        { return "client_directive" }
func (ClientDirectiveRule) Stage() domain.Stage { return domain.StageFramework }

func (ClientDirectiveRule) Matches(cfg domain.TargetConfig) bool {
	return cfg.RequiresClientDirective()
}

func (ClientDirectiveRule) Check(artifact string, _ domain.TargetConfig) []domain.Issue {
	apis := source.ClientAPIs(artifact)
	if len(apis) == 0 || source.HasDirective(artifact, "use client") {
		return nil
	}
	return []domain.Issue{{
		Severity:    domain.SeverityError,
		Category:    "missing_client_directive",
		Message:     fmt.Sprintf("component uses client-only APIs (%s) without a \"use client\" directive", strings.Join(apis, ", ")),
		Line:        1,
		Suggestion:  "add \"use client\" as the first line",
		AutoFixable: true,
	}}
}

// MediaSizingRule requires explicit dimensions on media-embedding elements.
// Next.js layouts shift without them, so both next variants enforce it.
type MediaSizingRule struct{}

func (MediaSizingRule) Name() string        { return "media_sizing" }
func (MediaSizingRule) Stage() domain.Stage { return domain.StageFramework }

func (MediaSizingRule) Matches(cfg domain.TargetConfig) bool {
	return cfg.Framework == domain.FrameworkNextApp || cfg.Framework == domain.FrameworkNextPages
}

func (MediaSizingRule) Check(artifact string, _ domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue
	for _, tag := range source.Tags(artifact) {
		if tag.Name != "img" && tag.Name != "Image" {
			continue
		}
		if tag.HasAttr("fill") {
			continue
		}
		if tag.HasAttr("width") && tag.HasAttr("height") {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity:   domain.SeverityError,
			Category:   "missing_image_dimensions",
			Message:    fmt.Sprintf("<%s> requires explicit width and height (or fill)", tag.Name),
			Line:       tag.Line,
			Suggestion: "add width={...} and height={...} attributes",
		})
	}
	return issues
}
