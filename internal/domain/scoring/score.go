// Package scoring computes the quality score of a validated component.
// The blend and penalty values are tunable configuration, not a contract:
// they are calibrated so that a clean artifact in a satisfied project lands
// in the mid-90s and a single blocking issue drops below the default
// convergence threshold.
package scoring

import (
	"math"
	"regexp"

	"github.com/renderguard/renderguard/internal/domain"
)

// Weights holds every tunable of the scoring formula.
type Weights struct {
	Base          float64 `yaml:"base"           json:"base"`
	Accessibility float64 `yaml:"accessibility"  json:"accessibility"`
	Compliance    float64 `yaml:"compliance"     json:"compliance"`

	CriticalPenalty int `yaml:"critical_penalty" json:"critical_penalty"`
	ErrorPenalty    int `yaml:"error_penalty"    json:"error_penalty"`
	WarningPenalty  int `yaml:"warning_penalty"  json:"warning_penalty"`
	InfoPenalty     int `yaml:"info_penalty"     json:"info_penalty"`

	MemoBonus     int `yaml:"memo_bonus"     json:"memo_bonus"`
	SemanticBonus int `yaml:"semantic_bonus" json:"semantic_bonus"`
}

// DefaultWeights returns the calibrated defaults: issue penalties dominate
// at 70%, blended with accessibility and compliance heuristics at 15% each
// so a verbose-but-correct artifact is not over-penalized.
func DefaultWeights() Weights {
	return Weights{
		Base:          0.70,
		Accessibility: 0.15,
		Compliance:    0.15,

		CriticalPenalty: 15,
		ErrorPenalty:    15,
		WarningPenalty:  5,
		InfoPenalty:     2,

		MemoBonus:     10,
		SemanticBonus: 10,
	}
}

// accessibilityCategories are the issue categories counted against the
// accessibility sub-score.
var accessibilityCategories = map[string]bool{
	"missing_alt_text":     true,
	"missing_input_label":  true,
	"missing_button_label": true,
}

var (
	memoPatternRe    = regexp.MustCompile(`\b(React\.memo|useMemo|useCallback|memo\()`)
	semanticMarkerRe = regexp.MustCompile(`<(main|section|header|footer|nav|article|aside)\b`)
)

// Score computes the quality score in [0,100]. It is deterministic for a
// fixed artifact, issue set and compliance map.
func Score(artifact string, issues []domain.Issue, compliance map[string]bool, w Weights) int {
	base := 100
	accessibilityHits := 0
	for _, iss := range issues {
		switch iss.Severity {
		case domain.SeverityCritical:
			base -= w.CriticalPenalty
		case domain.SeverityError:
			base -= w.ErrorPenalty
		case domain.SeverityWarning:
			base -= w.WarningPenalty
		case domain.SeverityInfo:
			base -= w.InfoPenalty
		}
		if accessibilityCategories[iss.Category] {
			accessibilityHits++
		}
	}
	base = clamp(base)

	accessibility := clamp(100 - 20*accessibilityHits)
	comp := complianceScore(artifact, compliance, w)

	blended := w.Base*float64(base) + w.Accessibility*float64(accessibility) + w.Compliance*float64(comp)
	return clamp(int(math.Round(blended)))
}

// complianceScore rates compliance-map satisfaction plus heuristic bonuses
// for memoization patterns and semantic structural markers.
func complianceScore(artifact string, compliance map[string]bool, w Weights) int {
	score := 80
	if len(compliance) > 0 {
		satisfied := 0
		for _, ok := range compliance {
			if ok {
				satisfied++
			}
		}
		score = int(math.Round(float64(satisfied) / float64(len(compliance)) * 80))
	}

	if memoPatternRe.MatchString(artifact) {
		score += w.MemoBonus
	}
	if semanticMarkerRe.MatchString(artifact) {
		score += w.SemanticBonus
	}

	return clamp(score)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
