package fixers

import (
	"fmt"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/source"
)

// GateResult is the verdict of the safety gate over one candidate rewrite.
type GateResult struct {
	Accepted bool
	Reasons  []string
}

// Gate decides whether a candidate artifact may replace the pre-stage
// snapshot. Fixers (and the external remediation adapter) operate on raw
// text, not a verified tree, so a partial or hallucinated rewrite must be
// caught here before it is trusted.
func Gate(before, after string, fixes []domain.Fix, opts domain.Options) GateResult {
	var reasons []string

	if len(before) > 0 {
		ratio := float64(len(after)) / float64(len(before))
		if ratio > opts.MaxGrowthRatio || ratio < 1/opts.MaxGrowthRatio {
			reasons = append(reasons, fmt.Sprintf("length changed by %.1fx (limit %.1fx)", ratio, opts.MaxGrowthRatio))
		}
	}

	if source.HasExport(before) && !source.HasExport(after) {
		reasons = append(reasons, "export marker disappeared")
	}

	if source.CountDelims(before).Balanced() && !source.CountDelims(after).Balanced() {
		reasons = append(reasons, "delimiters became unbalanced")
	}

	for _, f := range fixes {
		if f.Confidence < opts.FixConfidenceFloor {
			reasons = append(reasons, fmt.Sprintf("fix %q confidence %.2f below floor %.2f",
				f.Description, f.Confidence, opts.FixConfidenceFloor))
		}
	}

	return GateResult{Accepted: len(reasons) == 0, Reasons: reasons}
}
