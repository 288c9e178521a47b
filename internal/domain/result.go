package domain

import "time"

// StageResult holds the outcome of one stage within one iteration.
type StageResult struct {
	Stage        Stage   `json:"stage"`
	Issues       []Issue `json:"issues,omitempty"`
	FixesApplied []Fix   `json:"fixes_applied,omitempty"`
	Passed       bool    `json:"passed"`
}

// IterationResult groups the stage results of one full pass over the
// artifact, with the blocking-issue count used for convergence tracking.
type IterationResult struct {
	Iteration     int           `json:"iteration"`
	Stages        []StageResult `json:"stages"`
	BlockingCount int           `json:"blocking_count"`
	Score         int           `json:"score"`
}

// PipelineResult is the final report returned to the caller. It is immutable
// after return; even on success AllIssues carries the full diagnostic detail.
type PipelineResult struct {
	FinalArtifact   string            `json:"final_artifact"`
	Success         bool              `json:"success"`
	QualityScore    int               `json:"quality_score"`
	StagesPassed    []Stage           `json:"stages_passed"`
	AllIssues       []Issue           `json:"all_issues"`
	AllFixesApplied []Fix             `json:"all_fixes_applied"`
	ComplianceMap   map[string]bool   `json:"compliance_map"`
	IterationsUsed  int               `json:"iterations_used"`
	IssuesReduced   int               `json:"issues_reduced"`
	Iterations      []IterationResult `json:"iterations,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}

// Grade maps a quality score to a letter grade for display.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ComplianceReport is the answer of the optional design-compliance collaborator.
type ComplianceReport struct {
	Compliant bool    `json:"compliant"`
	Issues    []Issue `json:"issues,omitempty"`
}
