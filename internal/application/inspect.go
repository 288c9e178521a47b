package application

import (
	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/rules"
	"github.com/renderguard/renderguard/internal/domain/scoring"
)

// Inspection is a read-only quality assessment: one pass of every applicable
// rule with no fixing and no iteration.
type Inspection struct {
	Score         int                  `json:"score"`
	Grade         string               `json:"grade"`
	Issues        []domain.Issue       `json:"issues,omitempty"`
	BlockingCount int                  `json:"blocking_count"`
	StageStatus   map[string]bool      `json:"stage_status"`
	Stages        []domain.StageResult `json:"stages,omitempty"`
}

// Inspect checks the artifact against every rule applicable to the target
// configuration and scores the result. The artifact is never modified.
func Inspect(registry *rules.Registry, artifact string, cfg domain.TargetConfig, weights scoring.Weights) Inspection {
	grouped := registry.Applicable(cfg)

	var (
		all    []domain.Issue
		stages []domain.StageResult
		status = make(map[string]bool)
	)
	for _, stage := range domain.StageOrder {
		stageRules := grouped[stage]
		if len(stageRules) == 0 {
			continue
		}

		var issues []domain.Issue
		for _, rule := range stageRules {
			issues = append(issues, rule.Check(artifact, cfg)...)
		}

		passed := domain.CountBlocking(issues) == 0
		status[string(stage)] = passed
		stages = append(stages, domain.StageResult{
			Stage:  stage,
			Issues: issues,
			Passed: passed,
		})
		all = append(all, issues...)
	}

	score := scoring.Score(artifact, all, status, weights)
	return Inspection{
		Score:         score,
		Grade:         domain.Grade(score),
		Issues:        all,
		BlockingCount: domain.CountBlocking(all),
		StageStatus:   status,
		Stages:        stages,
	}
}
