package application

import (
	"fmt"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/fixers"
	"github.com/renderguard/renderguard/internal/domain/rules"
)

// StageRunner applies one stage's rules and fixers to an artifact, walking
// the per-stage state machine:
//
//	Idle → Checking → (IssuesFound → Fixing → Rechecking) → Passed|Failed
//
// A stage that fails never aborts the run; later stages still execute.
type StageRunner struct {
	fixers []fixers.Fixer
	opts   domain.Options
}

// NewStageRunner creates a runner over the given fixer chain.
func NewStageRunner(fx []fixers.Fixer, opts domain.Options) *StageRunner {
	return &StageRunner{fixers: fx, opts: opts}
}

// Run executes one stage and returns the (possibly fixed) artifact plus the
// stage result. When allowFixing is false (an earlier stage left a critical
// issue unresolved this iteration) the stage only checks; its fixers are
// withheld until the blocker clears.
func (r *StageRunner) Run(stage domain.Stage, stageRules []rules.Rule, artifact string, cfg domain.TargetConfig, allowFixing bool) (string, domain.StageResult) {
	// Checking.
	issues := r.check(stageRules, artifact, cfg)

	// No blocking issues and nothing to fix: Passed immediately.
	fixable := allowFixing && r.anyFixable(stage, issues)
	if domain.CountBlocking(issues) == 0 && !fixable {
		return artifact, domain.StageResult{Stage: stage, Issues: issues, Passed: true}
	}

	var applied []domain.Fix
	if fixable {
		// IssuesFound → Fixing. The pre-stage snapshot is retained so the
		// safety gate can discard the candidate instead of undoing in place.
		snapshot := artifact
		candidate, fxs, faults := r.fix(stage, artifact, issues)

		if gate := fixers.Gate(snapshot, candidate, fxs, r.opts); gate.Accepted {
			artifact = candidate
			applied = fxs
		}

		// Rechecking.
		issues = append(r.check(stageRules, artifact, cfg), faults...)
	}

	return artifact, domain.StageResult{
		Stage:        stage,
		Issues:       issues,
		FixesApplied: applied,
		Passed:       domain.CountBlocking(issues) == 0,
	}
}

// check runs every rule, recovering panics at the runner boundary: one bad
// rule must never abort the pipeline.
func (r *StageRunner) check(stageRules []rules.Rule, artifact string, cfg domain.TargetConfig) []domain.Issue {
	var issues []domain.Issue
	for _, rule := range stageRules {
		issues = append(issues, checkSafely(rule, artifact, cfg)...)
	}
	return issues
}

func checkSafely(rule rules.Rule, artifact string, cfg domain.TargetConfig) (out []domain.Issue) {
	defer func() {
		if p := recover(); p != nil {
			out = []domain.Issue{{
				Severity: domain.SeverityWarning,
				Category: "validator_error",
				Message:  fmt.Sprintf("rule %q panicked: %v", rule.Name(), p),
			}}
		}
	}()
	return rule.Check(artifact, cfg)
}

// fix chains the stage's applicable fixers in declaration order; each fixer
// consumes the previous output. Panicking fixers are recorded and skipped.
func (r *StageRunner) fix(stage domain.Stage, artifact string, issues []domain.Issue) (string, []domain.Fix, []domain.Issue) {
	var applied []domain.Fix
	var faults []domain.Issue

	for _, f := range r.fixers {
		if f.Stage() != stage || !f.CanFix(issues) {
			continue
		}
		next, fxs, err := fixSafely(f, artifact, issues)
		if err != nil {
			faults = append(faults, domain.Issue{
				Severity: domain.SeverityWarning,
				Category: "fixer_error",
				Message:  err.Error(),
			})
			continue
		}
		artifact = next
		applied = append(applied, fxs...)
	}

	return artifact, applied, faults
}

func fixSafely(f fixers.Fixer, artifact string, issues []domain.Issue) (out string, fxs []domain.Fix, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, fxs = artifact, nil
			err = fmt.Errorf("fixer %q panicked: %v", f.Name(), p)
		}
	}()
	out, fxs = f.Fix(artifact, issues)
	return out, fxs, nil
}

// anyFixable reports whether some fixer of this stage claims the issues.
func (r *StageRunner) anyFixable(stage domain.Stage, issues []domain.Issue) bool {
	for _, f := range r.fixers {
		if f.Stage() == stage && f.CanFix(issues) {
			return true
		}
	}
	return false
}
