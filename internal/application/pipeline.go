// Package application orchestrates the validation pipeline: the stage
// runner applies one stage, the pipeline iterates the full stage sequence
// until the quality threshold is met or the iteration budget is exhausted.
package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/fixers"
	"github.com/renderguard/renderguard/internal/domain/render"
	"github.com/renderguard/renderguard/internal/domain/rules"
	"github.com/renderguard/renderguard/internal/domain/scoring"
)

// ErrEmptyArtifact rejects runs with nothing to validate.
var ErrEmptyArtifact = errors.New("artifact is empty")

// remediationConfidence is assigned to externally repaired artifacts: above
// the default floor, but low enough that a raised floor shuts the door.
const remediationConfidence = 0.6

// Pipeline is the convergence controller. All state is local per Run
// invocation, so one Pipeline may validate artifacts concurrently.
type Pipeline struct {
	registry   *rules.Registry
	fixers     []fixers.Fixer
	weights    scoring.Weights
	repair     domain.RepairAdapter
	compliance domain.ComplianceAdapter
	opts       domain.Options
}

// PipelineOption customizes pipeline construction.
type PipelineOption func(*Pipeline)

// WithRepairAdapter installs the external code-repair collaborator.
func WithRepairAdapter(r domain.RepairAdapter) PipelineOption {
	return func(p *Pipeline) { p.repair = r }
}

// WithComplianceAdapter installs the optional design-compliance collaborator.
func WithComplianceAdapter(c domain.ComplianceAdapter) PipelineOption {
	return func(p *Pipeline) { p.compliance = c }
}

// WithFixers replaces the default fixer chain.
func WithFixers(fx []fixers.Fixer) PipelineOption {
	return func(p *Pipeline) { p.fixers = fx }
}

// WithWeights replaces the default scoring weights.
func WithWeights(w scoring.Weights) PipelineOption {
	return func(p *Pipeline) { p.weights = w }
}

// NewPipeline validates the options and builds a pipeline over the shared
// rule registry. Invalid options are configuration-level misuse and fail
// construction rather than surfacing mid-run.
func NewPipeline(registry *rules.Registry, opts domain.Options, pOpts ...PipelineOption) (*Pipeline, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	p := &Pipeline{
		registry: registry,
		fixers:   fixers.DefaultFixers(),
		weights:  scoring.DefaultWeights(),
		opts:     opts,
	}
	for _, o := range pOpts {
		o(p)
	}
	return p, nil
}

// iterationState carries the best candidate seen so far across iterations.
type iterationState struct {
	artifact string
	score    int
	issues   []domain.Issue
	stages   []domain.StageResult
}

// Run validates and remediates the artifact until the quality threshold is
// met or the iteration budget is exhausted, then aggregates the report.
// Cancellation is cooperative and checked between iterations.
func (p *Pipeline) Run(ctx context.Context, artifact string, cfg domain.TargetConfig) (*domain.PipelineResult, error) {
	if len(artifact) == 0 {
		return nil, ErrEmptyArtifact
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	grouped := p.registry.Applicable(cfg)
	runner := NewStageRunner(p.fixers, p.opts)

	var (
		best             iterationState
		iterations       []domain.IterationResult
		allFixes         []domain.Fix
		initialBlocking  = -1
		remediationTried bool
		success          bool
	)

	current := artifact
	for iter := 1; iter <= p.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, stageResults := p.runStages(runner, grouped, current, cfg)
		current = next

		issues := collectIssues(stageResults)
		for _, sr := range stageResults {
			allFixes = append(allFixes, sr.FixesApplied...)
		}

		score := scoring.Score(current, issues, complianceMap(stageResults), p.weights)
		blocking := domain.CountBlocking(issues)
		if initialBlocking < 0 {
			initialBlocking = blocking
		}

		iterations = append(iterations, domain.IterationResult{
			Iteration:     iter,
			Stages:        stageResults,
			BlockingCount: blocking,
			Score:         score,
		})

		if best.artifact == "" || score > best.score {
			best = iterationState{artifact: current, score: score, issues: issues, stages: stageResults}
		}

		if score >= p.opts.ScoreThreshold && blocking == 0 {
			success = true
			break
		}

		// External remediation is a last resort: only for blocking issues
		// no local fixer claims, at most once per run, and only while an
		// iteration remains to re-validate whatever comes back.
		if blocking > 0 && iter < p.opts.MaxIterations && !remediationTried &&
			p.remediationAvailable() && !p.locallyFixable(issues) {
			remediationTried = true
			if repaired, fix, ok := p.remediate(ctx, current, issues, cfg); ok {
				current = repaired
				allFixes = append(allFixes, fix)
			}
		}
	}

	result := p.aggregate(ctx, best, cfg, iterations, allFixes, initialBlocking, success)
	return result, nil
}

// runStages executes the ordered stage list once. After a stage ends with a
// critical issue unresolved, later stages still check but stop fixing: their
// transforms would operate on text the earlier stage could not trust.
func (p *Pipeline) runStages(runner *StageRunner, grouped map[domain.Stage][]rules.Rule, artifact string, cfg domain.TargetConfig) (string, []domain.StageResult) {
	var results []domain.StageResult
	allowFixing := true

	for _, stage := range domain.StageOrder {
		stageRules := grouped[stage]
		if len(stageRules) == 0 {
			continue
		}
		next, sr := runner.Run(stage, stageRules, artifact, cfg, allowFixing)
		artifact = next
		results = append(results, sr)

		if !sr.Passed && hasCritical(sr.Issues) {
			allowFixing = false
		}
	}

	return artifact, results
}

// remediate calls the external adapter under its mandatory timeout and
// gates the returned artifact exactly like a local fix. A failed, unsafe or
// timed-out call leaves the artifact unchanged with the issues still open.
func (p *Pipeline) remediate(ctx context.Context, artifact string, issues []domain.Issue, cfg domain.TargetConfig) (string, domain.Fix, bool) {
	callCtx, cancel := context.WithTimeout(ctx, p.opts.RemediationTimeout)
	defer cancel()

	repaired, err := p.repair.Repair(callCtx, artifact, blockingOnly(issues), cfg)
	if err != nil || repaired == "" {
		return artifact, domain.Fix{}, false
	}

	fix := domain.Fix{
		Description:  "external remediation of blocking issues",
		Confidence:   remediationConfidence,
		SourceBefore: artifact,
		SourceAfter:  repaired,
		Category:     "external_remediation",
	}
	if gate := fixers.Gate(artifact, repaired, []domain.Fix{fix}, p.opts); !gate.Accepted {
		return artifact, domain.Fix{}, false
	}
	return repaired, fix, true
}

// aggregate merges the best iteration, the renderability cross-check and
// the optional design-compliance verdict into the final report.
func (p *Pipeline) aggregate(ctx context.Context, best iterationState, cfg domain.TargetConfig, iterations []domain.IterationResult, allFixes []domain.Fix, initialBlocking int, success bool) *domain.PipelineResult {
	issues := best.issues
	compliance := complianceMap(best.stages)

	if p.opts.RenderabilityEnabled() {
		renderIssues := render.Check(best.artifact, cfg)
		issues = append(issues, renderIssues...)
		compliance["renderability"] = domain.CountBlocking(renderIssues) == 0
	}

	if p.compliance != nil {
		callCtx, cancel := context.WithTimeout(ctx, p.opts.RemediationTimeout)
		report, err := p.compliance.CheckCompliance(callCtx, best.artifact, cfg)
		cancel()
		if err == nil {
			issues = append(issues, report.Issues...)
			compliance["design_compliance"] = report.Compliant
		}
	}

	score := scoring.Score(best.artifact, issues, compliance, p.weights)
	finalBlocking := domain.CountBlocking(issues)
	success = success && finalBlocking == 0 && score >= p.opts.ScoreThreshold

	var stagesPassed []domain.Stage
	for _, sr := range best.stages {
		if sr.Passed {
			stagesPassed = append(stagesPassed, sr.Stage)
		}
	}

	reduced := initialBlocking - finalBlocking
	if reduced < 0 {
		reduced = 0
	}

	return &domain.PipelineResult{
		FinalArtifact:   best.artifact,
		Success:         success,
		QualityScore:    score,
		StagesPassed:    stagesPassed,
		AllIssues:       issues,
		AllFixesApplied: allFixes,
		ComplianceMap:   compliance,
		IterationsUsed:  len(iterations),
		IssuesReduced:   reduced,
		Iterations:      iterations,
		Metadata: map[string]string{
			"framework":       string(cfg.Framework),
			"styling_system":  string(cfg.StylingSystem),
			"score_threshold": strconv.Itoa(p.opts.ScoreThreshold),
		},
		Timestamp: time.Now(),
	}
}

func (p *Pipeline) remediationAvailable() bool {
	return p.opts.EnableRemediation && p.repair != nil
}

// locallyFixable reports whether any fixer claims the remaining blocking
// issues.
func (p *Pipeline) locallyFixable(issues []domain.Issue) bool {
	blocking := blockingOnly(issues)
	for _, f := range p.fixers {
		if f.CanFix(blocking) {
			return true
		}
	}
	return false
}

func blockingOnly(issues []domain.Issue) []domain.Issue {
	var out []domain.Issue
	for _, iss := range issues {
		if iss.Blocking() {
			out = append(out, iss)
		}
	}
	return out
}

func hasCritical(issues []domain.Issue) bool {
	for _, iss := range issues {
		if iss.Severity == domain.SeverityCritical {
			return true
		}
	}
	return false
}

func collectIssues(stages []domain.StageResult) []domain.Issue {
	var out []domain.Issue
	for _, sr := range stages {
		out = append(out, sr.Issues...)
	}
	return out
}

// complianceMap records pass/fail per executed stage.
func complianceMap(stages []domain.StageResult) map[string]bool {
	m := make(map[string]bool, len(stages))
	for _, sr := range stages {
		m[string(sr.Stage)] = sr.Passed
	}
	return m
}
