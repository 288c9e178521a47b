// Package repair implements the external remediation and design compliance
// adapters on top of the Anthropic Messages API.
package repair

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/renderguard/renderguard/internal/domain"
)

const (
	defaultModel     = anthropic.ModelClaudeSonnet4_20250514
	repairMaxTokens  = 8192
	repairSystemText = "You repair React/JSX components. You receive a component " +
		"and a list of validation issues. Return the complete corrected component " +
		"source and nothing else. Do not add features, comments, or explanations. " +
		"Preserve the component's behavior and structure."
	complianceSystemText = "You review React/JSX components for framework and " +
		"styling compliance. Respond with a single JSON object and nothing else."
)

// Repairer calls Claude to rewrite components the local fixers cannot
// handle. It implements both domain.RepairAdapter and
// domain.ComplianceAdapter.
type Repairer struct {
	client anthropic.Client
	model  anthropic.Model
}

// Config configures the repair adapter.
type Config struct {
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY.
	APIKey string
	// Model overrides the default Claude model.
	Model anthropic.Model
}

// New creates a Repairer. Fails fast when no API key is available so the
// pipeline can fall back to local-only fixing at startup.
func New(cfg Config) (*Repairer, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Repairer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Repair sends the artifact and its open blocking issues to Claude and
// returns the rewritten source. The caller validates and gates the result;
// this adapter only guarantees it returns non-empty code or an error.
func (r *Repairer) Repair(ctx context.Context, artifact string, issues []domain.Issue, cfg domain.TargetConfig) (string, error) {
	prompt := buildRepairPrompt(artifact, issues, cfg)

	text, err := r.complete(ctx, repairSystemText, prompt)
	if err != nil {
		return "", fmt.Errorf("remediation request: %w", err)
	}

	repaired := StripCodeFence(text)
	if strings.TrimSpace(repaired) == "" {
		return "", fmt.Errorf("remediation returned empty output")
	}
	return repaired, nil
}

// CheckCompliance asks Claude for a structured compliance verdict.
func (r *Repairer) CheckCompliance(ctx context.Context, artifact string, cfg domain.TargetConfig) (domain.ComplianceReport, error) {
	prompt := buildCompliancePrompt(artifact, cfg)

	text, err := r.complete(ctx, complianceSystemText, prompt)
	if err != nil {
		return domain.ComplianceReport{}, fmt.Errorf("compliance request: %w", err)
	}

	return ParseComplianceReport(text)
}

func (r *Repairer) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: repairMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}
	return sb.String(), nil
}

func buildRepairPrompt(artifact string, issues []domain.Issue, cfg domain.TargetConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target framework: %s\nStyling system: %s\nTypeScript: %t\n\n",
		cfg.Framework, cfg.StylingSystem, cfg.UsesTypeScript)

	sb.WriteString("Validation issues to fix:\n")
	for _, iss := range issues {
		fmt.Fprintf(&sb, "- [%s] %s: %s", iss.Severity, iss.Category, iss.Message)
		if iss.Line > 0 {
			fmt.Fprintf(&sb, " (line %d)", iss.Line)
		}
		if iss.Suggestion != "" {
			fmt.Fprintf(&sb, "; suggestion: %s", iss.Suggestion)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nComponent:\n```tsx\n")
	sb.WriteString(artifact)
	sb.WriteString("\n```\n")
	return sb.String()
}

func buildCompliancePrompt(artifact string, cfg domain.TargetConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target framework: %s\nStyling system: %s\n\n", cfg.Framework, cfg.StylingSystem)
	sb.WriteString("Check the component for framework and styling compliance. ")
	sb.WriteString(`Reply with JSON: {"compliant": bool, "issues": [{"severity": "warning", "category": "...", "message": "..."}]}`)
	sb.WriteString("\n\nComponent:\n```tsx\n")
	sb.WriteString(artifact)
	sb.WriteString("\n```\n")
	return sb.String()
}

// StripCodeFence removes a surrounding markdown code fence, if present.
// Models often wrap code in ```tsx blocks despite instructions not to.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	// Drop the opening fence line (``` or ```tsx).
	lines = lines[1:]
	// Drop the closing fence if it's the last non-empty line.
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if strings.TrimSpace(lines[i]) == "```" {
			lines = lines[:i]
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParseComplianceReport decodes the model's JSON verdict, tolerating a code
// fence around the object.
func ParseComplianceReport(text string) (domain.ComplianceReport, error) {
	raw := StripCodeFence(text)

	// Tolerate prose around the object by slicing the outermost braces.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return domain.ComplianceReport{}, fmt.Errorf("compliance response contains no JSON object")
	}

	var report domain.ComplianceReport
	if err := json.Unmarshal([]byte(raw[start:end+1]), &report); err != nil {
		return domain.ComplianceReport{}, fmt.Errorf("parsing compliance response: %w", err)
	}

	for i := range report.Issues {
		if report.Issues[i].Severity == "" {
			report.Issues[i].Severity = domain.SeverityWarning
		}
		if report.Issues[i].Category == "" {
			report.Issues[i].Category = "design_compliance"
		}
	}
	return report, nil
}
