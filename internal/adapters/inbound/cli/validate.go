package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renderguard/renderguard/internal/adapters/outbound/catalog"
	configAdapter "github.com/renderguard/renderguard/internal/adapters/outbound/config"
	"github.com/renderguard/renderguard/internal/adapters/outbound/gitinfo"
	"github.com/renderguard/renderguard/internal/adapters/outbound/repair"
	"github.com/renderguard/renderguard/internal/adapters/outbound/tui"
	"github.com/renderguard/renderguard/internal/application"
	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/rules"
)

func newValidateCmd() *cobra.Command {
	var (
		projectPath string
		jsonOut     bool
		remediate   bool
		noRender    bool
		iterations  int
		threshold   int
	)

	cmd := &cobra.Command{
		Use:   "validate <component-file>",
		Short: "Validate and auto-fix a generated component",
		Long: "Run the staged validation pipeline on a component file: syntax, imports, framework " +
			"compliance, styling consistency, accessibility, patterns and project configuration. " +
			"Safe fixes are applied automatically; the corrected source and a quality report are returned.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading component: %w", err)
			}

			absProject, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving project path: %w", err)
			}

			settings, targetCfg, err := loadTarget(absProject)
			if err != nil {
				return err
			}

			opts := settings.Options
			if cmd.Flags().Changed("max-iterations") {
				opts.MaxIterations = iterations
			}
			if cmd.Flags().Changed("threshold") {
				opts.ScoreThreshold = threshold
			}
			if noRender {
				off := false
				opts.EnableRenderability = &off
			}
			opts.EnableRemediation = opts.EnableRemediation || remediate

			pOpts := []application.PipelineOption{
				application.WithWeights(settings.ScoringWeights()),
			}
			if opts.EnableRemediation {
				repairer, err := repair.New(repair.Config{})
				if err != nil {
					return fmt.Errorf("remediation unavailable: %w", err)
				}
				pOpts = append(pOpts, application.WithRepairAdapter(repairer))
			}

			pipeline, err := application.NewPipeline(rules.DefaultRegistry(), opts, pOpts...)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(cmd.Context(), string(artifact), targetCfg)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			stampGitMetadata(result, absProject)

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderIterations(result.Iterations))
			}

			if !result.Success {
				return fmt.Errorf("component did not reach quality threshold (score %d)", result.QualityScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", ".", "Target project root (package.json and .renderguard.yaml are read from here)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full report as JSON")
	cmd.Flags().BoolVar(&remediate, "remediate", false, "Allow one external remediation call for issues local fixers cannot handle")
	cmd.Flags().BoolVar(&noRender, "no-render", false, "Skip the renderability pass")
	cmd.Flags().IntVar(&iterations, "max-iterations", 0, "Override the iteration budget")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Override the quality score threshold")

	return cmd
}

// loadTarget merges .renderguard.yaml settings with what the project's
// package.json reveals. Explicit file settings win; detection fills gaps.
func loadTarget(projectPath string) (configAdapter.Settings, domain.TargetConfig, error) {
	settings, err := configAdapter.New().Load(projectPath)
	if err != nil {
		return configAdapter.Settings{}, domain.TargetConfig{}, err
	}

	target := settings.Target
	if detected, err := catalog.New().DetectConfig(projectPath); err == nil {
		if target.Framework == "" {
			target.Framework = detected.Framework
		}
		if target.StylingSystem == "" {
			target.StylingSystem = detected.StylingSystem
		}
		if len(target.Dependencies) == 0 {
			target.Dependencies = detected.Dependencies
		}
		target.UsesTypeScript = target.UsesTypeScript || detected.UsesTypeScript
	}

	return settings, target, nil
}

func stampGitMetadata(result *domain.PipelineResult, projectPath string) {
	git := gitinfo.New()
	if !git.IsGitRepo(projectPath) {
		return
	}
	if hash, err := git.CommitHash(projectPath); err == nil {
		if result.Metadata == nil {
			result.Metadata = map[string]string{}
		}
		result.Metadata["project_commit"] = hash
	}
}
