package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renderguard/renderguard/internal/application"
	"github.com/renderguard/renderguard/internal/domain/rules"
)

func newScoreCmd() *cobra.Command {
	var (
		projectPath string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "score <component-file>",
		Short: "Score a component without modifying it",
		Long:  "Run every applicable check once and report the quality score. Nothing is fixed and no iteration happens.",
		Args:  cobra.ExactArgs(1),
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

			insp := application.Inspect(rules.DefaultRegistry(), string(artifact), targetCfg, settings.ScoringWeights())

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(insp)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "score: %d/100 (%s)\n", insp.Score, insp.Grade)
			fmt.Fprintf(cmd.OutOrStdout(), "blocking issues: %d\n", insp.BlockingCount)
			for _, iss := range insp.Issues {
				line := ""
				if iss.Line > 0 {
					line = fmt.Sprintf(" L%d", iss.Line)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  [%s]%s %s: %s\n", iss.Severity, line, iss.Category, iss.Message)
			}

			if insp.BlockingCount > 0 {
				return fmt.Errorf("component has %d blocking issue(s)", insp.BlockingCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", ".", "Target project root")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the inspection as JSON")

	return cmd
}
