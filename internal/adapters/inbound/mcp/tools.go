package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/renderguard/renderguard/internal/adapters/outbound/catalog"
	configAdapter "github.com/renderguard/renderguard/internal/adapters/outbound/config"
	"github.com/renderguard/renderguard/internal/application"
	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/render"
	"github.com/renderguard/renderguard/internal/domain/rules"
)

// registerTools registers all RenderGuard MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. renderguard_validate
	s.AddTool(
		mcplib.NewTool("renderguard_validate",
			mcplib.WithDescription("Validate a generated component through the full pipeline with auto-fixing. Returns the corrected source and the quality report as JSON."),
			mcplib.WithString("component",
				mcplib.Required(),
				mcplib.Description("The component source code to validate"),
			),
		),
		handleValidate(projectPath),
	)

	// 2. renderguard_score
	s.AddTool(
		mcplib.NewTool("renderguard_score",
			mcplib.WithDescription("Score a component without modifying it. Returns the quality score, grade and all issues as JSON."),
			mcplib.WithString("component",
				mcplib.Required(),
				mcplib.Description("The component source code to score"),
			),
		),
		handleScore(projectPath),
	)

	// 3. renderguard_renderability
	s.AddTool(
		mcplib.NewTool("renderguard_renderability",
			mcplib.WithDescription("Run only the renderability checks: dependency resolution, client/server boundaries, type interfaces and a simulated render."),
			mcplib.WithString("component",
				mcplib.Required(),
				mcplib.Description("The component source code to check"),
			),
		),
		handleRenderability(projectPath),
	)

	// 4. renderguard_config
	s.AddTool(
		mcplib.NewTool("renderguard_config",
			mcplib.WithDescription("Returns the resolved target configuration (framework, styling system, TypeScript, dependency count) for the project"),
		),
		handleConfig(projectPath),
	)
}

// resolveTarget loads .renderguard.yaml and fills gaps from package.json.
func resolveTarget(projectPath string) (configAdapter.Settings, domain.TargetConfig, error) {
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

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		component, err := request.RequireString("component")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		settings, targetCfg, err := resolveTarget(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}

		pipeline, err := application.NewPipeline(rules.DefaultRegistry(), settings.Options,
			application.WithWeights(settings.ScoringWeights()))
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := pipeline.Run(ctx, component, targetCfg)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleScore(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		component, err := request.RequireString("component")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		settings, targetCfg, err := resolveTarget(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}

		insp := application.Inspect(rules.DefaultRegistry(), component, targetCfg, settings.ScoringWeights())
		return jsonResult(insp)
	}
}

func handleRenderability(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		component, err := request.RequireString("component")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		_, targetCfg, err := resolveTarget(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}

		issues := render.Check(component, targetCfg)
		return jsonResult(map[string]interface{}{
			"renderable": domain.CountBlocking(issues) == 0,
			"issues":     issues,
		})
	}
}

func handleConfig(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		settings, targetCfg, err := resolveTarget(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{
			"framework":        targetCfg.Framework,
			"styling_system":   targetCfg.StylingSystem,
			"typescript":       targetCfg.UsesTypeScript,
			"dependency_count": len(targetCfg.Dependencies),
			"options":          settings.Options,
		})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
