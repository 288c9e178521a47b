// Package catalog resolves the project's dependency manifest and infers a
// target configuration from it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renderguard/renderguard/internal/domain"
)

// Catalog implements domain.DependencyCatalog over a package.json manifest.
type Catalog struct{}

func New() *Catalog {
	return &Catalog{}
}

// manifest mirrors the package.json fields we care about.
type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Dependencies reads package.json at the project root and merges runtime
// and dev dependencies into a single version map. Runtime entries win on
// conflict.
func (c *Catalog) Dependencies(projectPath string) (map[string]string, error) {
	path := filepath.Join(projectPath, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	deps := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, version := range m.DevDependencies {
		deps[name] = version
	}
	for name, version := range m.Dependencies {
		deps[name] = version
	}
	return deps, nil
}

// DetectConfig infers the target configuration from the manifest and the
// directory layout. A Next.js project with an app/ directory (optionally
// under src/) is classified as next-app, one with pages/ as next-pages;
// anything else is plain React.
func (c *Catalog) DetectConfig(projectPath string) (domain.TargetConfig, error) {
	deps, err := c.Dependencies(projectPath)
	if err != nil {
		return domain.TargetConfig{}, err
	}

	cfg := domain.TargetConfig{
		Framework:      domain.FrameworkReact,
		StylingSystem:  domain.StylingTailwind,
		UsesTypeScript: hasDep(deps, "typescript"),
		Dependencies:   deps,
	}

	if hasDep(deps, "next") {
		if dirExists(projectPath, "app") || dirExists(projectPath, filepath.Join("src", "app")) {
			cfg.Framework = domain.FrameworkNextApp
		} else {
			cfg.Framework = domain.FrameworkNextPages
		}
	}

	switch {
	case hasDep(deps, "styled-components"):
		cfg.StylingSystem = domain.StylingStyledComponents
	case hasDep(deps, "tailwindcss"):
		cfg.StylingSystem = domain.StylingTailwind
	case hasCSSModules(projectPath):
		cfg.StylingSystem = domain.StylingCSSModules
	}

	return cfg, nil
}

func hasDep(deps map[string]string, name string) bool {
	_, ok := deps[name]
	return ok
}

func dirExists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.IsDir()
}

// hasCSSModules looks for *.module.css files near the project root, the
// conventional signal for CSS Modules without a styling dependency.
func hasCSSModules(projectPath string) bool {
	for _, dir := range []string{".", "src", "styles", filepath.Join("src", "styles")} {
		matches, err := filepath.Glob(filepath.Join(projectPath, dir, "*.module.css"))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}
