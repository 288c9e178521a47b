package domain

import (
	"fmt"
	"strings"
	"time"
)

// Framework identifies the target UI framework of the project the component
// is generated into.
type Framework string

const (
	FrameworkNextApp   Framework = "next-app"
	FrameworkNextPages Framework = "next-pages"
	FrameworkReact     Framework = "react"
)

// ValidFrameworks enumerates all recognized frameworks.
var ValidFrameworks = []Framework{FrameworkNextApp, FrameworkNextPages, FrameworkReact}

// StylingSystem identifies how the target project expects components to be
// styled. Mixing systems breaks silently at runtime, so validators treat a
// foreign system as critical.
type StylingSystem string

const (
	StylingTailwind         StylingSystem = "tailwind"
	StylingStyledComponents StylingSystem = "styled-components"
	StylingCSSModules       StylingSystem = "css-modules"
)

// ValidStylingSystems enumerates all recognized styling systems.
var ValidStylingSystems = []StylingSystem{StylingTailwind, StylingStyledComponents, StylingCSSModules}

// TargetConfig describes the project a generated component must fit into.
// It is supplied per invocation and never mutated by the pipeline.
type TargetConfig struct {
	Framework      Framework         `yaml:"framework"       json:"framework"`
	StylingSystem  StylingSystem     `yaml:"styling_system"  json:"styling_system"`
	UsesTypeScript bool              `yaml:"typescript"      json:"typescript"`
	Dependencies   map[string]string `yaml:"dependencies"    json:"dependencies,omitempty"`
}

// HasDependency reports whether the module specifier resolves against the
// project's declared dependencies. Subpath imports resolve through their
// package root ("@radix-ui/react-dialog/dist" → "@radix-ui/react-dialog").
func (c TargetConfig) HasDependency(module string) bool {
	if _, ok := c.Dependencies[module]; ok {
		return true
	}
	root := PackageRoot(module)
	_, ok := c.Dependencies[root]
	return ok
}

// RequiresClientDirective reports whether the framework needs an explicit
// "use client" boundary marker for client-only APIs.
func (c TargetConfig) RequiresClientDirective() bool {
	return c.Framework == FrameworkNextApp
}

// PackageRoot returns the npm package name of a (possibly subpath) module
// specifier. Scoped packages keep their first two segments.
func PackageRoot(module string) string {
	parts := strings.Split(module, "/")
	if strings.HasPrefix(module, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c TargetConfig) Validate() error {
	if c.Framework != "" {
		valid := false
		for _, f := range ValidFrameworks {
			if c.Framework == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown framework %q (valid: next-app, next-pages, react)", c.Framework)
		}
	}

	if c.StylingSystem != "" {
		valid := false
		for _, s := range ValidStylingSystems {
			if c.StylingSystem == s {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown styling_system %q (valid: tailwind, styled-components, css-modules)", c.StylingSystem)
		}
	}

	return nil
}

// Options tunes one pipeline run. Zero values are filled from defaults by
// Normalize; Validate rejects configuration-level misuse before stage 1.
type Options struct {
	MaxIterations       int           `yaml:"max_iterations"        json:"max_iterations,omitempty"`
	ScoreThreshold      int           `yaml:"score_threshold"       json:"score_threshold,omitempty"`
	FixConfidenceFloor  float64       `yaml:"fix_confidence_floor"  json:"fix_confidence_floor,omitempty"`
	MaxGrowthRatio      float64       `yaml:"max_growth_ratio"      json:"max_growth_ratio,omitempty"`
	EnableRenderability *bool         `yaml:"enable_renderability"  json:"enable_renderability,omitempty"`
	EnableRemediation   bool          `yaml:"enable_remediation"    json:"enable_remediation,omitempty"`
	RemediationTimeout  time.Duration `yaml:"remediation_timeout"   json:"remediation_timeout,omitempty"`
}

// DefaultOptions returns the tuning used when the caller specifies nothing.
func DefaultOptions() Options {
	on := true
	return Options{
		MaxIterations:       5,
		ScoreThreshold:      85,
		FixConfidenceFloor:  0.5,
		MaxGrowthRatio:      2.0,
		EnableRenderability: &on,
		EnableRemediation:   false,
		RemediationTimeout:  30 * time.Second,
	}
}

// Normalize overlays defaults on unset fields and returns the result.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.MaxIterations == 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.ScoreThreshold == 0 {
		o.ScoreThreshold = def.ScoreThreshold
	}
	if o.FixConfidenceFloor == 0 {
		o.FixConfidenceFloor = def.FixConfidenceFloor
	}
	if o.MaxGrowthRatio == 0 {
		o.MaxGrowthRatio = def.MaxGrowthRatio
	}
	if o.EnableRenderability == nil {
		o.EnableRenderability = def.EnableRenderability
	}
	if o.RemediationTimeout == 0 {
		o.RemediationTimeout = def.RemediationTimeout
	}
	return o
}

// RenderabilityEnabled reports whether the deeper renderability pass runs.
func (o Options) RenderabilityEnabled() bool {
	return o.EnableRenderability != nil && *o.EnableRenderability
}

// Validate checks option ranges after normalization.
func (o Options) Validate() error {
	if o.MaxIterations < 1 || o.MaxIterations > 10 {
		return fmt.Errorf("max_iterations must be between 1 and 10 (got %d)", o.MaxIterations)
	}
	if o.ScoreThreshold < 0 || o.ScoreThreshold > 100 {
		return fmt.Errorf("score_threshold must be between 0 and 100 (got %d)", o.ScoreThreshold)
	}
	if o.FixConfidenceFloor < 0 || o.FixConfidenceFloor > 1 {
		return fmt.Errorf("fix_confidence_floor must be between 0.0 and 1.0 (got %.2f)", o.FixConfidenceFloor)
	}
	if o.MaxGrowthRatio <= 1 {
		return fmt.Errorf("max_growth_ratio must be > 1.0 (got %.2f)", o.MaxGrowthRatio)
	}
	if o.RemediationTimeout <= 0 {
		return fmt.Errorf("remediation_timeout must be positive (got %s)", o.RemediationTimeout)
	}
	return nil
}
