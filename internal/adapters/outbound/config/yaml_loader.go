// Package config loads project-level settings from .renderguard.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/scoring"
	"gopkg.in/yaml.v3"
)

const fileName = ".renderguard.yaml"

// Settings is the on-disk shape of .renderguard.yaml. Target fields live at
// the top level; tuning and weights sit under their own keys.
type Settings struct {
	Target  domain.TargetConfig `yaml:",inline"`
	Options domain.Options      `yaml:"options"`
	Weights *scoring.Weights    `yaml:"weights"`
}

// ScoringWeights returns the configured weights, or the defaults when the
// file omits the weights block.
func (s Settings) ScoringWeights() scoring.Weights {
	if s.Weights != nil {
		return *s.Weights
	}
	return scoring.DefaultWeights()
}

// YAMLLoader reads .renderguard.yaml from a project directory.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .renderguard.yaml from projectPath.
// Returns default settings if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (Settings, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	s.Options = s.Options.Normalize()

	// Validate raw input before anything downstream consumes it.
	if err := s.Target.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	if err := s.Options.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return s, nil
}

// DefaultSettings is the configuration used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Target: domain.TargetConfig{
			Framework:     domain.FrameworkNextApp,
			StylingSystem: domain.StylingTailwind,
		},
		Options: domain.DefaultOptions(),
	}
}
