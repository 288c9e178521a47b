package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageRoot(t *testing.T) {
	assert.Equal(t, "lodash", PackageRoot("lodash"))
	assert.Equal(t, "lodash", PackageRoot("lodash/debounce"))
	assert.Equal(t, "@radix-ui/react-dialog", PackageRoot("@radix-ui/react-dialog"))
	assert.Equal(t, "@radix-ui/react-dialog", PackageRoot("@radix-ui/react-dialog/dist/index"))
}

func TestTargetConfig_HasDependency(t *testing.T) {
	cfg := TargetConfig{
		Dependencies: map[string]string{
			"lodash":                 "^4.17.0",
			"@radix-ui/react-dialog": "^1.0.0",
		},
	}

	assert.True(t, cfg.HasDependency("lodash"))
	assert.True(t, cfg.HasDependency("lodash/debounce"))
	assert.True(t, cfg.HasDependency("@radix-ui/react-dialog/dist"))
	assert.False(t, cfg.HasDependency("moment"))
}

func TestTargetConfig_RequiresClientDirective(t *testing.T) {
	assert.True(t, TargetConfig{Framework: FrameworkNextApp}.RequiresClientDirective())
	assert.False(t, TargetConfig{Framework: FrameworkNextPages}.RequiresClientDirective())
	assert.False(t, TargetConfig{Framework: FrameworkReact}.RequiresClientDirective())
}

func TestTargetConfig_Validate(t *testing.T) {
	require.NoError(t, TargetConfig{Framework: FrameworkNextApp, StylingSystem: StylingTailwind}.Validate())
	require.NoError(t, TargetConfig{}.Validate()) // empty values are filled elsewhere

	err := TargetConfig{Framework: "svelte"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown framework")

	err = TargetConfig{StylingSystem: "sass"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown styling_system")
}

func TestOptions_NormalizeFillsDefaults(t *testing.T) {
	opts := Options{}.Normalize()

	assert.Equal(t, 5, opts.MaxIterations)
	assert.Equal(t, 85, opts.ScoreThreshold)
	assert.Equal(t, 0.5, opts.FixConfidenceFloor)
	assert.Equal(t, 2.0, opts.MaxGrowthRatio)
	assert.Equal(t, 30*time.Second, opts.RemediationTimeout)
	assert.True(t, opts.RenderabilityEnabled())
	assert.False(t, opts.EnableRemediation)
}

func TestOptions_NormalizeKeepsExplicitValues(t *testing.T) {
	off := false
	opts := Options{
		MaxIterations:       3,
		ScoreThreshold:      95,
		EnableRenderability: &off,
	}.Normalize()

	assert.Equal(t, 3, opts.MaxIterations)
	assert.Equal(t, 95, opts.ScoreThreshold)
	assert.False(t, opts.RenderabilityEnabled())
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	cases := []struct {
		name string
		mut  func(*Options)
	}{
		{"iterations too low", func(o *Options) { o.MaxIterations = 0 }},
		{"iterations too high", func(o *Options) { o.MaxIterations = 11 }},
		{"threshold out of range", func(o *Options) { o.ScoreThreshold = 101 }},
		{"confidence floor out of range", func(o *Options) { o.FixConfidenceFloor = 1.5 }},
		{"growth ratio too small", func(o *Options) { o.MaxGrowthRatio = 1.0 }},
		{"timeout not positive", func(o *Options) { o.RemediationTimeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			tc.mut(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}
