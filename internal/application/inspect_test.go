package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/domain"
	"github.com/renderguard/renderguard/internal/domain/rules"
	"github.com/renderguard/renderguard/internal/domain/scoring"
)

func TestInspect_CleanComponent(t *testing.T) {
	artifact := `export default function Badge({ label }) {
  return <span className="px-2 py-1 rounded">{label}</span>
}`

	insp := Inspect(rules.DefaultRegistry(), artifact, reactTailwindCfg, scoring.DefaultWeights())

	assert.Equal(t, 97, insp.Score)
	assert.Equal(t, "A", insp.Grade)
	assert.Empty(t, insp.Issues)
	assert.Zero(t, insp.BlockingCount)
	for stage, passed := range insp.StageStatus {
		assert.True(t, passed, "stage %s should pass", stage)
	}
}

func TestInspect_ReportsWithoutFixing(t *testing.T) {
	artifact := `import { Card } from './card'
import { CardHeader } from './card'

export default function ProfileCard() {
  return <Card className="bg-blue p-4" />
}`

	insp := Inspect(rules.DefaultRegistry(), artifact, reactTailwindCfg, scoring.DefaultWeights())

	require.NotEmpty(t, insp.Issues)
	var cats []string
	for _, iss := range insp.Issues {
		cats = append(cats, iss.Category)
	}
	assert.Contains(t, cats, "duplicate_import")

	// Inspection never rewrites the artifact, so no fixes show up anywhere.
	for _, sr := range insp.Stages {
		assert.Empty(t, sr.FixesApplied)
	}
}

func TestInspect_BlockingCounted(t *testing.T) {
	insp := Inspect(rules.DefaultRegistry(), "export default function B() { return (<div>", reactTailwindCfg, scoring.DefaultWeights())

	assert.Positive(t, insp.BlockingCount)
	assert.False(t, insp.StageStatus[string(domain.StageSyntax)])
}
