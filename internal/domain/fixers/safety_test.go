package fixers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renderguard/renderguard/internal/domain"
)

func TestGate_AcceptsReasonableRewrite(t *testing.T) {
	before := "export default function A() { return <img src=\"a.png\"> }"
	after := "export default function A() { return <img src=\"a.png\" /> }"

	res := Gate(before, after, []domain.Fix{{Confidence: 0.9}}, domain.DefaultOptions())
	assert.True(t, res.Accepted)
	assert.Empty(t, res.Reasons)
}

func TestGate_RejectsExplosiveGrowth(t *testing.T) {
	before := "export default function A() { return <div /> }"
	after := before + strings.Repeat("\n// padding", 50)

	res := Gate(before, after, nil, domain.DefaultOptions())
	assert.False(t, res.Accepted)
	assert.Contains(t, res.Reasons[0], "length changed")
}

func TestGate_RejectsExcessiveShrinkage(t *testing.T) {
	before := "export default function A() {\n" + strings.Repeat("  // body\n", 40) + "}"
	after := "export default function A() {}"

	res := Gate(before, after, nil, domain.DefaultOptions())
	assert.False(t, res.Accepted)
}

func TestGate_RejectsDisappearedExport(t *testing.T) {
	before := "export default function A() { return <div /> }"
	after := "function A() { return <div /> }"

	res := Gate(before, after, nil, domain.DefaultOptions())
	assert.False(t, res.Accepted)
	assert.Contains(t, strings.Join(res.Reasons, "; "), "export marker disappeared")
}

func TestGate_RejectsNewlyUnbalancedDelimiters(t *testing.T) {
	before := "export default function A() { return <div /> }"
	after := "export default function A() { return <div /> "

	res := Gate(before, after, nil, domain.DefaultOptions())
	assert.False(t, res.Accepted)
	assert.Contains(t, strings.Join(res.Reasons, "; "), "delimiters became unbalanced")
}

func TestGate_RejectsLowConfidenceFix(t *testing.T) {
	artifact := "export default function A() { return <div /> }"
	fixes := []domain.Fix{{Description: "sketchy rewrite", Confidence: 0.3}}

	res := Gate(artifact, artifact, fixes, domain.DefaultOptions())
	assert.False(t, res.Accepted)
	assert.Contains(t, res.Reasons[0], "below floor")
}

func TestGate_HonorsRaisedFloor(t *testing.T) {
	opts := domain.DefaultOptions()
	opts.FixConfidenceFloor = 0.9

	artifact := "export default function A() { return <div /> }"
	res := Gate(artifact, artifact, []domain.Fix{{Confidence: 0.8}}, opts)
	assert.False(t, res.Accepted)
}
