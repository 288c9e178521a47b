package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/domain"
)

var nextAppCfg = domain.TargetConfig{Framework: domain.FrameworkNextApp}

func TestClientDirectiveRule_Matches(t *testing.T) {
	assert.True(t, ClientDirectiveRule{}.Matches(nextAppCfg))
	assert.False(t, ClientDirectiveRule{}.Matches(domain.TargetConfig{Framework: domain.FrameworkNextPages}))
	assert.False(t, ClientDirectiveRule{}.Matches(domain.TargetConfig{Framework: domain.FrameworkReact}))
}

func TestClientDirectiveRule_MissingDirective(t *testing.T) {
	artifact := `import { useState } from 'react'

export default function Counter() {
  const [n, setN] = useState(0)
  return <button onClick={() => setN(n + 1)}>{n}</button>
}`
	issues := ClientDirectiveRule{}.Check(artifact, nextAppCfg)

	require.Len(t, issues, 1)
	assert.Equal(t, "missing_client_directive", issues[0].Category)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.True(t, issues[0].AutoFixable)
	assert.Contains(t, issues[0].Message, "useState")
	assert.Contains(t, issues[0].Message, "onClick")
}

func TestClientDirectiveRule_DirectivePresent(t *testing.T) {
	artifact := `"use client"

import { useState } from 'react'
export default function Counter() {
  const [n] = useState(0)
  return <span>{n}</span>
}`
	assert.Empty(t, ClientDirectiveRule{}.Check(artifact, nextAppCfg))
}

func TestClientDirectiveRule_ServerComponentNeedsNothing(t *testing.T) {
	artifact := `export default function Static() {
  return <div>hello</div>
}`
	assert.Empty(t, ClientDirectiveRule{}.Check(artifact, nextAppCfg))
}

func TestMediaSizingRule_Matches(t *testing.T) {
	assert.True(t, MediaSizingRule{}.Matches(nextAppCfg))
	assert.True(t, MediaSizingRule{}.Matches(domain.TargetConfig{Framework: domain.FrameworkNextPages}))
	assert.False(t, MediaSizingRule{}.Matches(domain.TargetConfig{Framework: domain.FrameworkReact}))
}

func TestMediaSizingRule_MissingDimensions(t *testing.T) {
	issues := MediaSizingRule{}.Check(`<Image src="/a.png" alt="a" />`, nextAppCfg)

	require.Len(t, issues, 1)
	assert.Equal(t, "missing_image_dimensions", issues[0].Category)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
}

func TestMediaSizingRule_SatisfiedByDimensionsOrFill(t *testing.T) {
	assert.Empty(t, MediaSizingRule{}.Check(`<Image src="/a.png" alt="a" width={40} height={40} />`, nextAppCfg))
	assert.Empty(t, MediaSizingRule{}.Check(`<Image src="/a.png" alt="a" fill />`, nextAppCfg))
	assert.Empty(t, MediaSizingRule{}.Check(`<video src="/a.mp4" />`, nextAppCfg))
}
