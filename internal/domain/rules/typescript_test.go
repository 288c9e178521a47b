package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/domain"
)

var tsCfg = domain.TargetConfig{UsesTypeScript: true}

func TestTypeScriptRule_Matches(t *testing.T) {
	assert.True(t, TypeScriptRule{}.Matches(tsCfg))
	assert.False(t, TypeScriptRule{}.Matches(domain.TargetConfig{}))
}

func TestTypeScriptRule_MissingPropsInterface(t *testing.T) {
	artifact := `export default function Badge({ label, tone }) {
  return <span>{label}</span>
}`
	issues := TypeScriptRule{}.Check(artifact, tsCfg)

	iss := findCategory(issues, "missing_props_interface")
	require.NotNil(t, iss)
	assert.Equal(t, domain.SeverityInfo, iss.Severity)
}

func TestTypeScriptRule_PropsInterfacePresent(t *testing.T) {
	artifact := `interface BadgeProps {
  label: string
}
export default function Badge({ label }: BadgeProps) {
  return <span>{label}</span>
}`
	assert.Nil(t, findCategory(TypeScriptRule{}.Check(artifact, tsCfg), "missing_props_interface"))
}

func TestTypeScriptRule_AnyUsage(t *testing.T) {
	artifact := `const data: any = fetchData()
const out = input as any`
	issues := TypeScriptRule{}.Check(artifact, tsCfg)

	var count int
	for _, iss := range issues {
		if iss.Category == "any_usage" {
			count++
			assert.Equal(t, domain.SeverityWarning, iss.Severity)
		}
	}
	assert.Equal(t, 2, count)
}
