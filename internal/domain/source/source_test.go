package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImports(t *testing.T) {
	artifact := `import React from 'react'
import { useState, useEffect } from 'react'
import './styles.css'
import Button from '@ui/button'
`
	imports := Imports(artifact)
	require.Len(t, imports, 4)

	assert.Equal(t, "react", imports[0].Module)
	assert.Equal(t, "React", imports[0].Clause)
	assert.Equal(t, 1, imports[0].Line)

	assert.Equal(t, "react", imports[1].Module)
	assert.Equal(t, "{ useState, useEffect }", imports[1].Clause)
	assert.Equal(t, 2, imports[1].Line)

	assert.Equal(t, "@ui/button", imports[2].Module)

	// Side-effect imports come last and carry no clause.
	assert.Equal(t, "./styles.css", imports[3].Module)
	assert.Empty(t, imports[3].Clause)
}

func TestIsRelative(t *testing.T) {
	assert.True(t, IsRelative("./card"))
	assert.True(t, IsRelative("../lib/utils"))
	assert.True(t, IsRelative("@/components/ui"))
	assert.True(t, IsRelative("~/hooks"))
	assert.False(t, IsRelative("react"))
	assert.False(t, IsRelative("@radix-ui/react-dialog"))
}

func TestCountDelims_SkipsStringsAndComments(t *testing.T) {
	artifact := "const a = \"{ not a brace }\"\n" +
		"// comment with ( and {\n" +
		"/* block } */\n" +
		"const b = `template { ) ] `\n" +
		"function f() { return [1] }\n"

	d := CountDelims(artifact)
	assert.True(t, d.Balanced())
	assert.Equal(t, 1, d.OpenBrace)
	assert.Equal(t, 1, d.OpenParen)
	assert.Equal(t, 1, d.OpenBracket)
}

func TestCountDelims_DetectsImbalance(t *testing.T) {
	d := CountDelims("function f() { return (<div>")
	assert.False(t, d.Balanced())
	assert.Equal(t, 1, d.OpenBrace)
	assert.Equal(t, 0, d.CloseBrace)
}

func TestComponentName(t *testing.T) {
	cases := []struct {
		name     string
		artifact string
		want     string
	}{
		{"default export function", "export default function UserCard() {}", "UserCard"},
		{"named function", "function ProfileView() {}", "ProfileView"},
		{"arrow const", "const NavBar = () => <nav />", "NavBar"},
		{"memo const", "const Heavy = React.memo(function Heavy() {})", "Heavy"},
		{"lowercase function ignored", "function helper() {}", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComponentName(tc.artifact))
		})
	}
}

func TestHasDirective(t *testing.T) {
	assert.True(t, HasDirective("\"use client\"\n\nexport default function A() {}", "use client"))
	assert.True(t, HasDirective("// header comment\n'use client';\ncode", "use client"))
	assert.False(t, HasDirective("import React from 'react'\n\"use client\"", "use client"))
	assert.False(t, HasDirective("export default function A() {}", "use client"))
}

func TestClientAPIs(t *testing.T) {
	artifact := `const [v, setV] = useState(0)
useEffect(() => {}, [])
<button onClick={fn}>go</button>`

	apis := ClientAPIs(artifact)
	assert.Contains(t, apis, "useState")
	assert.Contains(t, apis, "useEffect")
	assert.Contains(t, apis, "onClick")

	assert.Empty(t, ClientAPIs("export default function Static() { return <div /> }"))
}

func TestClassAttributes(t *testing.T) {
	artifact := `<div className="bg-red-500 p-4">
  <span className='text-sm'>a</span>
  <p className={` + "`flex gap-2`" + `}>b</p>
</div>`

	attrs := ClassAttributes(artifact)
	require.Len(t, attrs, 3)
	assert.Equal(t, "bg-red-500 p-4", attrs[0].Value)
	assert.Equal(t, 1, attrs[0].Line)
	assert.Equal(t, "text-sm", attrs[1].Value)
	assert.Equal(t, "flex gap-2", attrs[2].Value)
}

func TestTags(t *testing.T) {
	artifact := `<img src="a.png" />
<input type="text">
<Image width={40} height={40} alt="x" />`

	tags := Tags(artifact)
	require.Len(t, tags, 3)

	assert.Equal(t, "img", tags[0].Name)
	assert.True(t, tags[0].SelfClosing)

	assert.Equal(t, "input", tags[1].Name)
	assert.False(t, tags[1].SelfClosing)
	assert.Equal(t, 2, tags[1].Line)

	assert.Equal(t, "Image", tags[2].Name)
	assert.True(t, tags[2].HasAttr("width"))
	assert.True(t, tags[2].HasAttr("alt"))
	assert.False(t, tags[2].HasAttr("fill"))
}

func TestTag_HasAttrDoesNotMatchPrefixes(t *testing.T) {
	tags := Tags(`<img alternate="yes">`)
	require.Len(t, tags, 1)
	assert.False(t, tags[0].HasAttr("alt"))
}

func TestPropNames(t *testing.T) {
	artifact := `interface CardProps {
  title: string
  subtitle?: string
}
export default function Card({ title, subtitle }: CardProps) { return <div /> }`

	names := PropNames(artifact)
	assert.Equal(t, []string{"title", "subtitle"}, names)

	assert.Empty(t, PropNames("export default function Plain() { return <div /> }"))
}

func TestPropNames_BareDestructuredProps(t *testing.T) {
	// A prop with no type, default or trailing comma still counts.
	assert.Equal(t, []string{"label"},
		PropNames("export default function Badge({ label }) { return <span>{label}</span> }"))

	assert.Equal(t, []string{"size", "label"},
		PropNames("export default function Badge({ size = 'md', label }) { return <span /> }"))

	assert.Equal(t, []string{"name", "role"},
		PropNames("const ProfileCard = ({ name, role }) => <div />"))
}

func TestExportDetection(t *testing.T) {
	assert.True(t, HasExport("export default function A() {}"))
	assert.True(t, HasExport("export const A = () => <div />"))
	assert.False(t, HasExport("const A = () => <div />"))

	assert.True(t, HasDefaultExport("export default A"))
	assert.False(t, HasDefaultExport("export const A = 1"))
}

func TestHasReturnWithMarkup(t *testing.T) {
	assert.True(t, HasReturnWithMarkup("return (<div />)"))
	assert.True(t, HasReturnWithMarkup("return <span>x</span>"))
	assert.False(t, HasReturnWithMarkup("return value"))
}
