// Package source provides lightweight lexical analysis of generated
// component text. Everything here is heuristic string work: the pipeline
// validates artifacts it cannot assume to parse, so no real parser is used.
package source

import (
	"regexp"
	"strings"
)

// ImportStatement is one ES import extracted from the artifact.
type ImportStatement struct {
	Module string
	Clause string // raw text between "import" and "from", empty for side-effect imports
	Line   int
	Raw    string
}

var (
	importFromRe = regexp.MustCompile(`(?m)^[ \t]*import\s+(type\s+)?([^'"\n]+?)\s+from\s+['"]([^'"]+)['"]`)
	importBareRe = regexp.MustCompile(`(?m)^[ \t]*import\s+['"]([^'"]+)['"]`)
)

// Imports extracts all import statements in order of appearance.
func Imports(artifact string) []ImportStatement {
	var out []ImportStatement
	for _, m := range importFromRe.FindAllStringSubmatchIndex(artifact, -1) {
		raw := artifact[m[0]:m[1]]
		clause := strings.TrimSpace(artifact[m[4]:m[5]])
		module := artifact[m[6]:m[7]]
		out = append(out, ImportStatement{
			Module: module,
			Clause: clause,
			Line:   LineAt(artifact, m[0]),
			Raw:    raw,
		})
	}
	for _, m := range importBareRe.FindAllStringSubmatchIndex(artifact, -1) {
		raw := artifact[m[0]:m[1]]
		out = append(out, ImportStatement{
			Module: artifact[m[2]:m[3]],
			Line:   LineAt(artifact, m[0]),
			Raw:    raw,
		})
	}
	return out
}

// IsRelative reports whether a module specifier is a relative or aliased
// path rather than a bare package name. Filesystem resolution of these is
// out of scope, so they are assumed valid.
func IsRelative(module string) bool {
	return strings.HasPrefix(module, "./") ||
		strings.HasPrefix(module, "../") ||
		strings.HasPrefix(module, "/") ||
		strings.HasPrefix(module, "@/") ||
		strings.HasPrefix(module, "~/")
}

// LineAt returns the 1-based line number of a byte offset.
func LineAt(artifact string, offset int) int {
	if offset > len(artifact) {
		offset = len(artifact)
	}
	return strings.Count(artifact[:offset], "\n") + 1
}

// DelimCounts holds raw open/close delimiter counts, ignoring string
// literals, template literals and comments.
type DelimCounts struct {
	OpenParen, CloseParen     int
	OpenBrace, CloseBrace     int
	OpenBracket, CloseBracket int
}

// Balanced reports whether every delimiter kind is paired.
func (d DelimCounts) Balanced() bool {
	return d.OpenParen == d.CloseParen &&
		d.OpenBrace == d.CloseBrace &&
		d.OpenBracket == d.CloseBracket
}

// CountDelims scans the artifact once, skipping quoted strings, template
// literals and comments so that textual braces do not skew the counts.
func CountDelims(artifact string) DelimCounts {
	var d DelimCounts
	i := 0
	n := len(artifact)
	for i < n {
		c := artifact[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			quote := c
			i++
			for i < n && artifact[i] != quote {
				if artifact[i] == '\\' {
					i++
				}
				if quote != '`' && i < n && artifact[i] == '\n' {
					break // unterminated single-line string
				}
				i++
			}
			i++
		case c == '/' && i+1 < n && artifact[i+1] == '/':
			for i < n && artifact[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && artifact[i+1] == '*':
			i += 2
			for i+1 < n && !(artifact[i] == '*' && artifact[i+1] == '/') {
				i++
			}
			i += 2
		default:
			switch c {
			case '(':
				d.OpenParen++
			case ')':
				d.CloseParen++
			case '{':
				d.OpenBrace++
			case '}':
				d.CloseBrace++
			case '[':
				d.OpenBracket++
			case ']':
				d.CloseBracket++
			}
			i++
		}
	}
	return d
}

var (
	exportRe        = regexp.MustCompile(`(?m)^[ \t]*export\s+(default\s+)?(async\s+)?(function|const|class|let|var|\{)`)
	defaultExportRe = regexp.MustCompile(`(?m)^[ \t]*export\s+default\b`)
	componentNameRe = []*regexp.Regexp{
		regexp.MustCompile(`export\s+default\s+function\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?function\s+([A-Z][\w$]*)`),
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?const\s+([A-Z][\w$]*)\s*(?::[^=]+)?=\s*(?:\(|React\.memo|React\.forwardRef|memo\(|forwardRef\()`),
	}
)

// HasExport reports whether the artifact exports anything.
func HasExport(artifact string) bool { return exportRe.MatchString(artifact) }

// HasDefaultExport reports whether the artifact has a default export.
func HasDefaultExport(artifact string) bool { return defaultExportRe.MatchString(artifact) }

// ComponentName extracts the primary component identifier, or "" when none
// is recognizable.
func ComponentName(artifact string) string {
	for _, re := range componentNameRe {
		if m := re.FindStringSubmatch(artifact); m != nil {
			return m[1]
		}
	}
	return ""
}

// HasDirective reports whether the artifact starts with the given directive
// ("use client", "use server") before any code.
func HasDirective(artifact, directive string) bool {
	for _, line := range strings.Split(artifact, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		if strings.HasPrefix(t, "/*") {
			continue
		}
		return t == `"`+directive+`";` || t == `"`+directive+`"` ||
			t == `'`+directive+`';` || t == `'`+directive+`'`
	}
	return false
}

// clientHooks are React APIs that only run on the client.
var clientHooks = []string{
	"useState", "useEffect", "useLayoutEffect", "useRef", "useReducer",
	"useContext", "useTransition", "useOptimistic", "useSyncExternalStore",
}

// ClientAPIs returns the client-only React APIs referenced by the artifact.
func ClientAPIs(artifact string) []string {
	var found []string
	for _, h := range clientHooks {
		if regexp.MustCompile(`\b` + h + `\s*\(`).MatchString(artifact) {
			found = append(found, h)
		}
	}
	for _, ev := range []string{"onClick", "onChange", "onSubmit", "onInput", "onKeyDown"} {
		if strings.Contains(artifact, ev+"=") {
			found = append(found, ev)
		}
	}
	return found
}

// ClassToken is one utility-class attribute value with its location.
type ClassToken struct {
	Value string
	Line  int
}

var classNameRe = regexp.MustCompile("className=(?:\"([^\"]*)\"|'([^']*)'|\\{`([^`]*)`\\})")

// ClassAttributes extracts every className attribute value.
func ClassAttributes(artifact string) []ClassToken {
	var out []ClassToken
	for _, m := range classNameRe.FindAllStringSubmatchIndex(artifact, -1) {
		value := ""
		for g := 1; g <= 3; g++ {
			if m[2*g] >= 0 {
				value = artifact[m[2*g]:m[2*g+1]]
				break
			}
		}
		out = append(out, ClassToken{Value: value, Line: LineAt(artifact, m[0])})
	}
	return out
}

// Tag is one opening JSX tag occurrence.
type Tag struct {
	Name        string
	Attrs       string
	Line        int
	SelfClosing bool
	Raw         string
}

var tagRe = regexp.MustCompile(`<([A-Za-z][\w.]*)((?:[^<>"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?)(/?)>`)

// Tags scans opening JSX tags. Nested expression attributes beyond one brace
// level are not resolved; this is a lexical pass, not a parser.
func Tags(artifact string) []Tag {
	var out []Tag
	for _, m := range tagRe.FindAllStringSubmatchIndex(artifact, -1) {
		out = append(out, Tag{
			Name:        artifact[m[2]:m[3]],
			Attrs:       artifact[m[4]:m[5]],
			SelfClosing: m[6] < m[7],
			Line:        LineAt(artifact, m[0]),
			Raw:         artifact[m[0]:m[1]],
		})
	}
	return out
}

// HasAttr reports whether the tag carries the named attribute.
func (t Tag) HasAttr(name string) bool {
	re := regexp.MustCompile(`(?:^|[\s{])` + name + `(?:[=\s/>}]|$)`)
	return re.MatchString(t.Attrs)
}

var (
	destructuredPropsRe = regexp.MustCompile(`(?:function\s+[A-Z][\w$]*|=>|const\s+[A-Z][\w$]*\s*=)\s*\(\s*\{([^}]*)\}`)
	interfacePropsRe    = regexp.MustCompile(`interface\s+\w*Props\s*\{([^}]*)\}`)
	propLeadIdentRe     = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)`)
)

// PropNames extracts the declared prop names of the component, from either a
// Props interface or destructured parameters. Each comma/semicolon/newline
// separated segment contributes its leading identifier, so a bare trailing
// prop with no type or default still counts.
func PropNames(artifact string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(body string) {
		segments := strings.FieldsFunc(body, func(r rune) bool {
			return r == ',' || r == ';' || r == '\n'
		})
		for _, seg := range segments {
			m := propLeadIdentRe.FindStringSubmatch(seg)
			if m == nil {
				continue
			}
			if name := m[1]; !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	if m := interfacePropsRe.FindStringSubmatch(artifact); m != nil {
		add(m[1])
	}
	if m := destructuredPropsRe.FindStringSubmatch(artifact); m != nil {
		add(m[1])
	}
	return names
}

// HasReturnWithMarkup reports whether the artifact returns JSX from some
// function (return (<... or return <...).
var returnMarkupRe = regexp.MustCompile(`return\s*\(?\s*<`)

func HasReturnWithMarkup(artifact string) bool {
	return returnMarkupRe.MatchString(artifact)
}
