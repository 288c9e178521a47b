package domain

// Issue represents a single defect detected in a generated component.
// Issues are data, not errors: validators record them and the pipeline
// decides what to do about them.
type Issue struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	Line        int    `json:"line,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
	AutoFixable bool   `json:"auto_fixable"`
}

const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Blocking reports whether the issue prevents a stage from passing.
// Warnings and infos never block convergence.
func (i Issue) Blocking() bool {
	return i.Severity == SeverityCritical || i.Severity == SeverityError
}

// CountBlocking returns the number of Error/Critical issues in the slice.
func CountBlocking(issues []Issue) int {
	n := 0
	for _, iss := range issues {
		if iss.Blocking() {
			n++
		}
	}
	return n
}

// Fix describes one applied text transformation. Confidence expresses how
// certain the fixer is that the rewrite is correct; fixes below the
// configured floor are discarded by the safety gate.
type Fix struct {
	Description  string  `json:"description"`
	Confidence   float64 `json:"confidence"`
	SourceBefore string  `json:"-"`
	SourceAfter  string  `json:"-"`
	Category     string  `json:"category"`
}

// Stage identifies one ordered validation phase.
type Stage string

const (
	StageSyntax        Stage = "syntax"
	StageImports       Stage = "imports"
	StageFramework     Stage = "framework_compliance"
	StageStyling       Stage = "styling_consistency"
	StageAccessibility Stage = "accessibility"
	StagePatterns      Stage = "pattern_matching"
	StageConfiguration Stage = "configuration_specific"
)

// StageOrder is the fixed execution order. Later stages assume syntactic
// validity and resolved imports, so the order is not configurable.
var StageOrder = []Stage{
	StageSyntax,
	StageImports,
	StageFramework,
	StageStyling,
	StageAccessibility,
	StagePatterns,
	StageConfiguration,
}
