// Package rules contains the validation rule catalog. Rules are pure: they
// read artifact text and a target config and emit issues, never mutating
// either. One issue category is produced by exactly one rule.
package rules

import "github.com/renderguard/renderguard/internal/domain"

// Rule is one named validation check scoped to a stage and a configuration
// predicate.
type Rule interface {
	Name() string
	Stage() domain.Stage
	Matches(cfg domain.TargetConfig) bool
	Check(artifact string, cfg domain.TargetConfig) []domain.Issue
}

// Registry holds the rule catalog. It is built once at construction and
// shared read-only across pipeline instances.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a rule, replacing any existing rule with the same name.
// Registration order is preserved and determines check order within a stage.
func (r *Registry) Register(rule Rule) {
	if i, ok := r.index[rule.Name()]; ok {
		r.rules[i] = rule
		return
	}
	r.index[rule.Name()] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// Rules returns all registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Applicable returns the rules whose predicate matches the config, grouped
// by stage. Iterate with domain.StageOrder to preserve the stage sequence.
func (r *Registry) Applicable(cfg domain.TargetConfig) map[domain.Stage][]Rule {
	grouped := make(map[domain.Stage][]Rule)
	for _, rule := range r.rules {
		if rule.Matches(cfg) {
			grouped[rule.Stage()] = append(grouped[rule.Stage()], rule)
		}
	}
	return grouped
}

// DefaultRegistry returns the registry with every built-in rule registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SyntaxRule{})
	r.Register(ImportsRule{})
	r.Register(ClientDirectiveRule{})
	r.Register(MediaSizingRule{})
	r.Register(StylingRule{})
	r.Register(AccessibilityRule{})
	r.Register(NamingRule{})
	r.Register(TypeScriptRule{})
	return r
}
