package domain

import "context"

// RepairAdapter is the external code-repair collaborator (typically an LLM).
// Repair must return a complete replacement artifact or an error, never a
// partial edit. Calls are slow and unreliable; the pipeline bounds them with
// a timeout and gates every returned artifact before trusting it.
type RepairAdapter interface {
	Repair(ctx context.Context, artifact string, issues []Issue, cfg TargetConfig) (string, error)
}

// ComplianceAdapter is the optional design-compliance collaborator.
type ComplianceAdapter interface {
	CheckCompliance(ctx context.Context, artifact string, cfg TargetConfig) (ComplianceReport, error)
}

// DependencyCatalog supplies the target project's dependency set. The
// pipeline core never touches the filesystem itself.
type DependencyCatalog interface {
	Dependencies(projectPath string) (map[string]string, error)
}

// GitInfo provides repository metadata for report stamping.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
