package domain

import "time"

// Artifact is one compiled test binary found in the build output directory
type Artifact struct {
	Name     string    // Logical name it was resolved for
	Path     string    // Full path to the binary
	FileName string    // {name}-{hash}
	ModTime  time.Time // Last modification time
}

// RunKind tells a unit-test run from an integration-test run
type RunKind string

const (
	UnitRun        RunKind = "unit"
	IntegrationRun RunKind = "integration"
)

// CoverageRun associates one artifact with its kcov output directory
type CoverageRun struct {
	Kind        RunKind
	Project     Project
	Artifact    Artifact
	IncludePath string // Source path kcov restricts its report to
	OutputDir   string // Per-artifact subdirectory of the scratch directory
}

// Name returns the logical name the run was planned for
func (r CoverageRun) Name() string {
	return r.Artifact.Name
}
