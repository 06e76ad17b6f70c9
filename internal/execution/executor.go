package execution

import (
	"context"

	"rustcov/internal/domain"
)

// BuildTool compiles every test target without running it
type BuildTool interface {
	CompileTests(ctx context.Context) error
}

// CoverageTool instruments one artifact and merges finished runs
type CoverageTool interface {
	Instrument(ctx context.Context, run domain.CoverageRun) error
	Merge(ctx context.Context, outputDir string, runDirs []string) error
}

// ReportViewer opens a generated report for a human
type ReportViewer interface {
	Open(ctx context.Context, path string) error
}

// Executor runs the whole coverage pipeline
type Executor interface {
	Execute(ctx context.Context) (*Result, error)
}

// Result is what a finished pipeline produced
type Result struct {
	Runs      []domain.CoverageRun
	ReportDir string
	Report    *domain.Report // Loaded only when a summary line was requested
}
