package execution

import (
	"context"
	"strings"

	"rustcov/internal/config"
	"rustcov/internal/domain"
)

// toolArgs splits a configured tool such as "cargo +nightly" into argv
func toolArgs(tool string, args ...string) []string {
	return append(strings.Fields(tool), args...)
}

// Cargo is the BuildTool
type Cargo struct {
	config *config.Config
	runner CommandRunner
}

// NewCargo creates a new Cargo
func NewCargo(cfg *config.Config, runner CommandRunner) *Cargo {
	return &Cargo{config: cfg, runner: runner}
}

// CompileTests builds the tests of the whole workspace without running
// them. RUSTFLAGS is overridden so unused code is linked in and shows up as
// uncovered instead of disappearing from the report.
func (c *Cargo) CompileTests(ctx context.Context) error {
	return c.runner.Run(ctx, Command{
		Args: toolArgs(c.config.Tools.Cargo, "test", "--no-run", "--workspace"),
		Env:  []string{"RUSTFLAGS=" + c.config.Tools.RustFlags},
		Dir:  c.config.RootPath,
	})
}

// Kcov is the CoverageTool
type Kcov struct {
	config *config.Config
	runner CommandRunner
}

// NewKcov creates a new Kcov
func NewKcov(cfg *config.Config, runner CommandRunner) *Kcov {
	return &Kcov{config: cfg, runner: runner}
}

// Instrument runs one test binary under kcov, reporting only on the
// run's include path
func (k *Kcov) Instrument(ctx context.Context, run domain.CoverageRun) error {
	return k.runner.Run(ctx, Command{
		Args: toolArgs(k.config.Tools.Kcov,
			"--verify",
			"--include-path="+run.IncludePath,
			run.OutputDir,
			run.Artifact.Path,
		),
		Dir: run.Project.Dir,
	})
}

// Merge combines the given run directories into outputDir
func (k *Kcov) Merge(ctx context.Context, outputDir string, runDirs []string) error {
	args := append([]string{"--merge", outputDir}, runDirs...)
	return k.runner.Run(ctx, Command{
		Args: toolArgs(k.config.Tools.Kcov, args...),
		Dir:  k.config.RootPath,
	})
}

// Opener is the ReportViewer backed by a desktop opener such as xdg-open
type Opener struct {
	config *config.Config
	runner CommandRunner
}

// NewOpener creates a new Opener
func NewOpener(cfg *config.Config, runner CommandRunner) *Opener {
	return &Opener{config: cfg, runner: runner}
}

// Open hands path to the configured opener
func (o *Opener) Open(ctx context.Context, path string) error {
	return o.runner.Run(ctx, Command{
		Args: toolArgs(o.config.Tools.Opener, path),
		Dir:  o.config.RootPath,
	})
}
