package execution

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rustcov/internal/config"
	"rustcov/internal/discovery"
	"rustcov/internal/domain"
	"rustcov/internal/logger"
	"rustcov/internal/parser"
	"rustcov/internal/storage"
)

// fakeRunner records commands and imitates the side effects kcov has on
// the filesystem
type fakeRunner struct {
	fs       afero.Fs
	cfg      *config.Config
	commands []Command
	failOn   func(Command) bool
}

func (r *fakeRunner) Run(_ context.Context, c Command) error {
	r.commands = append(r.commands, c)
	if r.failOn != nil && r.failOn(c) {
		return &domain.FailedCommandError{Args: c.Args, ExitCode: 1, Stderr: "boom"}
	}
	if c.Args[0] == "kcov" {
		if c.Args[1] == "--merge" {
			return afero.WriteFile(r.fs, r.cfg.GetSummaryPath(), []byte(`{"percent_covered": 87.5}`), 0644)
		}
		return r.fs.MkdirAll(c.Args[len(c.Args)-2], 0755)
	}
	return nil
}

func (r *fakeRunner) lines() []string {
	lines := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		lines = append(lines, c.String())
	}
	return lines
}

type fixture struct {
	fs       afero.Fs
	cfg      *config.Config
	runner   *fakeRunner
	pipeline *Pipeline
	mtime    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	cfg := config.New()
	cfg.RootPath = "/ws"

	runner := &fakeRunner{fs: fsys, cfg: cfg}
	pipeline := NewPipeline(
		cfg,
		fsys,
		logger.Discard(),
		discovery.NewWorkspace(fsys, cfg),
		discovery.NewResolver(fsys, cfg.GetBuildDir()),
		discovery.NewFilter(),
		NewCargo(cfg, runner),
		NewKcov(cfg, runner),
		NewOpener(cfg, runner),
		storage.NewReportStore(fsys, cfg, parser.NewKcovParser()),
	)

	return &fixture{
		fs:       fsys,
		cfg:      cfg,
		runner:   runner,
		pipeline: pipeline,
		mtime:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0644))
}

func (f *fixture) project(t *testing.T, dir, manifest string, tests ...string) {
	t.Helper()
	f.write(t, dir+"/Cargo.toml", manifest)
	f.write(t, dir+"/src/lib.rs", "")
	for _, name := range tests {
		f.write(t, dir+"/tests/"+name+".rs", "")
	}
}

// artifact writes a build output, each one newer than the previous
func (f *fixture) artifact(t *testing.T, name string) {
	t.Helper()
	path := f.cfg.GetBuildDir() + "/" + name
	f.write(t, path, "bin")
	f.mtime = f.mtime.Add(time.Minute)
	require.NoError(t, f.fs.Chtimes(path, f.mtime, f.mtime))
}

func TestPipeline_Execute(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[package]\nname = \"foo\"\n", "basic")
	f.artifact(t, "foo-aa11")
	f.artifact(t, "foo-bb22")
	f.artifact(t, "basic-cc33")
	f.write(t, "/ws/target/coverage-runs/stale/index.html", "")
	f.cfg.Flags.PrintReport = "suite"

	result, err := f.pipeline.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"cargo test --no-run --workspace",
		"kcov --verify --include-path=/ws/src /ws/target/coverage-runs/foo-bb22 /ws/target/debug/foo-bb22",
		"kcov --verify --include-path=/ws/src /ws/target/coverage-runs/basic-cc33 /ws/target/debug/basic-cc33",
		"kcov --merge /ws/target/coverage /ws/target/coverage-runs/foo-bb22 /ws/target/coverage-runs/basic-cc33",
		"xdg-open /ws/target/coverage/index.html",
	}, f.runner.lines())

	assert.Equal(t, []string{"RUSTFLAGS=-C link-dead-code"}, f.runner.commands[0].Env)
	assert.Equal(t, "/ws", f.runner.commands[0].Dir)

	// Scratch directory does not survive a successful run
	exists, err := afero.Exists(f.fs, f.cfg.GetScratchDir())
	require.NoError(t, err)
	assert.False(t, exists)

	require.Len(t, result.Runs, 2)
	assert.Equal(t, domain.UnitRun, result.Runs[0].Kind)
	assert.Equal(t, domain.IntegrationRun, result.Runs[1].Kind)
	assert.Equal(t, "/ws/target/coverage", result.ReportDir)
	require.NotNil(t, result.Report)
	assert.Equal(t, "87.5", result.Report.PercentCovered)
}

func TestPipeline_Execute_NoBrowser(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[package]\nname = \"foo\"\n")
	f.artifact(t, "foo-aa11")
	f.cfg.Flags.NoBrowser = true

	result, err := f.pipeline.Execute(context.Background())
	require.NoError(t, err)

	for _, line := range f.runner.lines() {
		assert.False(t, strings.HasPrefix(line, "xdg-open"), "unexpected %q", line)
	}
	assert.Nil(t, result.Report)
}

func TestPipeline_Execute_BuildFailure(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[package]\nname = \"foo\"\n")
	f.runner.failOn = func(c Command) bool { return c.Args[0] == "cargo" }

	_, err := f.pipeline.Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrFailedCommand)
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, f.runner.commands, 1)
}

func TestPipeline_Execute_CoverageFailureAbortsRun(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[package]\nname = \"foo\"\n", "basic")
	f.artifact(t, "foo-aa11")
	f.artifact(t, "basic-bb22")
	f.runner.failOn = func(c Command) bool {
		return c.Args[0] == "kcov" && strings.HasSuffix(c.Args[len(c.Args)-1], "foo-aa11")
	}

	_, err := f.pipeline.Execute(context.Background())

	var failed *domain.FailedCommandError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "boom", failed.Stderr)
	// Build and the failing instrument only; no merge, no viewer
	assert.Len(t, f.runner.commands, 2)
}

func TestPipeline_Execute_NothingToCover(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[package]\nname = \"foo\"\n")

	_, err := f.pipeline.Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrNothingToCover)
}

func TestPipeline_Plan_Workspace(t *testing.T) {
	f := newFixture(t)
	// Virtual manifest at the root is not a project: it has no src
	f.write(t, "/ws/Cargo.toml", "[workspace]\nmembers = [\"crates/*\"]\n")
	f.project(t, "/ws/crates/core", "[package]\nname = \"my-core\"\n", "roundtrip")
	f.project(t, "/ws/crates/cli", "[package]\nname = \"cli\"\n")
	f.project(t, "/ws/crates/docs", "[package]\nname = \"docs\"\n")
	f.artifact(t, "my_core-1111")
	f.artifact(t, "cli-2222")
	f.artifact(t, "roundtrip-3333")

	runs, err := f.pipeline.Plan()
	require.NoError(t, err)

	require.Len(t, runs, 3)
	assert.Equal(t, "cli-2222", runs[0].Artifact.FileName)
	assert.Equal(t, "/ws/crates/cli/src", runs[0].IncludePath)
	// Library-name fallback for the dashed package
	assert.Equal(t, "my_core-1111", runs[1].Artifact.FileName)
	assert.Equal(t, "my_core", runs[1].Name())
	assert.Equal(t, "roundtrip-3333", runs[2].Artifact.FileName)
	assert.Equal(t, "/ws/crates/core/src", runs[2].IncludePath)
	assert.Equal(t, domain.IntegrationRun, runs[2].Kind)
}

func TestPipeline_Plan_SharedIntegrationTestName(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws/a", "[package]\nname = \"a\"\n", "common")
	f.project(t, "/ws/b", "[package]\nname = \"b\"\n", "common")
	f.artifact(t, "common-aaaa")
	f.artifact(t, "common-bbbb")

	runs, err := f.pipeline.Plan()
	require.NoError(t, err)

	require.Len(t, runs, 2)
	// Both members get the newest binary; their outputs stay apart
	assert.Equal(t, "common-bbbb", runs[0].Artifact.FileName)
	assert.Equal(t, "common-bbbb", runs[1].Artifact.FileName)
	assert.Equal(t, "/ws/target/coverage-runs/common-bbbb", runs[0].OutputDir)
	assert.Equal(t, "/ws/target/coverage-runs/common-bbbb.2", runs[1].OutputDir)
}

func TestPipeline_Plan_Filter(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[package]\nname = \"foo\"\n", "basic", "advanced")
	f.artifact(t, "foo-1111")
	f.artifact(t, "basic-2222")
	f.artifact(t, "advanced-3333")
	f.cfg.Flags.NameFilter = "basic"

	runs, err := f.pipeline.Plan()
	require.NoError(t, err)

	require.Len(t, runs, 1)
	assert.Equal(t, "basic", runs[0].Name())
}

func TestPipeline_Plan_ManifestError(t *testing.T) {
	f := newFixture(t)
	f.project(t, "/ws", "[dependencies]\nserde = \"1\"\n")

	_, err := f.pipeline.Plan()
	var manifestErr *domain.ManifestError
	assert.ErrorAs(t, err, &manifestErr)
}
