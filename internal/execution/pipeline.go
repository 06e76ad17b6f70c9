package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"rustcov/internal/config"
	"rustcov/internal/discovery"
	"rustcov/internal/domain"
	"rustcov/internal/storage"
	"rustcov/internal/ui"
)

// Pipeline runs the coverage steps strictly in order: build, resolve,
// instrument each artifact, merge, then open or load the report.
type Pipeline struct {
	config    *config.Config
	fs        afero.Fs
	log       *slog.Logger
	out       io.Writer
	workspace *discovery.Workspace
	resolver  *discovery.Resolver
	filter    *discovery.Filter
	build     BuildTool
	coverage  CoverageTool
	viewer    ReportViewer
	storage   storage.Storage
	progress  func(total int) *ui.ProgressBar
}

// NewPipeline creates a new Pipeline
func NewPipeline(
	cfg *config.Config,
	fsys afero.Fs,
	log *slog.Logger,
	workspace *discovery.Workspace,
	resolver *discovery.Resolver,
	filter *discovery.Filter,
	build BuildTool,
	coverage CoverageTool,
	viewer ReportViewer,
	st storage.Storage,
) *Pipeline {
	return &Pipeline{
		config:    cfg,
		fs:        fsys,
		log:       log,
		out:       io.Discard,
		workspace: workspace,
		resolver:  resolver,
		filter:    filter,
		build:     build,
		coverage:  coverage,
		viewer:    viewer,
		storage:   st,
	}
}

// SetOutput sets where step headlines are printed
func (p *Pipeline) SetOutput(out io.Writer) {
	p.out = out
}

// SetProgress sets how the progress bar over coverage runs is created.
// Without it no progress is shown.
func (p *Pipeline) SetProgress(newBar func(total int) *ui.ProgressBar) {
	p.progress = newBar
}

// Plan resolves one coverage run per unit-test binary and per integration
// test of every workspace project, then applies the name filter.
// Targets without a built artifact are skipped with a warning.
func (p *Pipeline) Plan() ([]domain.CoverageRun, error) {
	var runs []domain.CoverageRun
	usedDirs := make(map[string]int)

	add := func(kind domain.RunKind, project domain.Project, artifact domain.Artifact) {
		outputDir := filepath.Join(p.config.GetScratchDir(), artifact.FileName)
		if n := usedDirs[artifact.FileName]; n > 0 {
			// Same binary resolved for two targets, both get it.
			p.log.Warn("artifact resolved for more than one target",
				slog.String("artifact", artifact.FileName),
				slog.String("project", project.Dir),
			)
			outputDir = fmt.Sprintf("%s.%d", outputDir, n+1)
		}
		usedDirs[artifact.FileName]++

		runs = append(runs, domain.CoverageRun{
			Kind:        kind,
			Project:     project,
			Artifact:    artifact,
			IncludePath: project.SourceDir,
			OutputDir:   outputDir,
		})
	}

	for project, err := range p.workspace.Projects() {
		if err != nil {
			return nil, err
		}

		names, err := discovery.ReadManifest(p.fs, project.ManifestPath)
		if err != nil {
			return nil, err
		}

		artifact, err := p.resolver.LatestOf(names.UnitCandidates()...)
		switch {
		case err == nil:
			add(domain.UnitRun, project, artifact)
		case errors.Is(err, domain.ErrNotFound):
			p.log.Warn("no unit test binary, skipping project",
				slog.String("project", project.Dir),
				slog.Any("tried", names.UnitCandidates()),
			)
		default:
			return nil, err
		}

		testNames, err := discovery.IntegrationTestNames(p.fs, project)
		if err != nil {
			return nil, err
		}
		for _, name := range testNames {
			artifact, err := p.resolver.Latest(name)
			if errors.Is(err, domain.ErrNotFound) {
				p.log.Warn("no integration test binary, skipping",
					slog.String("test", name),
					slog.String("project", project.Dir),
				)
				continue
			}
			if err != nil {
				return nil, err
			}
			add(domain.IntegrationRun, project, artifact)
		}
	}

	return p.filter.FilterByName(runs, p.config.Flags.NameFilter), nil
}

// Execute runs the whole pipeline. The first failing step aborts the run.
func (p *Pipeline) Execute(ctx context.Context) (*Result, error) {
	fmt.Fprintln(p.out, color.CyanString("Compiling tests..."))
	if err := p.build.CompileTests(ctx); err != nil {
		return nil, fmt.Errorf("compile tests: %w", err)
	}

	if err := p.storage.ResetScratch(); err != nil {
		return nil, err
	}

	runs, err := p.Plan()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNothingToCover
	}

	fmt.Fprintln(p.out, color.CyanString("Generating coverage report..."))
	var bar *ui.ProgressBar
	if p.progress != nil {
		bar = p.progress(len(runs))
	}
	runDirs := make([]string, 0, len(runs))
	for i, run := range runs {
		if bar != nil {
			bar.Start(i, run.Artifact.FileName)
		}
		p.log.Info("collecting coverage",
			slog.String("kind", string(run.Kind)),
			slog.String("artifact", run.Artifact.Path),
			slog.String("include", run.IncludePath),
		)
		if err := p.coverage.Instrument(ctx, run); err != nil {
			return nil, fmt.Errorf("collect coverage of %s: %w", run.Artifact.FileName, err)
		}
		runDirs = append(runDirs, run.OutputDir)
		if bar != nil {
			bar.Update(i + 1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if err := p.storage.ResetReport(); err != nil {
		return nil, err
	}
	reportDir := p.config.GetCoverageDir()
	if err := p.coverage.Merge(ctx, reportDir, runDirs); err != nil {
		return nil, fmt.Errorf("merge coverage: %w", err)
	}
	if err := p.storage.RemoveScratch(); err != nil {
		return nil, err
	}

	result := &Result{Runs: runs, ReportDir: reportDir}

	if !p.config.Flags.NoBrowser {
		fmt.Fprintln(p.out, color.CyanString("Opening report..."))
		if err := p.viewer.Open(ctx, p.config.GetReportIndex()); err != nil {
			return nil, fmt.Errorf("open report: %w", err)
		}
	}

	if p.config.Flags.PrintReport != "" {
		report, err := p.storage.LoadReport()
		if err != nil {
			return nil, err
		}
		result.Report = report
	}

	return result, nil
}
