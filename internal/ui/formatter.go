package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"rustcov/internal/config"
	"rustcov/internal/discovery"
	"rustcov/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, parser *discovery.Parser, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    out,
	}
}

// PrintSummaryLine prints "{label}: {percent covered}" and nothing else,
// so the line can be grepped by CI badges
func (f *Formatter) PrintSummaryLine(label string, report *domain.Report) {
	fmt.Fprintf(f.out, "%s: %s\n", label, report.PercentCovered)
}

// PrintDone prints where the merged report was written
func (f *Formatter) PrintDone(runs int, reportDir string) {
	fmt.Fprintln(f.out, color.GreenString("✓ Merged %d coverage run(s) into %s", runs, f.rel(reportDir)))
}

func (f *Formatter) rel(path string) string {
	if rel, err := filepath.Rel(f.config.RootPath, path); err == nil {
		return rel
	}
	return path
}

// PrintPlan prints the coverage runs grouped by project, optionally with
// the test functions found in each project's sources
func (f *Formatter) PrintPlan(runs []domain.CoverageRun, showTestCases bool) error {
	fmt.Fprintln(f.out, color.GreenString("Found %d test binar(ies):\n", len(runs)))

	// Runs are already ordered project by project
	var groups [][]domain.CoverageRun
	for _, run := range runs {
		last := len(groups) - 1
		if last >= 0 && groups[last][0].Project.Dir == run.Project.Dir {
			groups[last] = append(groups[last], run)
			continue
		}
		groups = append(groups, []domain.CoverageRun{run})
	}

	for i, group := range groups {
		isLastProject := i == len(groups)-1
		branch, indent := "├── ", "│   "
		if isLastProject {
			branch, indent = "└── ", "    "
		}

		projectDir := f.rel(group[0].Project.Dir)
		fmt.Fprintln(f.out, color.CyanString("%s%s", branch, projectDir))

		for j, run := range group {
			isLastRun := j == len(group)-1
			runBranch, runIndent := "├── ", "│   "
			if isLastRun {
				runBranch, runIndent = "└── ", "    "
			}

			fmt.Fprintf(f.out, "%s%s%s %s %s\n",
				indent, runBranch,
				color.YellowString("%-11s", run.Kind),
				run.Name(),
				color.WhiteString("(%s)", f.rel(run.Artifact.Path)),
			)

			if showTestCases {
				if err := f.printTestCases(run, indent+runIndent); err != nil {
					return err
				}
			}
		}

		if !isLastProject {
			fmt.Fprintln(f.out)
		}
	}

	return nil
}

// printTestCases lists the test functions of the sources a run covers: the
// project's src tree for unit runs, the test file for integration runs
func (f *Formatter) printTestCases(run domain.CoverageRun, prefix string) error {
	files, err := f.sourceFiles(run)
	if err != nil {
		return err
	}

	var cases []string
	for _, file := range files {
		found, err := f.parser.FindTestCases(file)
		if err != nil {
			return err
		}
		cases = append(cases, found...)
	}

	if len(cases) == 0 {
		fmt.Fprintf(f.out, "%s└── %s\n", prefix, color.RedString("(no test cases found)"))
		return nil
	}
	for i, name := range cases {
		branch := "├── "
		if i == len(cases)-1 {
			branch = "└── "
		}
		fmt.Fprintf(f.out, "%s%s%s\n", prefix, branch, name)
	}
	return nil
}

func (f *Formatter) sourceFiles(run domain.CoverageRun) ([]string, error) {
	if run.Kind == domain.IntegrationRun {
		return []string{filepath.Join(run.Project.TestsDir, run.Name()+".rs")}, nil
	}
	return f.parser.SourceFiles(run.Project.SourceDir)
}

// PrintReport prints the per-file table of a merged report
func (f *Formatter) PrintReport(report *domain.Report) {
	fmt.Fprintln(f.out, "┌──────────────────────────────────────────────────┬──────────┬──────────────┐")
	fmt.Fprintf(f.out, "│ %-48s │ %8s │ %12s │\n", "File", "Covered", "Lines")
	fmt.Fprintln(f.out, "├──────────────────────────────────────────────────┼──────────┼──────────────┤")
	for _, file := range report.Files {
		fmt.Fprintf(f.out, "│ %-48s │ %s │ %12s │\n",
			truncateLeft(f.rel(file.File), 48),
			colorPercent(file.PercentCovered, "%7s%%"),
			fmt.Sprintf("%d/%d", file.CoveredLines, file.TotalLines),
		)
	}
	fmt.Fprintln(f.out, "├──────────────────────────────────────────────────┼──────────┼──────────────┤")
	fmt.Fprintf(f.out, "│ %-48s │ %s │ %12s │\n",
		"Total",
		colorPercent(report.PercentCovered, "%7s%%"),
		fmt.Sprintf("%d/%d", report.CoveredLines, report.TotalLines),
	)
	fmt.Fprintln(f.out, "└──────────────────────────────────────────────────┴──────────┴──────────────┘")
}

func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
