package commands

import (
	"io"
	"log/slog"
	"os"

	"rustcov/internal/cli"
	"rustcov/internal/config"
	"rustcov/internal/discovery"
	"rustcov/internal/execution"
	"rustcov/internal/logger"
	"rustcov/internal/parser"
	"rustcov/internal/storage"
	"rustcov/internal/ui"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
	View *ViewCommand
}

// Dependencies are the collaborators every command is built from
type Dependencies struct {
	Config    *config.Config
	Fs        afero.Fs
	Log       *slog.Logger
	Out       io.Writer
	Runner    execution.CommandRunner
	Formatter *ui.Formatter
	Pipeline  *execution.Pipeline
	Storage   storage.Storage
	Browser   ui.Viewer
}

// NewDependencies wires the real filesystem, processes and terminal
func NewDependencies(cfg *config.Config) *Dependencies {
	fsys := afero.NewOsFs()
	log := logger.New(cfg.Flags.EnableLog)
	out := io.Writer(os.Stdout)

	var echo io.Writer
	if cfg.Flags.EnableLog {
		echo = os.Stderr
	}
	runner := execution.NewRunner(log, os.Stdout, echo)

	st := storage.NewReportStore(fsys, cfg, parser.NewKcovParser())
	pipeline := execution.NewPipeline(
		cfg,
		fsys,
		log,
		discovery.NewWorkspace(fsys, cfg),
		discovery.NewResolver(fsys, cfg.GetBuildDir()),
		discovery.NewFilter(),
		execution.NewCargo(cfg, runner),
		execution.NewKcov(cfg, runner),
		execution.NewOpener(cfg, runner),
		st,
	)
	pipeline.SetOutput(out)
	if !cfg.Flags.EnableLog {
		// No bar while command output is echoed
		pipeline.SetProgress(ui.NewProgressBar)
	}

	return &Dependencies{
		Config:    cfg,
		Fs:        fsys,
		Log:       log,
		Out:       out,
		Runner:    runner,
		Formatter: ui.NewFormatter(cfg, discovery.NewParser(fsys), out),
		Pipeline:  pipeline,
		Storage:   st,
		Browser:   ui.NewReportBrowser(cfg),
	}
}

// NewCommands creates all commands. Dependencies are built lazily by deps
// once flags are parsed, since the root and the logger depend on them.
func NewCommands(deps func() *Dependencies) *Commands {
	return &Commands{
		Run:  NewRunCommand(deps),
		List: NewListCommand(deps),
		View: NewViewCommand(deps),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Applies parsed flags to the config before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if err := cfg.SetRoot(flags.Root); err != nil {
			return err
		}
		return cfg.LoadEnv()
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVarP(&flags.Root, "root", "C", config.DefaultRootPath, "Workspace root to collect coverage for")
	rootCmd.PersistentFlags().BoolVar(&flags.EnableLog, "enable-log", false, "Log every external command and its output")

	// Running the root command generates the report
	rootCmd.RunE = c.Run.Execute
	rootCmd.Args = cobra.NoArgs
	rootCmd.Flags().BoolVar(&flags.NoBrowser, "no-browser", false, "Do not open the report when it is ready")
	rootCmd.Flags().StringVar(&flags.PrintReport, "print-report", "", "Print '<label>: <percent covered>' after generating the report")
	rootCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only collect coverage for test binaries matching a pattern (supports wildcards, e.g. 'api_*')")

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List test binaries coverage would be collected from",
		Long:  "Scan the workspace and the build directory and show which test binary every target resolves to, without building or running anything",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only list test binaries matching a pattern (supports wildcards, e.g. 'api_*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test functions under each binary")
	rootCmd.AddCommand(listCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the last coverage report",
		Long:  "Display per-file coverage of the last merged report, interactively when attached to a terminal",
		Args:  cobra.NoArgs,
		RunE:  c.View.Execute,
	}
	viewCmd.Flags().BoolVar(&flags.Table, "table", false, "Print a table instead of opening the interactive viewer")
	rootCmd.AddCommand(viewCmd)
}
