package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"rustcov/internal/cli"
	"rustcov/internal/cli/commands"
	"rustcov/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "rustcov",
		Short:   "Generate kcov coverage reports for cargo projects",
		Long:    `Build the tests of a cargo project or workspace, run every unit and integration test binary under kcov, merge the results into one report and open it.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Dependencies need the parsed flags, so they are built on first use
	var deps *commands.Dependencies
	cmds := commands.NewCommands(func() *commands.Dependencies {
		if deps == nil {
			deps = commands.NewDependencies(cfg)
		}
		return deps
	})

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
