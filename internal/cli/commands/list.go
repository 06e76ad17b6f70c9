package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	deps func() *Dependencies
}

// NewListCommand creates a new ListCommand
func NewListCommand(deps func() *Dependencies) *ListCommand {
	return &ListCommand{deps: deps}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	d := lc.deps()

	runs, err := d.Pipeline.Plan()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		color.New(color.FgYellow).Fprintln(d.Out, "No test binaries found, build the tests first")
		return nil
	}

	return d.Formatter.PrintPlan(runs, d.Config.Flags.TestCases)
}
