package commands

import (
	"github.com/spf13/cobra"
)

// RunCommand generates the coverage report
type RunCommand struct {
	deps func() *Dependencies
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(deps func() *Dependencies) *RunCommand {
	return &RunCommand{deps: deps}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	d := rc.deps()

	result, err := d.Pipeline.Execute(cmd.Context())
	if err != nil {
		return err
	}

	if result.Report != nil {
		d.Formatter.PrintSummaryLine(d.Config.Flags.PrintReport, result.Report)
		return nil
	}

	d.Formatter.PrintDone(len(result.Runs), result.ReportDir)
	return nil
}
