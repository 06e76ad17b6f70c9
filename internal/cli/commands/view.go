package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ViewCommand handles the view command
type ViewCommand struct {
	deps func() *Dependencies
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(deps func() *Dependencies) *ViewCommand {
	return &ViewCommand{deps: deps}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	d := vc.deps()

	report, err := d.Storage.LoadReport()
	if err != nil {
		return err
	}

	if d.Config.Flags.Table || !isatty.IsTerminal(os.Stdout.Fd()) {
		d.Formatter.PrintReport(report)
		return nil
	}

	return d.Browser.View(report)
}
