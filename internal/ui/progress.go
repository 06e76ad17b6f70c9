package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	total int
}

// NewProgressBar creates a new progress bar over count coverage runs
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, count, "")),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar, total: count}
}

func describe(completed, total int, current string) string {
	desc := color.CyanString("Collecting coverage: ") +
		color.GreenString("[%d/%d]", completed, total)
	if current != "" {
		desc += " " + color.WhiteString(current)
	}
	return desc
}

// Start shows which artifact is being instrumented
func (p *ProgressBar) Start(completed int, name string) {
	p.bar.Describe(describe(completed, p.total, name))
}

// Update marks completed runs as done
func (p *ProgressBar) Update(completed int) {
	p.bar.Set(completed)
	p.bar.Describe(describe(completed, p.total, ""))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
