package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"rustcov/internal/config"
	"rustcov/internal/domain"
)

// ReportBrowser shows a merged report in an interactive TUI
type ReportBrowser struct {
	config *config.Config
}

// NewReportBrowser creates a new ReportBrowser
func NewReportBrowser(cfg *config.Config) *ReportBrowser {
	return &ReportBrowser{config: cfg}
}

// sortOrder is toggled with the S key
type sortOrder int

const (
	byName sortOrder = iota
	byCoverage
)

// sortFiles returns a sorted copy of files
func sortFiles(files []domain.FileCoverage, order sortOrder) []domain.FileCoverage {
	sorted := make([]domain.FileCoverage, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == byCoverage {
			pi, _ := strconv.ParseFloat(sorted[i].PercentCovered, 64)
			pj, _ := strconv.ParseFloat(sorted[j].PercentCovered, 64)
			if pi != pj {
				return pi < pj
			}
		}
		return sorted[i].File < sorted[j].File
	})
	return sorted
}

// tviewColor maps a coverage band to a tview color tag
func tviewColor(percent string) string {
	switch coverageBand(percent) {
	case bandHigh:
		return "green"
	case bandMedium:
		return "yellow"
	default:
		return "red"
	}
}

// coverageBar renders a fixed-width bar for percent
func coverageBar(percent string, width int) string {
	v, _ := strconv.ParseFloat(percent, 64)
	filled := int(v / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// View displays the report files in a list with details on the right
func (rb *ReportBrowser) View(report *domain.Report) error {
	if len(report.Files) == 0 {
		color.Yellow("The report does not cover any file")
		return nil
	}

	order := byName
	files := sortFiles(report.Files, order)

	app := tview.NewApplication()

	// Create list for files (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	listItemText := func(file domain.FileCoverage) string {
		return fmt.Sprintf("[%s]%6s%%[white] %s", tviewColor(file.PercentCovered), file.PercentCovered, rb.rel(file.File))
	}

	fillList := func() {
		list.Clear()
		for _, file := range files {
			list.AddItem(listItemText(file), "", 0, nil)
		}
	}

	// Create text view for file details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	detailsView.SetBorder(true).SetTitle(" File ")

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 2, true).
		AddItem(detailsView, 0, 1, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		sortName := "name"
		if order == byCoverage {
			sortName = "coverage"
		}
		headerView.SetText(fmt.Sprintf(
			" Coverage [%s]%s%%[white] (%d/%d lines, %d files) | sorted by %s | ↑↓ navigate, [yellow]S[white] sort, [yellow]Q[white] quit ",
			tviewColor(report.PercentCovered), report.PercentCovered,
			report.CoveredLines, report.TotalLines, len(files), sortName,
		))
	}

	updateDetails := func(index int) {
		if index < 0 || index >= len(files) {
			return
		}
		detailsView.SetText(rb.formatFileDetails(files[index]))
	}

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails(index)
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				app.Stop()
				return nil
			case 's', 'S':
				if order == byName {
					order = byCoverage
				} else {
					order = byName
				}
				files = sortFiles(report.Files, order)
				fillList()
				list.SetCurrentItem(0)
				updateHeader()
				updateDetails(0)
				return nil
			}
		}
		return event
	})

	fillList()
	updateHeader()
	updateDetails(0)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatFileDetails formats one file's coverage using tview color tags
func (rb *ReportBrowser) formatFileDetails(file domain.FileCoverage) string {
	var builder strings.Builder
	c := tviewColor(file.PercentCovered)

	fmt.Fprintf(&builder, "[cyan]%s[white]\n\n", rb.rel(file.File))
	fmt.Fprintf(&builder, "[%s]%s[white]\n\n", c, coverageBar(file.PercentCovered, 30))
	fmt.Fprintf(&builder, "[yellow]Covered:[white] [%s]%s%%[white]\n", c, file.PercentCovered)
	fmt.Fprintf(&builder, "[yellow]Lines:[white]   %d of %d\n", file.CoveredLines, file.TotalLines)
	if missed := file.TotalLines - file.CoveredLines; missed > 0 {
		fmt.Fprintf(&builder, "[yellow]Missed:[white]  [red]%d[white]\n", missed)
	}

	return builder.String()
}

func (rb *ReportBrowser) rel(path string) string {
	if rb.config.RootPath == "" {
		return path
	}
	prefix := strings.TrimSuffix(rb.config.RootPath, "/") + "/"
	return strings.TrimPrefix(path, prefix)
}
