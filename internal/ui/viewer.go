package ui

import (
	"strconv"

	"github.com/fatih/color"
	"rustcov/internal/domain"
)

// Viewer displays a merged coverage report
type Viewer interface {
	View(report *domain.Report) error
}

// Coverage bands, as in kcov's HTML report
const (
	lowCoverage  = 25.0
	highCoverage = 75.0
)

type band int

const (
	bandLow band = iota
	bandMedium
	bandHigh
)

func coverageBand(percent string) band {
	v, err := strconv.ParseFloat(percent, 64)
	switch {
	case err != nil || v < lowCoverage:
		return bandLow
	case v < highCoverage:
		return bandMedium
	default:
		return bandHigh
	}
}

// colorPercent formats percent with format and colors it by band
func colorPercent(percent, format string) string {
	switch coverageBand(percent) {
	case bandHigh:
		return color.GreenString(format, percent)
	case bandMedium:
		return color.YellowString(format, percent)
	default:
		return color.RedString(format, percent)
	}
}
