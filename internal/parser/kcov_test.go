package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKcovParser_ParseSummary(t *testing.T) {
	p := NewKcovParser()

	t.Run("merged summary", func(t *testing.T) {
		data := []byte(`{
  "files": [
    {"file": "/ws/src/lib.rs", "percent_covered": "90.00", "covered_lines": "9", "total_lines": "10"},
    {"file": "/ws/src/main.rs", "percent_covered": "75.00", "covered_lines": "3", "total_lines": "4"}
  ],
  "percent_covered": "85.71",
  "covered_lines": 12,
  "total_lines": 14,
  "percent_low": 25,
  "percent_high": 75,
  "command": "kcov-merged",
  "date": "2024-01-01 12:00:00"
}`)

		report, err := p.ParseSummary(data)
		require.NoError(t, err)
		assert.Equal(t, "85.71", report.PercentCovered)
		assert.Equal(t, 12, report.CoveredLines)
		assert.Equal(t, 14, report.TotalLines)
		assert.Equal(t, "kcov-merged", report.Command)
		require.Len(t, report.Files, 2)
		assert.Equal(t, "/ws/src/lib.rs", report.Files[0].File)
		assert.Equal(t, "90.00", report.Files[0].PercentCovered)
		assert.Equal(t, 9, report.Files[0].CoveredLines)
		assert.Equal(t, 4, report.Files[1].TotalLines)
	})

	t.Run("numeric percent is kept as written", func(t *testing.T) {
		report, err := p.ParseSummary([]byte(`{"percent_covered": 87.5}`))
		require.NoError(t, err)
		assert.Equal(t, "87.5", report.PercentCovered)
		assert.Empty(t, report.Files)
	})

	t.Run("missing percent", func(t *testing.T) {
		_, err := p.ParseSummary([]byte(`{"files": []}`))
		assert.ErrorContains(t, err, "missing percent_covered")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := p.ParseSummary([]byte(`{"percent_covered":`))
		assert.Error(t, err)
	})

	t.Run("non-numeric line count", func(t *testing.T) {
		_, err := p.ParseSummary([]byte(`{"percent_covered": "1", "covered_lines": "many"}`))
		assert.ErrorContains(t, err, "covered_lines")
	})
}
