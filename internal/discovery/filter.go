package discovery

import (
	"path/filepath"
	"strings"

	"rustcov/internal/domain"
)

// Filter filters coverage runs by logical name
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name satisfies pattern.
// Patterns with * or ? are globs; "*part*" also matches when every non-empty
// part occurs in the name. Plain patterns are substring matches.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	if strings.Contains(pattern, "?") {
		return false
	}

	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasPart
}

// FilterByName keeps the runs whose logical name matches pattern
func (f *Filter) FilterByName(runs []domain.CoverageRun, pattern string) []domain.CoverageRun {
	if pattern == "" {
		return runs
	}

	var filtered []domain.CoverageRun
	for _, run := range runs {
		if f.Match(run.Name(), pattern) {
			filtered = append(filtered, run)
		}
	}
	return filtered
}
