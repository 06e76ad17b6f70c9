package parser

import "rustcov/internal/domain"

// Parser parses a coverage tool's machine-readable summary
type Parser interface {
	ParseSummary(data []byte) (*domain.Report, error)
}
