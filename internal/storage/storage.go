package storage

import (
	"rustcov/internal/config"
	"rustcov/internal/domain"
	"rustcov/internal/parser"

	"github.com/spf13/afero"
)

// Storage owns the coverage output tree: the scratch directory that holds
// one kcov run per artifact and the final merged report.
type Storage interface {
	// ResetScratch deletes and recreates the scratch directory
	ResetScratch() error
	// RemoveScratch deletes the scratch directory
	RemoveScratch() error
	// ResetReport deletes the merged report directory before a merge
	ResetReport() error
	// LoadReport reads the merged machine-readable summary
	LoadReport() (*domain.Report, error)
}

// ReportStore is the Storage backed by the configured coverage directories
type ReportStore struct {
	fs     afero.Fs
	cfg    *config.Config
	parser parser.Parser
}

// NewReportStore returns a Storage rooted at the config's coverage paths
func NewReportStore(fsys afero.Fs, cfg *config.Config, p parser.Parser) *ReportStore {
	return &ReportStore{fs: fsys, cfg: cfg, parser: p}
}
