package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"rustcov/internal/domain"
)

// ErrNoReport is returned by LoadReport before any report was merged
var ErrNoReport = errors.New("no merged coverage report, run rustcov first")

// ResetScratch deletes and recreates the scratch directory
func (s *ReportStore) ResetScratch() error {
	dir := s.cfg.GetScratchDir()
	if err := s.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove scratch dir: %w", err)
	}
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	return nil
}

// RemoveScratch deletes the scratch directory
func (s *ReportStore) RemoveScratch() error {
	if err := s.fs.RemoveAll(s.cfg.GetScratchDir()); err != nil {
		return fmt.Errorf("remove scratch dir: %w", err)
	}
	return nil
}

// ResetReport deletes the merged report directory
func (s *ReportStore) ResetReport() error {
	if err := s.fs.RemoveAll(s.cfg.GetCoverageDir()); err != nil {
		return fmt.Errorf("remove coverage dir: %w", err)
	}
	return nil
}

// LoadReport reads and parses the merged summary
func (s *ReportStore) LoadReport() (*domain.Report, error) {
	path := s.cfg.GetSummaryPath()
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoReport
		}
		return nil, fmt.Errorf("read coverage summary: %w", err)
	}
	return s.parser.ParseSummary(data)
}
