package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"rustcov/internal/domain"
)

// KcovParser parses the coverage.json file kcov writes next to a report
type KcovParser struct{}

// NewKcovParser creates a new KcovParser
func NewKcovParser() *KcovParser {
	return &KcovParser{}
}

// kcov writes some numbers as JSON strings and others as numbers depending
// on the version and on the level (file entries vs. totals)
type number string

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = number(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*n = number(f.String())
	return nil
}

func (n number) toInt() (int, error) {
	if n == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

type kcovFile struct {
	File           string `json:"file"`
	PercentCovered number `json:"percent_covered"`
	CoveredLines   number `json:"covered_lines"`
	TotalLines     number `json:"total_lines"`
}

type kcovSummary struct {
	Files          []kcovFile `json:"files"`
	PercentCovered *number    `json:"percent_covered"`
	CoveredLines   number     `json:"covered_lines"`
	TotalLines     number     `json:"total_lines"`
	Command        string     `json:"command"`
	Date           string     `json:"date"`
}

// ParseSummary parses kcov's coverage.json. The overall percent_covered
// field is required; it is kept verbatim.
func (p *KcovParser) ParseSummary(data []byte) (*domain.Report, error) {
	var raw kcovSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse coverage summary: %w", err)
	}
	if raw.PercentCovered == nil || *raw.PercentCovered == "" {
		return nil, errors.New("parse coverage summary: missing percent_covered")
	}

	report := &domain.Report{
		PercentCovered: string(*raw.PercentCovered),
		Command:        raw.Command,
		Date:           raw.Date,
	}

	var err error
	if report.CoveredLines, err = raw.CoveredLines.toInt(); err != nil {
		return nil, fmt.Errorf("parse covered_lines: %w", err)
	}
	if report.TotalLines, err = raw.TotalLines.toInt(); err != nil {
		return nil, fmt.Errorf("parse total_lines: %w", err)
	}

	for _, f := range raw.Files {
		file := domain.FileCoverage{
			File:           f.File,
			PercentCovered: string(f.PercentCovered),
		}
		if file.CoveredLines, err = f.CoveredLines.toInt(); err != nil {
			return nil, fmt.Errorf("parse covered_lines of %s: %w", f.File, err)
		}
		if file.TotalLines, err = f.TotalLines.toInt(); err != nil {
			return nil, fmt.Errorf("parse total_lines of %s: %w", f.File, err)
		}
		report.Files = append(report.Files, file)
	}

	return report, nil
}
