package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no build artifact matches a logical name
	ErrNotFound = errors.New("artifact not found")
	// ErrFailedCommand matches every FailedCommandError
	ErrFailedCommand = errors.New("command failed")
	// ErrNothingToCover is returned when no coverage run could be planned
	ErrNothingToCover = errors.New("no test binaries to collect coverage from")
)

// FailedCommandError is returned when an external process exits non-zero
type FailedCommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *FailedCommandError) Error() string {
	msg := fmt.Sprintf("command failed (exit %d): %s", e.ExitCode, strings.Join(e.Args, " "))
	if diag := strings.TrimSpace(e.Stderr); diag != "" {
		msg += "\n" + diag
	}
	return msg
}

func (e *FailedCommandError) Is(target error) bool { return target == ErrFailedCommand }

func (e *FailedCommandError) Unwrap() error { return e.Err }

// ManifestError is returned when a Cargo.toml cannot be used
type ManifestError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("manifest %s: %s", e.Path, e.Reason)
}

func (e *ManifestError) Unwrap() error { return e.Err }
