package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"rustcov/internal/domain"
)

// Command is one external process invocation
type Command struct {
	Args []string // Program followed by its arguments
	Env  []string // KEY=VALUE pairs applied on top of the current environment
	Dir  string   // Working directory, empty for the current one
}

// String returns the command line as it would be typed
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// CommandRunner runs external commands to completion
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// Runner executes commands with os/exec. Stdout is forwarded, stderr is
// captured and attached to the error when the command fails.
type Runner struct {
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a new Runner. A nil stdout discards the output. When
// echo is non-nil, stderr is copied to it while the command runs.
func NewRunner(log *slog.Logger, stdout, echo io.Writer) *Runner {
	if stdout == nil {
		stdout = io.Discard
	}
	return &Runner{log: log, stdout: stdout, stderr: echo}
}

// Run executes cmd and waits for it. A non-zero exit, or a failure to start
// the process, is returned as *domain.FailedCommandError.
func (r *Runner) Run(ctx context.Context, c Command) error {
	if len(c.Args) == 0 {
		return errors.New("empty command")
	}

	r.log.Debug("running command",
		slog.String("cmd", c.String()),
		slog.String("dir", c.Dir),
		slog.Any("env", c.Env),
	)

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stdout = r.stdout
	if r.stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.stderr)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err == nil {
		r.log.Debug("command finished", slog.String("cmd", c.Args[0]))
		return nil
	}

	failed := &domain.FailedCommandError{
		Args:     c.Args,
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		failed.ExitCode = exitErr.ExitCode()
	} else if failed.Stderr == "" {
		failed.Stderr = err.Error()
	}

	r.log.Debug("command failed", slog.String("cmd", c.Args[0]), slog.Int("exit", failed.ExitCode))
	return failed
}
