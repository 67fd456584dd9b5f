// Package runner executes shell commands for the test stage.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// DefaultTimeout bounds a single setup or test command.
const DefaultTimeout = 600 * time.Second

// ErrTimeout is returned when a command exceeds its time limit.
var ErrTimeout = errors.New("command timed out")

// ShellRunner implements domain.CommandRunner with `sh -c`.
type ShellRunner struct {
	dir     string
	timeout time.Duration
}

// New returns a runner that executes commands in dir.
func New(dir string) *ShellRunner {
	return &ShellRunner{dir: dir, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of r with a different per-command limit.
func (r *ShellRunner) WithTimeout(d time.Duration) *ShellRunner {
	out := *r
	out.timeout = d
	return &out
}

// Run executes command and captures its output. A non-zero exit status is
// reported through ExitCode, not as an error; errors mean the command could
// not be started or did not finish in time.
func (r *ShellRunner) Run(ctx context.Context, command string) (domain.CommandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second

	slog.Debug("running command", "command", command, "dir", r.dir)
	start := time.Now()
	err := cmd.Run()
	result := domain.CommandResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		return result, fmt.Errorf("%w after %s: %s", ErrTimeout, r.timeout, command)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return result, fmt.Errorf("running %q: %w", command, err)
	}
	return result, nil
}
