// Package shell provides the external tool runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.ToolRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new shell Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the command, capturing stdout and stderr. The captured output
// is returned even when the command fails, so callers can embed it in
// validation reports.
//
// Error classification:
//   - missing binary wraps domain.ErrToolMissing
//   - context deadline wraps domain.ErrToolTimeout
//   - nonzero exit wraps the exec error with exit_code and stderr metadata
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.CommandOutput, error) {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	r.logger.Info("running: " + cmd.Program + " " + strings.Join(cmd.Args, " "))

	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...) //nolint:gosec // commands are assembled from trusted adapters
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	runErr := execCmd.Run()
	out := domain.CommandOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr == nil {
		return out, nil
	}

	// Deadline beats exit status: a killed process reports an opaque exit
	// code, the context error is the real cause.
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		timeoutErr := zerr.With(domain.ErrToolTimeout, "program", cmd.Program)
		out.ExitCode = -1
		return out, zerr.With(timeoutErr, "timeout", cmd.Timeout.String())
	}

	if errors.Is(runErr, exec.ErrNotFound) {
		out.ExitCode = -1
		return out, zerr.With(domain.ErrToolMissing, "program", cmd.Program)
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		wrapped := zerr.With(zerr.Wrap(runErr, "command failed"), "program", cmd.Program)
		wrapped = zerr.With(wrapped, "exit_code", out.ExitCode)
		return out, zerr.With(wrapped, "stderr", strings.TrimSpace(out.Stderr))
	}

	out.ExitCode = -1
	return out, zerr.With(zerr.Wrap(runErr, "command failed"), "program", cmd.Program)
}

var _ ports.ToolRunner = (*Runner)(nil)
