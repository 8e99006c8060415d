// Package condalock wraps the conda-lock solver as a Resolver adapter.
package condalock

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.Resolver by invoking the conda-lock CLI.
// The solver is a black box: deterministic for fixed inputs and solver
// version, but not bit-identical across solver upgrades. The version that
// produced each artifact is recorded in its provenance.
type Resolver struct {
	runner  ports.ToolRunner
	logger  ports.Logger
	root    string
	timeout time.Duration

	versionOnce sync.Once
	version     string
}

// NewResolver creates a conda-lock backed Resolver rooted at the workspace
// directory. timeout bounds each solver invocation; zero disables it.
func NewResolver(runner ports.ToolRunner, logger ports.Logger, root string, timeout time.Duration) *Resolver {
	return &Resolver{
		runner:  runner,
		logger:  logger,
		root:    root,
		timeout: timeout,
	}
}

// Resolve produces a lock artifact for one (descriptor, platform) target.
// Composed descriptors pass their file chain parent-first, mirroring how the
// environments compose at install time.
func (r *Resolver) Resolve(ctx context.Context, desc *domain.Descriptor, platform domain.Platform) (*domain.LockArtifact, error) {
	tmp, err := os.CreateTemp("", "lockstep-*.lock")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create solver output file")
	}
	outPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(outPath) }()

	args := []string{"lock"}
	for _, f := range desc.Files() {
		args = append(args, "--file", f)
	}
	args = append(args, "--platform", platform.String(), "--lockfile", outPath)

	r.logger.Info("solving " + desc.Name + " for " + platform.String())

	out, runErr := r.runner.Run(ctx, domain.Command{
		Program: "conda-lock",
		Args:    args,
		Dir:     r.root,
		Timeout: r.timeout,
	})
	if runErr != nil {
		// Infra failures keep their identity so reporting can distinguish
		// "fix the environment" from "fix the pins".
		if errors.Is(runErr, domain.ErrToolMissing) || errors.Is(runErr, domain.ErrToolTimeout) {
			return nil, zerr.With(runErr, "target", desc.Name+"/"+platform.String())
		}
		failed := zerr.With(zerr.Wrap(domain.ErrResolutionFailed, "conda-lock rejected the constraint set"),
			"descriptor", desc.Name)
		failed = zerr.With(failed, "platform", platform.String())
		return nil, zerr.With(failed, "solver_output", strings.TrimSpace(out.Combined()))
	}

	raw, err := os.ReadFile(outPath) //nolint:gosec // temp file created above
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read solver output")
	}

	artifact, err := Parse(raw, platform)
	if err != nil {
		return nil, zerr.With(err, "descriptor", desc.Name)
	}
	artifact.Descriptor = desc.Name
	artifact.LockPrefix = desc.LockPrefix
	artifact.SolverVersion = r.solverVersion(ctx)
	artifact.GeneratedAt = time.Now().UTC()
	return artifact, nil
}

// solverVersion queries `conda-lock --version` once per process.
func (r *Resolver) solverVersion(ctx context.Context) string {
	r.versionOnce.Do(func() {
		out, err := r.runner.Run(ctx, domain.Command{
			Program: "conda-lock",
			Args:    []string{"--version"},
			Timeout: r.timeout,
		})
		if err != nil {
			r.version = "unknown"
			return
		}
		// Output shape: "conda-lock, version 2.5.7"
		fields := strings.Fields(strings.TrimSpace(out.Stdout))
		if len(fields) == 0 {
			r.version = "unknown"
			return
		}
		r.version = fields[len(fields)-1]
	})
	return r.version
}

var _ ports.Resolver = (*Resolver)(nil)
