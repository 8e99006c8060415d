// Package micromamba manages throwaway conda environments through the
// micromamba CLI.
package micromamba

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.EnvironmentManager on top of micromamba.
// Environments are identified by name only; micromamba owns their location.
type Manager struct {
	runner  ports.ToolRunner
	logger  ports.Logger
	root    string
	timeout time.Duration
}

// NewManager creates a micromamba-backed environment manager rooted at the
// workspace directory. timeout bounds each create/remove invocation; commands
// executed via Run carry their own timeout.
func NewManager(runner ports.ToolRunner, logger ports.Logger, root string, timeout time.Duration) *Manager {
	return &Manager{
		runner:  runner,
		logger:  logger,
		root:    root,
		timeout: timeout,
	}
}

// CreateFromDescriptor builds an environment from the descriptor's file
// chain, letting the solver pick versions within the declared constraints.
func (m *Manager) CreateFromDescriptor(ctx context.Context, name string, desc *domain.Descriptor) error {
	args := []string{"create", "-n", name}
	for _, f := range desc.Files() {
		args = append(args, "-f", f)
	}
	args = append(args, "-y")
	return m.create(ctx, name, args)
}

// CreateFromLock builds an environment from a pinned lock artifact. The raw
// lockfile is written to a temporary file because micromamba only accepts
// file inputs.
func (m *Manager) CreateFromLock(ctx context.Context, name string, artifact *domain.LockArtifact) error {
	tmp, err := os.CreateTemp("", "lockstep-env-*.lock")
	if err != nil {
		return zerr.Wrap(err, "failed to stage lock artifact")
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := tmp.Write(artifact.Raw); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to stage lock artifact")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to stage lock artifact")
	}

	return m.create(ctx, name, []string{"create", "-n", name, "-f", path, "-y"})
}

func (m *Manager) create(ctx context.Context, name string, args []string) error {
	m.logger.Info("creating environment " + name)
	out, err := m.runner.Run(ctx, domain.Command{
		Program: "micromamba",
		Args:    args,
		Dir:     m.root,
		Timeout: m.timeout,
	})
	if err != nil {
		if errors.Is(err, domain.ErrToolMissing) || errors.Is(err, domain.ErrToolTimeout) {
			return zerr.With(err, "environment", name)
		}
		failed := zerr.With(zerr.Wrap(err, "failed to create environment"), "environment", name)
		return zerr.With(failed, "output", out.Combined())
	}
	return nil
}

// Run executes a command inside the named environment via `micromamba run`.
// The command's own program and arguments are passed through unchanged, so
// failure semantics (exit code, captured output) are those of the wrapped
// tool.
func (m *Manager) Run(ctx context.Context, name string, cmd domain.Command) (domain.CommandOutput, error) {
	args := append([]string{"run", "-n", name, cmd.Program}, cmd.Args...)
	dir := cmd.Dir
	if dir == "" {
		dir = m.root
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.root, dir)
	}
	return m.runner.Run(ctx, domain.Command{
		Program: "micromamba",
		Args:    args,
		Dir:     dir,
		Timeout: cmd.Timeout,
	})
}

// Remove destroys the named environment. Micromamba exits nonzero for a
// missing environment; that case is swallowed so cleanup stays idempotent.
func (m *Manager) Remove(ctx context.Context, name string) error {
	out, err := m.runner.Run(ctx, domain.Command{
		Program: "micromamba",
		Args:    []string{"env", "remove", "-n", name, "-y"},
		Dir:     m.root,
		Timeout: m.timeout,
	})
	if err != nil {
		if errors.Is(err, domain.ErrToolMissing) || errors.Is(err, domain.ErrToolTimeout) {
			return zerr.With(err, "environment", name)
		}
		m.logger.Warn("environment removal for " + name + " reported: " + out.Combined())
		return nil
	}
	return nil
}

var _ ports.EnvironmentManager = (*Manager)(nil)
