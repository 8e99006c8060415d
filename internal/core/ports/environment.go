package ports

import (
	"context"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

// EnvironmentManager creates, uses and destroys throwaway package
// environments. Implementations delegate to an external environment tool
// (micromamba); environments are never reused across validation runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentManager interface {
	// CreateFromDescriptor materialises an environment from the descriptor's
	// file chain (parent first).
	CreateFromDescriptor(ctx context.Context, name string, desc *domain.Descriptor) error

	// CreateFromLock materialises an environment from a pinned lock artifact.
	// Installing from the same artifact must yield the identical closure.
	CreateFromLock(ctx context.Context, name string, artifact *domain.LockArtifact) error

	// Run executes a command inside the named environment.
	Run(ctx context.Context, name string, cmd domain.Command) (domain.CommandOutput, error)

	// Remove destroys the named environment. Removal of a missing environment
	// is not an error.
	Remove(ctx context.Context, name string) error
}
