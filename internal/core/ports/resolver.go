// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

// Resolver wraps the external dependency solver. Resolution is treated as a
// black box that is deterministic given the same inputs and solver version.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Resolve produces a lock artifact for one (descriptor, platform) target,
	// or a resolution failure naming the unsatisfiable constraint set.
	// A failure is local to the target; callers resolve other targets
	// independently.
	Resolve(ctx context.Context, desc *domain.Descriptor, platform domain.Platform) (*domain.LockArtifact, error)
}
