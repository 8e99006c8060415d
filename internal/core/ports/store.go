package ports

import "github.com/rse-lectures/lockstep/internal/core/domain"

// LockStore owns the persisted lock artifact set. It is single-writer: only
// the orchestrator writes, and only after the atomic all-pass decision.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockStore interface {
	// Persist replaces the current artifact set with the given one as a
	// single generation: readers observe either the previous complete set or
	// the new complete set, never a mix.
	Persist(artifacts []*domain.LockArtifact) error

	// CurrentDigest returns the digest of the persisted set, or the empty
	// string when no set has been persisted yet.
	CurrentDigest() (string, error)
}
