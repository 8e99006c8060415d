package ports

import "github.com/rse-lectures/lockstep/internal/core/domain"

// ConfigLoader loads the workspace manifest and its environment descriptors.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given workspace root, resolves
	// descriptor inheritance and validates every constraint entry. Malformed
	// descriptors are rejected here, before any resolution is attempted.
	Load(root string) (*domain.Workspace, error)
}
