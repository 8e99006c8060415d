package ports

import (
	"context"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

// Validator runs the fixed check pipeline (lint, syntax, convert, execute)
// against a candidate environment.
//
// A failing stage is reported inside the ValidationReport, not as an error;
// the error return is reserved for conditions where no report could be
// produced at all.
//
//go:generate go run go.uber.org/mock/mockgen -source=validator.go -destination=mocks/mock_validator.go -package=mocks
type Validator interface {
	// ValidateArtifact instantiates an environment from the lock artifact and
	// runs the pipeline against it.
	ValidateArtifact(ctx context.Context, target domain.Target, artifact *domain.LockArtifact) (*domain.ValidationReport, error)

	// ValidateDescriptor instantiates an environment directly from the
	// descriptor (test-only operation, no artifacts involved).
	ValidateDescriptor(ctx context.Context, desc *domain.Descriptor) (*domain.ValidationReport, error)
}
