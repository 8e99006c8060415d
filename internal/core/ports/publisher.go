package ports

import (
	"context"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

// ProposalPublisher surfaces a validated update proposal for human review.
//
//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type ProposalPublisher interface {
	// Publish records the proposal as a reviewable change: a branch holding
	// the new lock artifacts with the rendered validation report attached.
	Publish(ctx context.Context, proposal *domain.UpdateProposal) error
}
