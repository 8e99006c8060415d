package gitrepo

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the proposal publisher Graft node.
const NodeID graft.ID = "adapter.proposal_publisher"

func init() {
	graft.Register(graft.Node[ports.ProposalPublisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProposalPublisher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPublisher(".", log), nil
		},
	})
}
