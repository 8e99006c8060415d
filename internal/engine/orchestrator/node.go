package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/condalock"
	"github.com/rse-lectures/lockstep/internal/adapters/gitrepo"
	"github.com/rse-lectures/lockstep/internal/adapters/lockstore"
	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/adapters/telemetry/progrock"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"github.com/rse-lectures/lockstep/internal/engine/pipeline"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			condalock.NodeID,
			pipeline.NodeID,
			lockstore.NodeID,
			gitrepo.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			validator, err := graft.Dep[ports.Validator](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			publisher, err := graft.Dep[ports.ProposalPublisher](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(Params{
				Resolver:  resolver,
				Validator: validator,
				Store:     store,
				Publisher: publisher,
				Logger:    log,
				Telemetry: telemetry,
			}), nil
		},
	})
}
