package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"github.com/rse-lectures/lockstep/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/rse-lectures/lockstep/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"github.com/rse-lectures/lockstep/internal/engine/orchestrator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			orchestrator.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, orch, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:       application,
				Logger:    log,
				Telemetry: telemetry,
			}, nil
		},
	})
}
