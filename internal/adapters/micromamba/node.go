package micromamba

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/adapters/shell"
	"github.com/rse-lectures/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the environment manager Graft node.
const NodeID graft.ID = "adapter.environment_manager"

// DefaultTimeout bounds environment creation and removal.
const DefaultTimeout = 30 * time.Minute

func init() {
	graft.Register(graft.Node[ports.EnvironmentManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentManager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(runner, log, ".", DefaultTimeout), nil
		},
	})
}
