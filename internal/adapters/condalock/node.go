package condalock

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/adapters/shell"
	"github.com/rse-lectures/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the conda-lock resolver Graft node.
const NodeID graft.ID = "adapter.resolver"

// DefaultTimeout bounds a single solve. Solves for a cold cache routinely
// take minutes; anything beyond this is treated as a hung solver.
const DefaultTimeout = 30 * time.Minute

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(runner, log, ".", DefaultTimeout), nil
		},
	})
}
