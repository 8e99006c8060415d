package lockstore

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the lock store Graft node.
const NodeID graft.ID = "adapter.lock_store"

// DefaultLockDir holds the generation index, relative to the workspace root.
const DefaultLockDir = "locks"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.LockStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(".", DefaultLockDir, log), nil
		},
	})
}
