package pipeline

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/internal/adapters/config"
	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/adapters/micromamba"
	"github.com/rse-lectures/lockstep/internal/adapters/telemetry/progrock"
	"github.com/rse-lectures/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the validation pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

// DefaultStageTimeout bounds a single tool invocation inside the pipeline.
// Notebook execution dominates; an hour covers the slowest lecture by a wide
// margin.
const DefaultStageTimeout = time.Hour

func init() {
	graft.Register(graft.Node[ports.Validator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID, micromamba.NodeID, progrock.NodeID},
		Run: func(ctx context.Context) (ports.Validator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			envs, err := graft.Dep[ports.EnvironmentManager](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			ws, err := loader.Load(".")
			if err != nil {
				return nil, err
			}
			return NewRunner(envs, log, telemetry, ws.Root, ws.LectureGlob, DefaultStageTimeout), nil
		},
	})
}
