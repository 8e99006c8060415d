// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/rse-lectures/lockstep/internal/adapters/condalock"
	_ "github.com/rse-lectures/lockstep/internal/adapters/config"
	_ "github.com/rse-lectures/lockstep/internal/adapters/gitrepo"
	_ "github.com/rse-lectures/lockstep/internal/adapters/lockstore"
	_ "github.com/rse-lectures/lockstep/internal/adapters/logger"
	_ "github.com/rse-lectures/lockstep/internal/adapters/micromamba"
	_ "github.com/rse-lectures/lockstep/internal/adapters/shell"
	_ "github.com/rse-lectures/lockstep/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/rse-lectures/lockstep/internal/app"
	_ "github.com/rse-lectures/lockstep/internal/engine/orchestrator"
	_ "github.com/rse-lectures/lockstep/internal/engine/pipeline"
)
