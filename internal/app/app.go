// Package app implements the application layer for lockstep.
package app

import (
	"context"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"github.com/rse-lectures/lockstep/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App ties the workspace loader to the update orchestrator. It is the unit
// the CLI commands call into.
type App struct {
	loader ports.ConfigLoader
	orch   *orchestrator.Orchestrator
	logger ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, orch *orchestrator.Orchestrator, logger ports.Logger) *App {
	return &App{
		loader: loader,
		orch:   orch,
		logger: logger,
	}
}

// Test validates every descriptor in the workspace against the current
// constraints without producing lock artifacts.
func (a *App) Test(ctx context.Context, root string) (*domain.CycleResult, error) {
	ws, err := a.load(root, nil)
	if err != nil {
		return nil, err
	}
	return a.orch.Test(ctx, ws)
}

// Lock resolves the target matrix and persists the lock artifact set without
// validating it. An explicit platform list narrows the matrix for ad-hoc
// partial runs.
func (a *App) Lock(ctx context.Context, root string, platforms ...string) (*domain.CycleResult, error) {
	ws, err := a.load(root, platforms)
	if err != nil {
		return nil, err
	}
	return a.orch.Lock(ctx, ws)
}

// Update runs the complete cycle: resolve, validate, and on all-pass persist
// the new lock set and publish an update proposal. An explicit platform list
// narrows the matrix for ad-hoc partial runs.
func (a *App) Update(ctx context.Context, root string, platforms ...string) (*domain.CycleResult, error) {
	ws, err := a.load(root, platforms)
	if err != nil {
		return nil, err
	}
	return a.orch.Update(ctx, ws)
}

// load reads the workspace manifest and applies the optional platform
// override on top of the declared matrix.
func (a *App) load(root string, platforms []string) (*domain.Workspace, error) {
	ws, err := a.loader.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load workspace")
	}
	if len(platforms) > 0 {
		matrix := make([]domain.Platform, 0, len(platforms))
		for _, s := range platforms {
			p, err := domain.ParsePlatform(s)
			if err != nil {
				return nil, zerr.Wrap(err, "invalid platform override")
			}
			matrix = append(matrix, p)
		}
		ws.Platforms = matrix
	}
	return ws, nil
}
