package app

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.trai.ch/zerr"
)

// DefaultSchedule runs the update cycle every Monday at 06:00.
const DefaultSchedule = "0 6 * * 1"

// Schedule runs the full update cycle on the given cron expression until the
// context is cancelled. Each tick is independent: a failing cycle is logged
// and the schedule keeps going, matching manual reruns being idempotent.
func (a *App) Schedule(ctx context.Context, root, spec string) error {
	if spec == "" {
		spec = DefaultSchedule
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		a.logger.Info("scheduled update cycle starting")
		if _, err := a.Update(ctx, root); err != nil {
			a.logger.Error(zerr.Wrap(err, "scheduled update cycle failed"))
			return
		}
		a.logger.Info("scheduled update cycle finished")
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid schedule expression"), "schedule", spec)
	}

	c.Start()
	<-ctx.Done()

	// Let an in-flight cycle finish before returning.
	<-c.Stop().Done()
	return nil
}
