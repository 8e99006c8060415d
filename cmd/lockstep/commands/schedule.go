package commands

import (
	"github.com/rse-lectures/lockstep/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newScheduleCmd() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the update cycle on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Schedule(cmd.Context(), ".", spec)
		},
	}
	cmd.Flags().StringVar(&spec, "cron", app.DefaultSchedule, "Cron expression for the update cycle")
	return cmd
}
