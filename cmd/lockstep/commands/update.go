package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	var platforms []string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Run the full update cycle: resolve, validate, publish",
		Long: "Resolves every (descriptor, platform) target, validates each " +
			"candidate lock artifact, and only if every target passes persists " +
			"the new lock set and publishes an update proposal branch. A single " +
			"failure leaves the previous lock set untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cycle, err := c.app.Update(cmd.Context(), ".", platforms...)
			c.printCycle(cmd, cycle)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil,
		"Restrict the run to these platforms instead of the workspace matrix (e.g. linux-64,osx-arm64)")
	return cmd
}
