package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	var platforms []string
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve all targets and write lock files without validation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cycle, err := c.app.Lock(cmd.Context(), ".", platforms...)
			c.printCycle(cmd, cycle)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil,
		"Restrict the run to these platforms instead of the workspace matrix (e.g. linux-64,osx-arm64)")
	return cmd
}
