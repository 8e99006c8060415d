package commands

import (
	"fmt"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Validate every descriptor against the current constraints",
		Long: "Creates a throwaway environment per descriptor and runs the " +
			"validation pipeline (lint, syntax, convert, execute) against it. " +
			"No lock artifacts are produced.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cycle, err := c.app.Test(cmd.Context(), ".")
			c.printCycle(cmd, cycle)
			return err
		},
	}
}

// printCycle renders the per-target record. The failing stage and target, if
// any, are identifiable from this output alone.
func (c *CLI) printCycle(cmd *cobra.Command, cycle *domain.CycleResult) {
	if cycle == nil {
		return
	}
	out := cmd.OutOrStdout()
	for _, r := range cycle.Results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(out, "%s: FAIL: %v\n", r.Target.ID(), r.Err)
		case r.Report != nil:
			fmt.Fprint(out, r.Report.Render())
		default:
			fmt.Fprintf(out, "%s: ok\n", r.Target.ID())
		}
	}
	if cycle.NoOp {
		fmt.Fprintln(out, "lock set unchanged, no proposal published")
	}
	if cycle.Proposal != nil {
		fmt.Fprintf(out, "proposal published on %s\n", cycle.Proposal.Branch)
	}
}
