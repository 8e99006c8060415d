package domain

import (
	"fmt"
	"strings"
)

// TargetResult is the per-target outcome of one update cycle: the candidate
// artifact (if resolution succeeded), the validation report (if validation
// ran) and the terminal error, if any.
type TargetResult struct {
	Target   Target
	Artifact *LockArtifact
	Report   *ValidationReport
	Err      error
}

// Failed reports whether this target blocks the update proposal.
func (r TargetResult) Failed() bool {
	if r.Err != nil {
		return true
	}
	return r.Report != nil && !r.Report.Passed()
}

// CycleResult aggregates one full update cycle across the target matrix.
type CycleResult struct {
	Results []TargetResult

	// Proposal is non-nil only when every target passed and the candidate set
	// differed from the current one.
	Proposal *UpdateProposal

	// NoOp is true when every target passed but the candidate set was
	// identical to the persisted one, so no proposal was published.
	NoOp bool
}

// AllPassed reports whether every target resolved and validated.
func (c *CycleResult) AllPassed() bool {
	for _, r := range c.Results {
		if r.Failed() {
			return false
		}
	}
	return true
}

// Diagnostics renders the maintainer-facing record of what failed where.
// Empty when all targets passed.
func (c *CycleResult) Diagnostics() string {
	var b strings.Builder
	for _, r := range c.Results {
		if !r.Failed() {
			continue
		}
		if r.Err != nil {
			fmt.Fprintf(&b, "%s: %v\n", r.Target.ID(), r.Err)
		}
		if r.Report != nil && !r.Report.Passed() {
			b.WriteString(r.Report.Render())
		}
	}
	return b.String()
}
