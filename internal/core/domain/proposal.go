package domain

import (
	"fmt"
	"strings"
	"time"
)

// UpdateProposal bundles a fully validated lock artifact set with the
// validation reports that justify it. It is created only when every target in
// the matrix passed, and is superseded by the next successful cycle.
type UpdateProposal struct {
	// Branch is the review branch the proposal is published on.
	Branch string

	// Artifacts is the complete new lock set, one per target.
	Artifacts []*LockArtifact

	// Reports holds the per-target validation reports, in target order.
	Reports []*ValidationReport

	CreatedAt time.Time
}

// NewUpdateProposal builds a proposal with the conventional branch name
// "dep-update/<UTC date>".
func NewUpdateProposal(artifacts []*LockArtifact, reports []*ValidationReport, now time.Time) *UpdateProposal {
	return &UpdateProposal{
		Branch:    "dep-update/" + now.UTC().Format("2006-01-02"),
		Artifacts: artifacts,
		Reports:   reports,
		CreatedAt: now,
	}
}

// Summary renders the commit message body: one line per artifact plus the
// rendered validation report per target.
func (p *UpdateProposal) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Update dependency lock files (%d targets)\n\n", len(p.Artifacts))
	for _, a := range p.Artifacts {
		fmt.Fprintf(&b, "  %s: %d packages (conda-lock %s)\n", a.Filename(), len(a.Packages), a.SolverVersion)
	}
	if len(p.Reports) > 0 {
		b.WriteString("\nValidation:\n")
		for _, r := range p.Reports {
			b.WriteString(r.Render())
		}
	}
	return b.String()
}
