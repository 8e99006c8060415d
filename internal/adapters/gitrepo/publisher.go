// Package gitrepo publishes update proposals as review branches in the
// workspace git repository.
package gitrepo

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Publisher implements ports.ProposalPublisher on a local git worktree. It
// creates (or resets) the proposal branch from HEAD, stages the new lock
// files and commits them with the rendered validation summary. Pushing and
// opening the review request stay with the hosting integration.
type Publisher struct {
	root   string
	logger ports.Logger
}

// NewPublisher creates a publisher rooted at the workspace git repository.
func NewPublisher(root string, logger ports.Logger) *Publisher {
	return &Publisher{
		root:   root,
		logger: logger,
	}
}

// Publish commits the proposal's lock artifacts on its branch. The worktree
// must already hold the new lock files; Publish stages exactly those paths so
// unrelated local changes stay out of the proposal.
func (p *Publisher) Publish(ctx context.Context, proposal *domain.UpdateProposal) error {
	repo, err := git.PlainOpen(p.root)
	if err != nil {
		return zerr.Wrap(err, "failed to open workspace repository")
	}
	wt, err := repo.Worktree()
	if err != nil {
		return zerr.Wrap(err, "failed to open worktree")
	}

	head, err := repo.Head()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve HEAD")
	}

	// Point the proposal branch at HEAD, creating it if missing. A rerun on
	// the same day resets and reuses the branch.
	branch := plumbing.NewBranchReferenceName(proposal.Branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(branch, head.Hash())); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create proposal branch"), "branch", proposal.Branch)
	}

	// Keep preserves the not-yet-committed lock files across the switch.
	err = wt.Checkout(&git.CheckoutOptions{Branch: branch, Keep: true})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to check out proposal branch"), "branch", proposal.Branch)
	}

	for _, a := range proposal.Artifacts {
		if _, err := wt.Add(a.Filename()); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stage lock artifact"), "file", a.Filename())
		}
	}

	when := proposal.CreatedAt
	if when.IsZero() {
		when = time.Now()
	}
	commit, err := wt.Commit(proposal.Summary(), &git.CommitOptions{
		Author: &object.Signature{
			Name:  "lockstep",
			Email: "lockstep@rse-lectures.invalid",
			When:  when,
		},
	})
	if err != nil {
		return zerr.Wrap(err, "failed to commit proposal")
	}

	// Return to the starting reference so the next cycle branches from the
	// mainline, not from this proposal. Keep leaves the persisted lock files
	// on disk untouched; they stay in sync with the lock store index.
	restore := &git.CheckoutOptions{Keep: true}
	if head.Name().IsBranch() {
		restore.Branch = head.Name()
	} else {
		restore.Hash = head.Hash()
	}
	if err := wt.Checkout(restore); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to restore original branch"), "reference", head.Name().String())
	}

	p.logger.Info("published proposal " + proposal.Branch + " at " + commit.String())
	return nil
}

var _ ports.ProposalPublisher = (*Publisher)(nil)
