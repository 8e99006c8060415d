package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("lectures\n"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "a", Email: "a@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return root, repo
}

func TestPublishCommitsArtifactsOnBranch(t *testing.T) {
	root, repo := initRepo(t)

	artifact := &domain.LockArtifact{
		Descriptor: "base",
		Platform:   domain.PlatformLinux64,
		LockPrefix: "environment",
		Raw:        []byte("version: 1\n"),
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, artifact.Filename()), artifact.Raw, 0o644))

	proposal := domain.NewUpdateProposal(
		[]*domain.LockArtifact{artifact}, nil,
		time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	)

	p := NewPublisher(root, nopLogger{})
	require.NoError(t, p.Publish(context.Background(), proposal))

	ref, err := repo.Reference(plumbing.NewBranchReferenceName("dep-update/2026-03-02"), true)
	require.NoError(t, err)

	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	require.Contains(t, commit.Message, "Update dependency lock files (1 targets)")
	require.Contains(t, commit.Message, "environment-linux-64.lock")

	tree, err := commit.Tree()
	require.NoError(t, err)
	f, err := tree.File("environment-linux-64.lock")
	require.NoError(t, err)
	content, err := f.Contents()
	require.NoError(t, err)
	require.Equal(t, "version: 1\n", content)
}

func TestPublishReusesBranchOnRerun(t *testing.T) {
	root, repo := initRepo(t)

	artifact := &domain.LockArtifact{
		Descriptor: "base",
		Platform:   domain.PlatformLinux64,
		LockPrefix: "environment",
		Raw:        []byte("version: 1\n"),
	}
	when := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	p := NewPublisher(root, nopLogger{})

	require.NoError(t, os.WriteFile(filepath.Join(root, artifact.Filename()), artifact.Raw, 0o644))
	require.NoError(t, p.Publish(context.Background(), domain.NewUpdateProposal([]*domain.LockArtifact{artifact}, nil, when)))

	updated := &domain.LockArtifact{
		Descriptor: "base",
		Platform:   domain.PlatformLinux64,
		LockPrefix: "environment",
		Raw:        []byte("version: 2\n"),
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, updated.Filename()), updated.Raw, 0o644))
	require.NoError(t, p.Publish(context.Background(), domain.NewUpdateProposal([]*domain.LockArtifact{updated}, nil, when)))

	ref, err := repo.Reference(plumbing.NewBranchReferenceName("dep-update/2026-03-02"), true)
	require.NoError(t, err)
	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)
	f, err := tree.File("environment-linux-64.lock")
	require.NoError(t, err)
	content, err := f.Contents()
	require.NoError(t, err)
	require.Equal(t, "version: 2\n", content)
}

func TestPublishRestoresOriginalBranch(t *testing.T) {
	root, repo := initRepo(t)

	before, err := repo.Head()
	require.NoError(t, err)
	require.True(t, before.Name().IsBranch())

	artifact := &domain.LockArtifact{
		Descriptor: "base",
		Platform:   domain.PlatformLinux64,
		LockPrefix: "environment",
		Raw:        []byte("version: 1\n"),
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, artifact.Filename()), artifact.Raw, 0o644))

	p := NewPublisher(root, nopLogger{})
	proposal := domain.NewUpdateProposal(
		[]*domain.LockArtifact{artifact}, nil,
		time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, p.Publish(context.Background(), proposal))

	// The worktree is back on the starting branch, so a later cycle branches
	// from the mainline instead of chaining onto this proposal.
	after, err := repo.Head()
	require.NoError(t, err)
	require.Equal(t, before.Name(), after.Name())
	require.Equal(t, before.Hash(), after.Hash())

	// The persisted lock file survives the switch back.
	content, err := os.ReadFile(filepath.Join(root, artifact.Filename()))
	require.NoError(t, err)
	require.Equal(t, "version: 1\n", string(content))
}

func TestPublishFailsOutsideRepository(t *testing.T) {
	p := NewPublisher(t.TempDir(), nopLogger{})
	err := p.Publish(context.Background(), domain.NewUpdateProposal(nil, nil, time.Now()))
	require.Error(t, err)
}

type nopLogger struct{}

func (nopLogger) Info(msg string) {}
func (nopLogger) Warn(msg string) {}
func (nopLogger) Error(err error) {}
