package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testWorkspace() *domain.Workspace {
	return &domain.Workspace{
		Root: ".",
		Descriptors: []*domain.Descriptor{
			{Name: "base", Path: "environment.yml", LockPrefix: "environment"},
			{Name: "lecture_01", Path: "lecture_01/environment.yml", LockPrefix: "lecture_01/environment"},
		},
		Platforms:   []domain.Platform{domain.PlatformLinux64, domain.PlatformOSXArm64},
		LectureGlob: "lecture_*/lecture_*.py",
		LockDir:     "locks",
	}
}

func passingReport(subject string) *domain.ValidationReport {
	r := &domain.ValidationReport{Subject: subject, StartedAt: time.Now(), FinishedAt: time.Now()}
	for _, s := range domain.Stages() {
		r.Stages = append(r.Stages, domain.StageResult{Stage: s, Passed: true})
	}
	return r
}

func failingReport(subject string) *domain.ValidationReport {
	return &domain.ValidationReport{
		Subject:    subject,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Stages: []domain.StageResult{
			{Stage: domain.StageLint, Passed: true},
			{Stage: domain.StageSyntax, Class: domain.FailureLogic, Detail: "lecture_01/lecture_01.py"},
		},
	}
}

func artifactFor(target domain.Target, raw string) *domain.LockArtifact {
	return &domain.LockArtifact{
		Descriptor: target.Descriptor.Name,
		Platform:   target.Platform,
		LockPrefix: target.Descriptor.LockPrefix,
		Raw:        []byte(raw + "-" + target.ID()),
	}
}

type deps struct {
	resolver  *mocks.MockResolver
	validator *mocks.MockValidator
	store     *mocks.MockLockStore
	publisher *mocks.MockProposalPublisher
}

func newOrchestrator(t *testing.T) (*Orchestrator, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := deps{
		resolver:  mocks.NewMockResolver(ctrl),
		validator: mocks.NewMockValidator(ctrl),
		store:     mocks.NewMockLockStore(ctrl),
		publisher: mocks.NewMockProposalPublisher(ctrl),
	}
	o := New(Params{
		Resolver:  d.resolver,
		Validator: d.validator,
		Store:     d.store,
		Publisher: d.publisher,
		Logger:    nopLogger{},
		Now:       func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) },
	})
	return o, d
}

func expectResolveAll(d deps, ws *domain.Workspace) {
	for _, target := range ws.Targets() {
		d.resolver.EXPECT().
			Resolve(gomock.Any(), target.Descriptor, target.Platform).
			Return(artifactFor(target, "v1"), nil)
	}
}

func TestUpdateAllPassPublishesProposal(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	expectResolveAll(d, ws)
	d.validator.EXPECT().
		ValidateArtifact(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target domain.Target, _ *domain.LockArtifact) (*domain.ValidationReport, error) {
			return passingReport(target.ID()), nil
		}).
		Times(4)
	d.store.EXPECT().CurrentDigest().Return("", nil)
	d.store.EXPECT().Persist(gomock.Any()).
		DoAndReturn(func(artifacts []*domain.LockArtifact) error {
			require.Len(t, artifacts, 4)
			return nil
		})
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.UpdateProposal) error {
			require.Equal(t, "dep-update/2026-03-02", p.Branch)
			require.Len(t, p.Artifacts, 4)
			require.Len(t, p.Reports, 4)
			return nil
		})

	cycle, err := o.Update(context.Background(), ws)
	require.NoError(t, err)
	require.True(t, cycle.AllPassed())
	require.NotNil(t, cycle.Proposal)
	require.False(t, cycle.NoOp)
}

func TestUpdateSingleFailureBlocksAllWrites(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	expectResolveAll(d, ws)
	d.validator.EXPECT().
		ValidateArtifact(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target domain.Target, _ *domain.LockArtifact) (*domain.ValidationReport, error) {
			if target.ID() == "lecture_01/osx-arm64" {
				return failingReport(target.ID()), nil
			}
			return passingReport(target.ID()), nil
		}).
		Times(4)
	// No Persist, no Publish, no digest read.

	cycle, err := o.Update(context.Background(), ws)
	require.ErrorIs(t, err, domain.ErrCycleFailed)
	require.False(t, cycle.AllPassed())
	require.Nil(t, cycle.Proposal)
	require.Contains(t, cycle.Diagnostics(), "lecture_01/osx-arm64")
}

func TestUpdateResolutionFailureIsPerTarget(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	validated := 0
	for _, target := range ws.Targets() {
		if target.ID() == "base/osx-arm64" {
			d.resolver.EXPECT().
				Resolve(gomock.Any(), target.Descriptor, target.Platform).
				Return(nil, domain.ErrResolutionFailed)
			continue
		}
		d.resolver.EXPECT().
			Resolve(gomock.Any(), target.Descriptor, target.Platform).
			Return(artifactFor(target, "v1"), nil)
	}
	d.validator.EXPECT().
		ValidateArtifact(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target domain.Target, _ *domain.LockArtifact) (*domain.ValidationReport, error) {
			validated++
			return passingReport(target.ID()), nil
		}).
		Times(3)

	cycle, err := o.Update(context.Background(), ws)
	require.ErrorIs(t, err, domain.ErrCycleFailed)
	// The failing target is excluded but every other target still completed.
	require.Equal(t, 3, validated)
	require.Len(t, cycle.Results, 4)
}

func TestUpdateUnchangedSetIsNoOp(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	artifacts := make([]*domain.LockArtifact, 0, 4)
	for _, target := range ws.Targets() {
		artifacts = append(artifacts, artifactFor(target, "v1"))
	}
	expectResolveAll(d, ws)
	d.validator.EXPECT().
		ValidateArtifact(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target domain.Target, _ *domain.LockArtifact) (*domain.ValidationReport, error) {
			return passingReport(target.ID()), nil
		}).
		Times(4)
	d.store.EXPECT().CurrentDigest().Return(domain.ArtifactSetDigest(artifacts), nil)
	// No Persist, no Publish.

	cycle, err := o.Update(context.Background(), ws)
	require.NoError(t, err)
	require.True(t, cycle.NoOp)
	require.Nil(t, cycle.Proposal)
}

func TestUpdateEmptyWorkspace(t *testing.T) {
	o, _ := newOrchestrator(t)
	_, err := o.Update(context.Background(), &domain.Workspace{})
	require.ErrorIs(t, err, domain.ErrNoDescriptors)
}

func TestLockPersistsWithoutValidation(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	expectResolveAll(d, ws)
	d.store.EXPECT().Persist(gomock.Any()).
		DoAndReturn(func(artifacts []*domain.LockArtifact) error {
			require.Len(t, artifacts, 4)
			return nil
		})

	cycle, err := o.Lock(context.Background(), ws)
	require.NoError(t, err)
	require.True(t, cycle.AllPassed())
}

func TestLockFailureBlocksPersist(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	for i, target := range ws.Targets() {
		if i == 0 {
			d.resolver.EXPECT().
				Resolve(gomock.Any(), target.Descriptor, target.Platform).
				Return(nil, domain.ErrResolutionFailed)
			continue
		}
		d.resolver.EXPECT().
			Resolve(gomock.Any(), target.Descriptor, target.Platform).
			Return(artifactFor(target, "v1"), nil)
	}

	_, err := o.Lock(context.Background(), ws)
	require.ErrorIs(t, err, domain.ErrCycleFailed)
}

func TestTestValidatesEachDescriptor(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	for _, desc := range ws.Descriptors {
		d.validator.EXPECT().
			ValidateDescriptor(gomock.Any(), desc).
			Return(passingReport(desc.Name), nil)
	}

	cycle, err := o.Test(context.Background(), ws)
	require.NoError(t, err)
	require.True(t, cycle.AllPassed())
	require.Len(t, cycle.Results, 2)
}

func TestTestFailingDescriptorReturnsError(t *testing.T) {
	o, d := newOrchestrator(t)
	ws := testWorkspace()

	d.validator.EXPECT().ValidateDescriptor(gomock.Any(), ws.Descriptors[0]).
		Return(passingReport("base"), nil)
	d.validator.EXPECT().ValidateDescriptor(gomock.Any(), ws.Descriptors[1]).
		Return(failingReport("lecture_01"), nil)

	cycle, err := o.Test(context.Background(), ws)
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	require.Contains(t, cycle.Diagnostics(), "lecture_01")
}

type nopLogger struct{}

func (nopLogger) Info(msg string) {}
func (nopLogger) Warn(msg string) {}
func (nopLogger) Error(err error) {}
