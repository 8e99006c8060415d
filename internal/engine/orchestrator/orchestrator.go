// Package orchestrator drives the dependency update cycle: resolve every
// target, validate every candidate, and publish the new lock set only when
// everything passed.
package orchestrator

import (
	"context"
	"runtime"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Params bundles the orchestrator's collaborators.
type Params struct {
	Resolver  ports.Resolver
	Validator ports.Validator
	Store     ports.LockStore
	Publisher ports.ProposalPublisher
	Logger    ports.Logger
	Telemetry ports.Telemetry

	// Concurrency bounds the number of targets in flight. Zero means one
	// worker per CPU.
	Concurrency int

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

// Orchestrator implements the update cycle. Targets run independently; the
// persisted lock set and the proposal are written only after every target
// passed, so readers never observe a partially updated set.
type Orchestrator struct {
	resolver    ports.Resolver
	validator   ports.Validator
	store       ports.LockStore
	publisher   ports.ProposalPublisher
	logger      ports.Logger
	telemetry   ports.Telemetry
	concurrency int
	now         func() time.Time
}

// New creates an Orchestrator from its collaborators.
func New(p Params) *Orchestrator {
	if p.Concurrency <= 0 {
		p.Concurrency = runtime.NumCPU()
	}
	if p.Telemetry == nil {
		p.Telemetry = ports.NopTelemetry{}
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Orchestrator{
		resolver:    p.Resolver,
		validator:   p.Validator,
		store:       p.Store,
		publisher:   p.Publisher,
		logger:      p.Logger,
		telemetry:   p.Telemetry,
		concurrency: p.Concurrency,
		now:         p.Now,
	}
}

// Update runs the full cycle over the workspace's target matrix.
//
// Every target is resolved and validated regardless of how its siblings
// fare; a failing target never aborts the run. Publication is all-or-nothing:
// one failing target and nothing is written. The returned CycleResult always
// carries the per-target record; the error is non-nil when the cycle blocked
// publication or publication itself failed.
func (o *Orchestrator) Update(ctx context.Context, ws *domain.Workspace) (*domain.CycleResult, error) {
	targets := ws.Targets()
	if len(targets) == 0 {
		return nil, domain.ErrNoDescriptors
	}

	results := o.runTargets(ctx, targets, o.runTarget)

	cycle := &domain.CycleResult{Results: results}
	if !cycle.AllPassed() {
		o.logger.Warn("update cycle blocked, no artifacts were written")
		return cycle, zerr.Wrap(domain.ErrCycleFailed, "one or more targets failed")
	}

	artifacts := make([]*domain.LockArtifact, len(results))
	reports := make([]*domain.ValidationReport, len(results))
	for i, r := range results {
		artifacts[i] = r.Artifact
		reports[i] = r.Report
	}

	// A rerun with unchanged descriptors converges: identical artifact sets
	// produce no second proposal.
	current, err := o.store.CurrentDigest()
	if err != nil {
		return cycle, zerr.Wrap(err, "failed to read current lock state")
	}
	if current != "" && current == domain.ArtifactSetDigest(artifacts) {
		o.logger.Info("lock set unchanged, skipping proposal")
		cycle.NoOp = true
		return cycle, nil
	}

	if err := o.store.Persist(artifacts); err != nil {
		return cycle, zerr.Wrap(err, "failed to persist lock artifacts")
	}
	proposal := domain.NewUpdateProposal(artifacts, reports, o.now())
	if err := o.publisher.Publish(ctx, proposal); err != nil {
		return cycle, zerr.Wrap(err, "failed to publish update proposal")
	}
	cycle.Proposal = proposal
	o.logger.Info("published " + proposal.Branch)
	return cycle, nil
}

// Lock resolves every target and persists the artifact set without
// validation. The all-or-nothing write policy still applies: a single
// resolution failure and the previous set stays in place.
func (o *Orchestrator) Lock(ctx context.Context, ws *domain.Workspace) (*domain.CycleResult, error) {
	targets := ws.Targets()
	if len(targets) == 0 {
		return nil, domain.ErrNoDescriptors
	}

	results := o.runTargets(ctx, targets, o.resolveTarget)

	cycle := &domain.CycleResult{Results: results}
	if !cycle.AllPassed() {
		o.logger.Warn("resolution incomplete, no artifacts were written")
		return cycle, zerr.Wrap(domain.ErrCycleFailed, "one or more targets failed to resolve")
	}

	artifacts := make([]*domain.LockArtifact, len(results))
	for i, r := range results {
		artifacts[i] = r.Artifact
	}
	if err := o.store.Persist(artifacts); err != nil {
		return cycle, zerr.Wrap(err, "failed to persist lock artifacts")
	}
	return cycle, nil
}

// Test validates every descriptor directly from its file chain, without
// producing artifacts. Descriptors run concurrently like targets do.
func (o *Orchestrator) Test(ctx context.Context, ws *domain.Workspace) (*domain.CycleResult, error) {
	if len(ws.Descriptors) == 0 {
		return nil, domain.ErrNoDescriptors
	}

	results := make([]domain.TargetResult, len(ws.Descriptors))
	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)
	for i, desc := range ws.Descriptors {
		g.Go(func() error {
			_, vertex := o.telemetry.Record(ctx, "test "+desc.Name)
			report, err := o.validator.ValidateDescriptor(ctx, desc)
			results[i] = domain.TargetResult{
				Target: domain.Target{Descriptor: desc, Platform: domain.HostPlatform()},
				Report: report,
				Err:    err,
			}
			vertex.Complete(failureOf(results[i]))
			return nil
		})
	}
	_ = g.Wait()

	cycle := &domain.CycleResult{Results: results}
	if !cycle.AllPassed() {
		return cycle, zerr.Wrap(domain.ErrValidationFailed, "one or more descriptors failed validation")
	}
	return cycle, nil
}

// runTargets fans the per-target work out over a bounded worker group and
// waits for all of it. The Wait is the write barrier: callers only examine
// results, let alone persist anything, after every worker finished.
func (o *Orchestrator) runTargets(ctx context.Context, targets []domain.Target, work func(context.Context, domain.Target) domain.TargetResult) []domain.TargetResult {
	results := make([]domain.TargetResult, len(targets))
	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			vctx, vertex := o.telemetry.Record(ctx, "target "+target.ID())
			results[i] = work(vctx, target)
			vertex.Complete(failureOf(results[i]))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// runTarget is the full per-target unit: resolve, then validate the
// candidate. Either failure marks the target, never the cycle.
func (o *Orchestrator) runTarget(ctx context.Context, target domain.Target) domain.TargetResult {
	result := o.resolveTarget(ctx, target)
	if result.Err != nil {
		return result
	}
	report, err := o.validator.ValidateArtifact(ctx, target, result.Artifact)
	result.Report = report
	result.Err = err
	return result
}

func (o *Orchestrator) resolveTarget(ctx context.Context, target domain.Target) domain.TargetResult {
	artifact, err := o.resolver.Resolve(ctx, target.Descriptor, target.Platform)
	if err != nil {
		o.logger.Error(zerr.With(err, "target", target.ID()))
		return domain.TargetResult{Target: target, Err: err}
	}
	return domain.TargetResult{Target: target, Artifact: artifact}
}

// failureOf projects a target result onto the telemetry vertex outcome.
func failureOf(r domain.TargetResult) error {
	if r.Err != nil {
		return r.Err
	}
	if r.Report != nil && !r.Report.Passed() {
		if failed, ok := r.Report.FailedStage(); ok {
			return zerr.New(string(failed.Stage) + " stage failed")
		}
		return zerr.New("validation failed")
	}
	return nil
}
