// Package pipeline implements the fixed validation pipeline: lint, syntax,
// convert, execute. Each stage assumes the previous one succeeded, so the
// first failure aborts the run for that environment.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Validator. It owns the environment lifecycle: a
// fresh environment is created per run and destroyed afterwards, pass or
// fail.
type Runner struct {
	envs        ports.EnvironmentManager
	logger      ports.Logger
	telemetry   ports.Telemetry
	root        string
	lectureGlob string
	timeout     time.Duration
}

// NewRunner creates a pipeline runner. lectureGlob matches lecture source
// files relative to root; timeout bounds each tool invocation inside the
// pipeline.
func NewRunner(envs ports.EnvironmentManager, logger ports.Logger, telemetry ports.Telemetry, root, lectureGlob string, timeout time.Duration) *Runner {
	return &Runner{
		envs:        envs,
		logger:      logger,
		telemetry:   telemetry,
		root:        root,
		lectureGlob: lectureGlob,
		timeout:     timeout,
	}
}

// ValidateArtifact instantiates an environment from the pinned lock artifact
// and runs the pipeline against it.
func (r *Runner) ValidateArtifact(ctx context.Context, target domain.Target, artifact *domain.LockArtifact) (*domain.ValidationReport, error) {
	env := envName(target.ID())
	if err := r.envs.CreateFromLock(ctx, env, artifact); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to instantiate candidate environment"), "target", target.ID())
	}
	defer r.cleanup(ctx, env)
	return r.run(ctx, target.ID(), env), nil
}

// ValidateDescriptor instantiates an environment directly from the descriptor
// file chain and runs the pipeline against it. No lock artifacts are involved.
func (r *Runner) ValidateDescriptor(ctx context.Context, desc *domain.Descriptor) (*domain.ValidationReport, error) {
	env := envName(desc.Name)
	if err := r.envs.CreateFromDescriptor(ctx, env, desc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to instantiate environment"), "descriptor", desc.Name)
	}
	defer r.cleanup(ctx, env)
	return r.run(ctx, desc.Name, env), nil
}

// run executes the four stages in order, recording one StageResult per stage
// reached. Stages after the first failure are not run.
func (r *Runner) run(ctx context.Context, subject, env string) *domain.ValidationReport {
	report := &domain.ValidationReport{
		Subject:   subject,
		StartedAt: time.Now(),
	}
	defer func() { report.FinishedAt = time.Now() }()

	sb, setup := r.stageSources(env)
	if setup != nil {
		report.Stages = append(report.Stages, *setup)
		r.logger.Warn(subject + ": " + string(setup.Stage) + " stage failed (" + string(setup.Class) + ")")
		return report
	}
	defer sb.remove()

	stages := map[domain.Stage]func(context.Context, *sandbox) domain.StageResult{
		domain.StageLint:    r.lint,
		domain.StageSyntax:  r.syntax,
		domain.StageConvert: r.convert,
		domain.StageExecute: r.execute,
	}
	for _, stage := range domain.Stages() {
		vctx, vertex := r.telemetry.Record(ctx, subject+" "+string(stage))
		result := stages[stage](vctx, sb)
		report.Stages = append(report.Stages, result)
		if !result.Passed {
			_, _ = vertex.Stderr().Write([]byte(result.Output))
			vertex.Complete(zerr.New(string(stage) + " stage failed"))
			r.logger.Warn(subject + ": " + string(result.Stage) + " stage failed (" + string(result.Class) + ")")
			return report
		}
		vertex.Complete(nil)
	}
	return report
}

// sandbox is one run's private copy of the lecture sources. Runs for
// different targets execute concurrently and the convert stage materializes
// notebooks next to the sources, so each run works on its own tree instead
// of the shared workspace.
type sandbox struct {
	env   string
	dir   string
	files []string
}

func (s *sandbox) remove() {
	_ = os.RemoveAll(s.dir)
}

// stageSources copies the glob-matched lecture sources into a run-private
// directory, preserving their workspace-relative paths. Every stage command
// runs inside that directory.
func (r *Runner) stageSources(env string) (*sandbox, *domain.StageResult) {
	files, result := r.lectureFiles(domain.StageLint)
	if result != nil {
		return nil, result
	}
	dir, err := os.MkdirTemp("", "lockstep-run-*")
	if err != nil {
		return nil, &domain.StageResult{
			Stage:  domain.StageLint,
			Class:  domain.FailureInfra,
			Output: err.Error(),
		}
	}
	for _, f := range files {
		if err := copySource(r.root, dir, f); err != nil {
			_ = os.RemoveAll(dir)
			return nil, &domain.StageResult{
				Stage:  domain.StageLint,
				Class:  domain.FailureInfra,
				Output: err.Error(),
				Detail: f,
			}
		}
	}
	return &sandbox{env: env, dir: dir, files: files}, nil
}

func copySource(root, dir, file string) error {
	src, err := os.ReadFile(filepath.Join(root, file))
	if err != nil {
		return err
	}
	dst := filepath.Join(dir, file)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, src, 0o644)
}

// lint runs flake8 twice: once restricted to syntax-breaking findings, once
// for the full style rule set. Both abort, but the report distinguishes them.
func (r *Runner) lint(ctx context.Context, sb *sandbox) domain.StageResult {
	out, err := r.runTool(ctx, sb, "flake8",
		".", "--count", "--select=E9,F63,F7,F82", "--show-source", "--statistics")
	if err != nil {
		return r.failure(domain.StageLint, domain.FailureCritical, out, err, "syntax-breaking findings")
	}

	out, err = r.runTool(ctx, sb, "flake8", ".", "--count", "--statistics")
	if err != nil {
		return r.failure(domain.StageLint, domain.FailureStyle, out, err, "style violations")
	}
	return domain.StageResult{Stage: domain.StageLint, Passed: true}
}

// syntax parses every lecture source file standalone.
func (r *Runner) syntax(ctx context.Context, sb *sandbox) domain.StageResult {
	for _, f := range sb.files {
		out, err := r.runTool(ctx, sb, "python", "-m", "py_compile", f)
		if err != nil {
			return r.failure(domain.StageSyntax, domain.FailureLogic, out, err, f)
		}
	}
	return domain.StageResult{Stage: domain.StageSyntax, Passed: true}
}

// convert transforms every lecture source file into its notebook
// representation. Produced notebooks are consumed by the execute stage and
// vanish with the sandbox when the run finishes.
func (r *Runner) convert(ctx context.Context, sb *sandbox) domain.StageResult {
	for _, f := range sb.files {
		out, err := r.runTool(ctx, sb, "jupytext", "--to", "notebook", f)
		if err != nil {
			return r.failure(domain.StageConvert, domain.FailureLogic, out, err, f)
		}
	}
	return domain.StageResult{Stage: domain.StageConvert, Passed: true}
}

// execute runs every produced notebook top to bottom in a fresh kernel.
func (r *Runner) execute(ctx context.Context, sb *sandbox) domain.StageResult {
	for _, f := range sb.files {
		nb := notebookPath(f)
		out, err := r.runTool(ctx, sb, "jupyter",
			"nbconvert", "--to", "notebook", "--execute", "--inplace", nb)
		if err != nil {
			// The traceback of the offending cell is in the captured output.
			return r.failure(domain.StageExecute, domain.FailureLogic, out, err, nb)
		}
	}
	return domain.StageResult{Stage: domain.StageExecute, Passed: true}
}

func (r *Runner) runTool(ctx context.Context, sb *sandbox, program string, args ...string) (domain.CommandOutput, error) {
	return r.envs.Run(ctx, sb.env, domain.Command{
		Program: program,
		Args:    args,
		Dir:     sb.dir,
		Timeout: r.timeout,
	})
}

// failure builds the StageResult for a failed tool invocation. Infrastructure
// failures override the stage's nominal class.
func (r *Runner) failure(stage domain.Stage, class domain.FailureClass, out domain.CommandOutput, err error, detail string) domain.StageResult {
	if errors.Is(err, domain.ErrToolMissing) || errors.Is(err, domain.ErrToolTimeout) {
		class = domain.FailureInfra
	}
	output := strings.TrimSpace(out.Combined())
	if output == "" {
		output = err.Error()
	}
	return domain.StageResult{
		Stage:  stage,
		Class:  class,
		Output: output,
		Detail: detail,
	}
}

// lectureFiles globs the lecture sources. An empty match set fails the stage:
// a workspace with no lectures to validate means the glob is wrong, not that
// everything passes.
func (r *Runner) lectureFiles(stage domain.Stage) ([]string, *domain.StageResult) {
	matches, err := doublestar.Glob(os.DirFS(r.root), r.lectureGlob)
	if err != nil {
		return nil, &domain.StageResult{
			Stage:  stage,
			Class:  domain.FailureInfra,
			Output: err.Error(),
			Detail: r.lectureGlob,
		}
	}
	if len(matches) == 0 {
		return nil, &domain.StageResult{
			Stage:  stage,
			Class:  domain.FailureInfra,
			Output: "no lecture sources matched " + r.lectureGlob,
			Detail: r.lectureGlob,
		}
	}
	return matches, nil
}

// cleanup destroys the run's environment. Best effort: removal problems are
// logged, never surfaced as run failures.
func (r *Runner) cleanup(ctx context.Context, env string) {
	if err := r.envs.Remove(ctx, env); err != nil {
		r.logger.Error(zerr.Wrap(err, "failed to remove environment "+env))
	}
}

func notebookPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".ipynb"
}

// envName derives a filesystem- and tool-safe environment name from a target
// or descriptor identity.
func envName(id string) string {
	safe := strings.NewReplacer("/", "-", " ", "-").Replace(id)
	return "lockstep-" + safe
}

var _ ports.Validator = (*Runner)(nil)
