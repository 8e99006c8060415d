package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

func passingReport(subject string) *domain.ValidationReport {
	r := &domain.ValidationReport{Subject: subject, StartedAt: time.Now(), FinishedAt: time.Now()}
	for _, s := range domain.Stages() {
		r.Stages = append(r.Stages, domain.StageResult{Stage: s, Passed: true})
	}
	return r
}

func TestValidationReport_Passed(t *testing.T) {
	r := passingReport("dev/linux-64")
	if !r.Passed() {
		t.Error("expected report with all stages passed to pass")
	}
	if _, failed := r.FailedStage(); failed {
		t.Error("expected no failed stage")
	}
}

func TestValidationReport_AbortIsPartial(t *testing.T) {
	// Pipeline aborted in the syntax stage: convert and execute never ran.
	r := &domain.ValidationReport{
		Subject: "base/linux-64",
		Stages: []domain.StageResult{
			{Stage: domain.StageLint, Passed: true},
			{
				Stage:  domain.StageSyntax,
				Passed: false,
				Class:  domain.FailureLogic,
				Detail: "lecture_02/lecture_02.py",
				Output: "SyntaxError: invalid syntax (line 14)",
			},
		},
	}

	if r.Passed() {
		t.Error("aborted report must not pass")
	}
	failed, ok := r.FailedStage()
	if !ok || failed.Stage != domain.StageSyntax {
		t.Fatalf("expected syntax stage failure, got %+v ok=%v", failed, ok)
	}

	rendered := r.Render()
	for _, want := range []string{"FAIL", "syntax", "lecture_02/lecture_02.py", "SyntaxError", "skipped"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered report missing %q:\n%s", want, rendered)
		}
	}
	// Stages never reached must be reported as skipped, not silently absent.
	if strings.Count(rendered, "skipped") != 2 {
		t.Errorf("expected convert and execute to render as skipped:\n%s", rendered)
	}
}

func TestValidationReport_MissingStagesDoNotPass(t *testing.T) {
	r := &domain.ValidationReport{
		Subject: "dev",
		Stages: []domain.StageResult{
			{Stage: domain.StageLint, Passed: true},
		},
	}
	if r.Passed() {
		t.Error("a report that never reached execution must not pass")
	}
}

func TestTargetResult_Failed(t *testing.T) {
	target := domain.Target{
		Descriptor: &domain.Descriptor{Name: "dev"},
		Platform:   domain.PlatformLinux64,
	}

	ok := domain.TargetResult{Target: target, Report: passingReport("dev/linux-64")}
	if ok.Failed() {
		t.Error("passing result reported as failed")
	}

	failedValidation := domain.TargetResult{
		Target: target,
		Report: &domain.ValidationReport{Subject: "dev/linux-64"},
	}
	if !failedValidation.Failed() {
		t.Error("empty report must count as failed")
	}

	failedResolution := domain.TargetResult{Target: target, Err: domain.ErrResolutionFailed}
	if !failedResolution.Failed() {
		t.Error("resolution error must count as failed")
	}
}

func TestCycleResult_Diagnostics(t *testing.T) {
	win := domain.Target{Descriptor: &domain.Descriptor{Name: "base"}, Platform: domain.PlatformWin64}
	linux := domain.Target{Descriptor: &domain.Descriptor{Name: "base"}, Platform: domain.PlatformLinux64}

	cycle := &domain.CycleResult{
		Results: []domain.TargetResult{
			{Target: linux, Report: passingReport("base/linux-64")},
			{Target: win, Err: domain.ErrResolutionFailed},
		},
	}

	if cycle.AllPassed() {
		t.Error("cycle with a failed target must not pass")
	}
	diag := cycle.Diagnostics()
	if !strings.Contains(diag, "base/win-64") || !strings.Contains(diag, "resolution failed") {
		t.Errorf("diagnostics must pinpoint the failing target:\n%s", diag)
	}
	if strings.Contains(diag, "base/linux-64") {
		t.Errorf("passing targets must not appear in diagnostics:\n%s", diag)
	}
}
