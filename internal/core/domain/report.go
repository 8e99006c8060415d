package domain

import (
	"fmt"
	"strings"
	"time"
)

// Stage is one step of the fixed validation pipeline.
type Stage string

const (
	// StageLint runs static style and error checks across the source tree.
	StageLint Stage = "lint"
	// StageSyntax parses every lecture source file standalone.
	StageSyntax Stage = "syntax"
	// StageConvert transforms lecture sources into notebooks.
	StageConvert Stage = "convert"
	// StageExecute runs every produced notebook top to bottom.
	StageExecute Stage = "execute"
)

// Stages returns the pipeline stages in execution order. Each stage assumes
// the previous one succeeded.
func Stages() []Stage {
	return []Stage{StageLint, StageSyntax, StageConvert, StageExecute}
}

// FailureClass distinguishes why a stage failed. Policy is identical for all
// classes (any failure blocks publication); reporting is not, so maintainers
// know whether to fix source, pins or infrastructure.
type FailureClass string

const (
	// FailureNone means the stage passed.
	FailureNone FailureClass = ""
	// FailureStyle is a style-only lint violation.
	FailureStyle FailureClass = "style"
	// FailureCritical is a syntax-breaking lint finding.
	FailureCritical FailureClass = "critical"
	// FailureLogic is a genuine check failure (parse error, conversion error,
	// uncaught exception during execution).
	FailureLogic FailureClass = "logic"
	// FailureInfra is a timeout or missing external tool.
	FailureInfra FailureClass = "infra"
)

// StageResult is the outcome of a single pipeline stage.
type StageResult struct {
	Stage  Stage
	Passed bool
	Class  FailureClass
	// Output is the captured diagnostic output (combined stdout/stderr tail).
	Output string
	// Detail names what failed (offending file, command), empty on pass.
	Detail string
}

// ValidationReport is the outcome of running the pipeline against one
// environment. Partial results are always captured: stages not reached are
// simply absent.
type ValidationReport struct {
	// Subject identifies what was validated, either a target ID or a
	// descriptor name for descriptor-only runs.
	Subject string

	Stages []StageResult

	StartedAt  time.Time
	FinishedAt time.Time
}

// Passed reports whether all four stages completed without abort.
func (r *ValidationReport) Passed() bool {
	if len(r.Stages) != len(Stages()) {
		return false
	}
	for _, s := range r.Stages {
		if !s.Passed {
			return false
		}
	}
	return true
}

// FailedStage returns the stage the pipeline aborted in, if any.
func (r *ValidationReport) FailedStage() (StageResult, bool) {
	for _, s := range r.Stages {
		if !s.Passed {
			return s, true
		}
	}
	return StageResult{}, false
}

// Render produces the human-readable report block embedded in update
// proposals and diagnostic records.
func (r *ValidationReport) Render() string {
	var b strings.Builder
	verdict := "PASS"
	if !r.Passed() {
		verdict = "FAIL"
	}
	fmt.Fprintf(&b, "%s: %s (%s)\n", r.Subject, verdict, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	for _, s := range r.Stages {
		if s.Passed {
			fmt.Fprintf(&b, "  %-8s ok\n", s.Stage)
			continue
		}
		fmt.Fprintf(&b, "  %-8s FAILED (%s) %s\n", s.Stage, s.Class, s.Detail)
		if s.Output != "" {
			for _, line := range strings.Split(strings.TrimRight(s.Output, "\n"), "\n") {
				fmt.Fprintf(&b, "    | %s\n", line)
			}
		}
	}
	for _, stage := range Stages()[len(r.Stages):] {
		fmt.Fprintf(&b, "  %-8s skipped\n", stage)
	}
	return b.String()
}
