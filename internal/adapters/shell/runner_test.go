package shell_test

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rse-lectures/lockstep/internal/adapters/logger"
	"github.com/rse-lectures/lockstep/internal/adapters/shell"
	"github.com/rse-lectures/lockstep/internal/core/domain"
)

func newRunner() *shell.Runner {
	lg := logger.New()
	return shell.NewRunner(lg)
}

func TestRunner_CapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tools required")
	}

	out, err := newRunner().Run(context.Background(), domain.Command{
		Program: "echo",
		Args:    []string{"locked", "and", "loaded"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Stdout, "locked and loaded") {
		t.Errorf("expected stdout capture, got %q", out.Stdout)
	}
	if out.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", out.ExitCode)
	}
}

func TestRunner_NonzeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tools required")
	}

	out, err := newRunner().Run(context.Background(), domain.Command{
		Program: "sh",
		Args:    []string{"-c", "echo boom >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if out.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", out.ExitCode)
	}
	// Output must survive the failure so reports can carry it.
	if !strings.Contains(out.Stderr, "boom") {
		t.Errorf("expected stderr capture, got %q", out.Stderr)
	}
}

func TestRunner_MissingTool(t *testing.T) {
	_, err := newRunner().Run(context.Background(), domain.Command{
		Program: "definitely-not-a-real-tool-xyz",
	})
	if !errors.Is(err, domain.ErrToolMissing) {
		t.Errorf("expected ErrToolMissing, got %v", err)
	}
}

func TestRunner_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tools required")
	}

	start := time.Now()
	_, err := newRunner().Run(context.Background(), domain.Command{
		Program: "sleep",
		Args:    []string{"5"},
		Timeout: 50 * time.Millisecond,
	})
	if !errors.Is(err, domain.ErrToolTimeout) {
		t.Fatalf("expected ErrToolTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout did not cut the command short, took %v", elapsed)
	}
}
