// Package main is the entry point for the lockstep CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/rse-lectures/lockstep/cmd/lockstep/commands"
	"github.com/rse-lectures/lockstep/internal/app"
	"github.com/rse-lectures/lockstep/internal/core/domain"
	_ "github.com/rse-lectures/lockstep/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed; write directly.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// Flush the telemetry stream before reporting the outcome.
	defer func() { _ = components.Telemetry.Close() }()

	cli := commands.New(components.App)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrCycleFailed) || errors.Is(err, domain.ErrValidationFailed) {
			// The per-target record was already printed by the command.
			return 1
		}
		// zerr prints a pretty error report with stack trace and metadata
		// when using %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
