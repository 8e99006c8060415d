package ports

import (
	"context"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

// ToolRunner executes a single external tool invocation and captures its
// output. Implementations must map a missing binary to domain.ErrToolMissing
// and a deadline hit to domain.ErrToolTimeout so callers can classify
// infrastructure failures separately from logic failures.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ToolRunner interface {
	// Run blocks until the command completes or times out. The captured
	// output is returned even when the command exits nonzero.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandOutput, error)
}
