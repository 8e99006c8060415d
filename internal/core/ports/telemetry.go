package ports

import (
	"context"
	"io"
)

// Telemetry records per-target progress vertices for the update cycle.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a new vertex for the named unit of work.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work (a resolution target, a stage).
type Vertex interface {
	// Stdout returns a writer capturing standard output for this vertex.
	Stdout() io.Writer
	// Stderr returns a writer capturing error output for this vertex.
	Stderr() io.Writer
	// Complete marks the vertex finished, with err non-nil on failure.
	Complete(err error)
	// Cached marks the vertex as skipped because prior state was reused.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct{}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

type vertexCtxKey struct{}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexCtxKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexCtxKey{}).(Vertex)
	return v, ok
}

// NopTelemetry is a Telemetry that records nothing. Useful as a default and
// in tests.
type NopTelemetry struct{}

// Record returns an inert vertex.
func (NopTelemetry) Record(ctx context.Context, _ string, _ ...VertexOption) (context.Context, Vertex) {
	return ctx, nopVertex{}
}

// Close is a no-op.
func (NopTelemetry) Close() error { return nil }

type nopVertex struct{}

func (nopVertex) Stdout() io.Writer { return io.Discard }
func (nopVertex) Stderr() io.Writer { return io.Discard }
func (nopVertex) Complete(error)    {}
func (nopVertex) Cached()           {}
