// Package progrock provides the Progrock implementation of the telemetry
// adapter.
package progrock

import (
	"context"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"github.com/vito/progrock"
	"github.com/vito/progrock/console"
)

// Recorder implements ports.Telemetry on a progrock writer. Each resolution
// target and pipeline stage becomes a vertex.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder that streams vertex updates to stderr as they
// happen, so long resolve and validate phases stay observable.
func New() ports.Telemetry {
	return NewRecorder(console.NewWriter(os.Stderr))
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	rec := progrock.NewRecorder(w)
	return &Recorder{
		w:   w,
		rec: rec,
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
