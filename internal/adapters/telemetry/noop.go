// Package telemetry provides the no-op telemetry implementation used
// when progress recording is disabled.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/core/ports"
)

// Noop implements ports.Telemetry without recording anything.
type Noop struct{}

// NewNoop creates a no-op telemetry implementation.
func NewNoop() *Noop {
	return &Noop{}
}

// Record attaches a no-op vertex to the context.
func (n *Noop) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	v := &noopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (v *noopVertex) Stdout() io.Writer {
	return io.Discard
}

func (v *noopVertex) Stderr() io.Writer {
	return io.Discard
}

func (v *noopVertex) Log(domain.LogLevel, string) {}

func (v *noopVertex) Complete(error) {}
