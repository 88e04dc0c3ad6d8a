package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/adapters/telemetry/progrock"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecord_AttachesVertexToContext(t *testing.T) {
	recorder := progrock.New()
	defer recorder.Close() //nolint:errcheck // tape close in test

	ctx, vertex := recorder.Record(context.Background(), "file [web1]")
	require.NotNil(t, vertex)
	assert.Same(t, vertex, ports.VertexFromContext(ctx))

	vertex.Log(domain.LogLevelInfo, "converged")
	vertex.Complete(nil)
}
