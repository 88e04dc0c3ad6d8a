package local

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/ply/internal/modules"
)

const NodeID graft.ID = "adapter.transport"

func init() {
	graft.Register(graft.Node[ports.Transport]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Transport, error) {
			return NewTransport(modules.Default()), nil
		},
	})
}
