package config

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.defaults"

func init() {
	graft.Register(graft.Node[*Defaults]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Defaults, error) {
			return Load("")
		},
	})
}
