package inventory

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ply/internal/adapters/config"
	"go.trai.ch/ply/internal/core/ports"
)

const (
	NodeID      graft.ID = "adapter.inventory_source"
	RetryNodeID graft.ID = "adapter.retry_writer"
)

func init() {
	graft.Register(graft.Node[ports.InventorySource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.InventorySource, error) {
			return NewINISource(), nil
		},
	})

	graft.Register(graft.Node[ports.RetryWriter]{
		ID:        RetryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.RetryWriter, error) {
			defaults, err := graft.Dep[*config.Defaults](ctx)
			if err != nil {
				return nil, err
			}
			return NewRetryWriter(defaults.RetryDir), nil
		},
	})
}
