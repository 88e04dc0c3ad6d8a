package playbook

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/ply/internal/modules"
)

const NodeID graft.ID = "adapter.playbook_loader"

func init() {
	graft.Register(graft.Node[ports.PlaybookLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PlaybookLoader, error) {
			return NewLoader(modules.Default()), nil
		},
	})
}
