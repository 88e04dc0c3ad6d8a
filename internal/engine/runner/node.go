package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ply/internal/adapters/local"
	"go.trai.ch/ply/internal/adapters/logger"
	"go.trai.ch/ply/internal/adapters/telemetry/progrock"
	"go.trai.ch/ply/internal/core/ports"
)

const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{local.NodeID, logger.NodeID, progrock.NodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			transport, err := graft.Dep[ports.Transport](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(transport, log, telemetry), nil
		},
	})
}
