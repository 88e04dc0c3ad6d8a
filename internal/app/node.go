package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ply/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ply/internal/adapters/inventory" //nolint:depguard // Wired in app layer
	"go.trai.ch/ply/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ply/internal/adapters/playbook"  //nolint:depguard // Wired in app layer
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/ply/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components exposed
// to the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			playbook.NodeID,
			inventory.NodeID,
			inventory.RetryNodeID,
			runner.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.PlaybookLoader](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.InventorySource](ctx)
	if err != nil {
		return nil, err
	}

	retry, err := graft.Dep[ports.RetryWriter](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	defaults, err := graft.Dep[*config.Defaults](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, source, retry, run, log, defaults), nil
}
