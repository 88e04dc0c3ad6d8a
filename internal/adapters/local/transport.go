// Package local provides the local transport: actions run in-process
// against the machine ply itself runs on.
package local

import (
	"context"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/ply/internal/modules"
)

// Transport implements ports.Transport by dispatching actions to the
// module registry.
type Transport struct {
	registry *modules.Registry
}

// NewTransport creates a local transport backed by the given registry.
func NewTransport(registry *modules.Registry) *Transport {
	return &Transport{registry: registry}
}

// Connect opens a session for the host. Local sessions cannot fail to
// connect: unreachable handling only matters for remote transports.
func (t *Transport) Connect(_ context.Context, host *domain.Host) (ports.Session, error) {
	return &session{registry: t.registry, host: host}, nil
}

type session struct {
	registry *modules.Registry
	host     *domain.Host
}

// Run resolves the action's module and executes it.
func (s *session) Run(ctx context.Context, action domain.Action, opts domain.ActionOptions) (*domain.TaskResult, error) {
	module, err := s.registry.Get(action.Module)
	if err != nil {
		return nil, err
	}

	res, err := module.Run(ctx, action.Args, opts)
	if err != nil {
		return nil, err
	}
	res.Host = s.host.Name
	return res, nil
}

func (s *session) Close() error {
	return nil
}
