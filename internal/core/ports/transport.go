package ports

import (
	"context"

	"go.trai.ch/ply/internal/core/domain"
)

// Transport defines how the runner reaches a host. The shipped
// implementation executes locally; remote transports (SSH) plug in
// behind this interface.
//
//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	// Connect opens a session against the host. A connection error
	// marks the host unreachable for the rest of the play.
	Connect(ctx context.Context, host *domain.Host) (Session, error)
}

// Session executes module actions on a connected host.
type Session interface {
	// Run executes a single action. Module-level failures are reported
	// in the result, not as an error; an error return means the session
	// itself broke.
	Run(ctx context.Context, action domain.Action, opts domain.ActionOptions) (*domain.TaskResult, error)

	// Close releases the session.
	Close() error
}
