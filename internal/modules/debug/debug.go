// Package debug implements the debug module: it echoes a message
// without touching host state. Variables in the message are expanded
// by the runner before the module sees them.
package debug

import (
	"context"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
)

const defaultMsg = "Hello world!"

// Module implements modules.Module for the "debug" action.
type Module struct{}

// New creates the debug module.
func New() *Module {
	return &Module{}
}

func init() {
	modules.Register(New())
}

// Name returns the module name.
func (m *Module) Name() string {
	return "debug"
}

// Run reports the message. Debug never changes anything and runs in
// check mode as well.
func (m *Module) Run(_ context.Context, args domain.Vars, _ domain.ActionOptions) (*domain.TaskResult, error) {
	msg, ok, err := modules.StringArg(args, "msg")
	if err != nil {
		return nil, err
	}
	if !ok {
		msg = defaultMsg
	}

	res := domain.OKResult(msg)
	res.Data["msg"] = msg
	return res, nil
}
