package modules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
)

type stubModule struct {
	name string
}

func (m *stubModule) Name() string { return m.name }

func (m *stubModule) Run(context.Context, domain.Vars, domain.ActionOptions) (*domain.TaskResult, error) {
	return domain.OKResult("stub"), nil
}

func TestRegistry_GetAndHas(t *testing.T) {
	reg := modules.NewRegistry()
	reg.Register(&stubModule{name: "ping"})

	m, err := reg.Get("ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", m.Name())
	assert.True(t, reg.Has("ping"))
	assert.False(t, reg.Has("pong"))
}

func TestRegistry_UnknownModule(t *testing.T) {
	reg := modules.NewRegistry()

	_, err := reg.Get("nope")
	require.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := modules.NewRegistry()
	reg.Register(&stubModule{name: "zeta"})
	reg.Register(&stubModule{name: "alpha"})

	assert.Equal(t, []string{"alpha", "zeta"}, reg.Names())
}

func TestRegistry_ReplaceKeepsLatest(t *testing.T) {
	reg := modules.NewRegistry()
	first := &stubModule{name: "dup"}
	second := &stubModule{name: "dup"}
	reg.Register(first)
	reg.Register(second)

	m, err := reg.Get("dup")
	require.NoError(t, err)
	assert.Same(t, second, m)
}
