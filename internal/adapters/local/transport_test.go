package local_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/adapters/local"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	_ "go.trai.ch/ply/internal/modules/file"
)

func TestSession_RunDispatchesToModule(t *testing.T) {
	transport := local.NewTransport(modules.Default())
	host := &domain.Host{Name: domain.NewInternedString("web1"), Vars: domain.Vars{}}

	sess, err := transport.Connect(context.Background(), host)
	require.NoError(t, err)
	defer sess.Close() //nolint:errcheck // local sessions cannot fail to close

	path := filepath.Join(t.TempDir(), "d")
	res, err := sess.Run(context.Background(), domain.Action{
		Module: "file",
		Args:   domain.Vars{"path": path, "state": "directory"},
	}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "web1", res.Host.String())
	assert.True(t, res.Changed())
	assert.DirExists(t, path)
}

func TestSession_UnknownModule(t *testing.T) {
	transport := local.NewTransport(modules.NewRegistry())
	host := &domain.Host{Name: domain.NewInternedString("web1")}

	sess, err := transport.Connect(context.Background(), host)
	require.NoError(t, err)

	_, err = sess.Run(context.Background(), domain.Action{Module: "nope"}, domain.ActionOptions{})
	require.ErrorIs(t, err, domain.ErrUnknownModule)
}
