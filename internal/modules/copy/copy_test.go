package copy_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules/copy"
)

func run(t *testing.T, args domain.Vars, opts domain.ActionOptions) (*domain.TaskResult, error) {
	t.Helper()
	return copy.New().Run(context.Background(), args, opts)
}

func TestRun_ContentWriteIsIdempotent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "motd")
	args := domain.Vars{"dest": dest, "content": "welcome\n"}

	res, err := run(t, args, domain.ActionOptions{})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "welcome\n", string(data))

	res, err = run(t, args, domain.ActionOptions{})
	require.NoError(t, err)
	assert.False(t, res.Changed(), "matching content must not rewrite")
}

func TestRun_ContentRewrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "motd")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	res, err := run(t, domain.Vars{"dest": dest, "content": "new"}, domain.ActionOptions{})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestRun_SrcToDirectoryUsesBasename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.conf")
	require.NoError(t, os.WriteFile(src, []byte("k=v"), 0o644))
	destDir := filepath.Join(dir, "conf.d")
	require.NoError(t, os.Mkdir(destDir, 0o755))

	res, err := run(t, domain.Vars{"src": src, "dest": destDir}, domain.ActionOptions{})
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Equal(t, filepath.Join(destDir, "app.conf"), res.Data["dest"])
	assert.FileExists(t, filepath.Join(destDir, "app.conf"))
}

func TestRun_DiffReportsBeforeAndAfter(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "motd")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	res, err := run(t, domain.Vars{"dest": dest, "content": "new"}, domain.ActionOptions{Diff: true})
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Equal(t, map[string]any{"before": "old", "after": "new"}, res.Data["diff"])
}

func TestRun_NoDiffWhenUnchanged(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "motd")
	require.NoError(t, os.WriteFile(dest, []byte("same"), 0o644))

	res, err := run(t, domain.Vars{"dest": dest, "content": "same"}, domain.ActionOptions{Diff: true})
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.NotContains(t, res.Data, "diff")
}

func TestRun_CheckModeDoesNotWrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "motd")

	res, err := run(t, domain.Vars{"dest": dest, "content": "x"}, domain.ActionOptions{Check: true})
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.NoFileExists(t, dest)
}

func TestRun_ModeApplied(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "secret")

	_, err := run(t, domain.Vars{"dest": dest, "content": "x", "mode": "0600"}, domain.ActionOptions{})
	require.NoError(t, err)

	fi, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestRun_ArgumentErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    domain.Vars
		wantErr error
	}{
		{name: "missing dest", args: domain.Vars{"content": "x"}, wantErr: domain.ErrPathRequired},
		{name: "missing source", args: domain.Vars{"dest": filepath.Join(dir, "f")}, wantErr: domain.ErrSrcRequired},
		{
			name:    "content and src",
			args:    domain.Vars{"dest": filepath.Join(dir, "f"), "content": "x", "src": "y"},
			wantErr: domain.ErrModuleArgInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args, domain.ActionOptions{})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
