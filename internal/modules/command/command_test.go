package command_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules/command"
)

func TestRun_CommandCapturesOutput(t *testing.T) {
	res, err := command.NewCommand().Run(context.Background(),
		domain.Vars{"cmd": "echo hello"}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.True(t, res.Changed())
	assert.Equal(t, "hello", res.Msg)
	assert.Equal(t, 0, res.Data["rc"])
	assert.Equal(t, "hello\n", res.Data["stdout"])
}

func TestRun_Argv(t *testing.T) {
	res, err := command.NewCommand().Run(context.Background(),
		domain.Vars{"argv": []any{"echo", "a b"}}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "a b\n", res.Data["stdout"], "argv words are not re-split")
}

func TestRun_ShellExpands(t *testing.T) {
	res, err := command.NewShell().Run(context.Background(),
		domain.Vars{"cmd": "echo one && echo two"}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "one\ntwo\n", res.Data["stdout"])
}

func TestRun_NonZeroExitIsFailedResult(t *testing.T) {
	res, err := command.NewShell().Run(context.Background(),
		domain.Vars{"cmd": "echo oops >&2; exit 3"}, domain.ActionOptions{})
	require.NoError(t, err, "non-zero rc is a result, not an error")

	assert.Equal(t, domain.StatusFailed, res.Status)
	assert.Equal(t, 3, res.Data["rc"])
	assert.Equal(t, "oops\n", res.Data["stderr"])
}

func TestRun_Chdir(t *testing.T) {
	dir := t.TempDir()

	res, err := command.NewShell().Run(context.Background(),
		domain.Vars{"cmd": "pwd", "chdir": dir}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.Contains(t, res.Data["stdout"], filepath.Base(dir))
}

func TestRun_CreatesGuardSkips(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "done")
	require.NoError(t, os.WriteFile(marker, nil, 0o644))

	res, err := command.NewCommand().Run(context.Background(),
		domain.Vars{"cmd": "echo hi", "creates": marker}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSkipped, res.Status)
}

func TestRun_RemovesGuardSkips(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	res, err := command.NewCommand().Run(context.Background(),
		domain.Vars{"cmd": "echo hi", "removes": missing}, domain.ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSkipped, res.Status)
}

func TestRun_CheckModeSkips(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "side-effect")

	res, err := command.NewShell().Run(context.Background(),
		domain.Vars{"cmd": "touch " + marker}, domain.ActionOptions{Check: true})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSkipped, res.Status)
	assert.NoFileExists(t, marker)
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		module interface {
			Run(context.Context, domain.Vars, domain.ActionOptions) (*domain.TaskResult, error)
		}
		args domain.Vars
	}{
		{name: "no command", module: command.NewCommand(), args: domain.Vars{}},
		{name: "cmd and argv", module: command.NewCommand(), args: domain.Vars{"cmd": "x", "argv": []any{"y"}}},
		{name: "argv via shell", module: command.NewShell(), args: domain.Vars{"argv": []any{"x"}}},
		{name: "argv not a list", module: command.NewCommand(), args: domain.Vars{"argv": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.module.Run(context.Background(), tt.args, domain.ActionOptions{})
			require.ErrorIs(t, err, domain.ErrModuleArgInvalid)
		})
	}
}
