package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules/file"
)

func run(t *testing.T, args domain.Vars) (*domain.TaskResult, error) {
	t.Helper()
	return file.New().Run(context.Background(), args, domain.ActionOptions{})
}

func runCheck(t *testing.T, args domain.Vars) (*domain.TaskResult, error) {
	t.Helper()
	return file.New().Run(context.Background(), args, domain.ActionOptions{Check: true})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_DirectoryCreateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.d")
	args := domain.Vars{"path": path, "state": "directory"}

	res, err := run(t, args)
	require.NoError(t, err)
	assert.True(t, res.Changed())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	res, err = run(t, args)
	require.NoError(t, err)
	assert.False(t, res.Changed(), "second application must report changed=false")
}

func TestRun_AbsentOnAbsentPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	res, err := run(t, domain.Vars{"path": path, "state": "absent"})
	require.NoError(t, err)
	assert.False(t, res.Changed())
}

func TestRun_AbsentRemovesTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub", "f"), "x")

	res, err := run(t, domain.Vars{"path": dir, "state": "absent"})
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.NoFileExists(t, filepath.Join(dir, "sub", "f"))
	assert.NoDirExists(t, dir)
}

func TestRun_TouchCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker")

	res, err := run(t, domain.Vars{"path": path, "state": "touch"})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, fi.Size())
}

func TestRun_TouchBumpsTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker")
	writeFile(t, path, "content")
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	res, err := run(t, domain.Vars{"path": path, "state": "touch"})
	require.NoError(t, err)
	assert.True(t, res.Changed(), "touch on an existing file reports changed")

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), fi.ModTime(), time.Minute)
}

func TestRun_TouchAcceptsDirectory(t *testing.T) {
	dir := t.TempDir()

	res, err := run(t, domain.Vars{"path": dir, "state": "touch"})
	require.NoError(t, err)
	assert.True(t, res.Changed())
}

func TestRun_FileOnMissingPathRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	_, err := run(t, domain.Vars{"path": path, "state": "file"})
	require.ErrorIs(t, err, domain.ErrCreateFileRefused)
}

func TestRun_DirectoryToFileRefused(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, domain.Vars{"path": dir, "state": "file"})
	require.ErrorIs(t, err, domain.ErrConversionRefused)
}

func TestRun_FileToDirectoryRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	writeFile(t, path, "x")

	_, err := run(t, domain.Vars{"path": path, "state": "directory"})
	require.ErrorIs(t, err, domain.ErrConversionRefused)
}

func TestRun_FileToLinkWithoutForceRefused(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "dest")
	writeFile(t, src, "x")
	writeFile(t, dest, "y")

	_, err := run(t, domain.Vars{"path": dest, "state": "link", "src": src})
	require.ErrorIs(t, err, domain.ErrConversionRefused)
}

func TestRun_FileToLinkWithForce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "dest")
	writeFile(t, src, "x")
	writeFile(t, dest, "y")

	res, err := run(t, domain.Vars{"path": dest, "state": "link", "src": src, "force": true})
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Equal(t, src, res.Data["src"])
	assert.Equal(t, dest, res.Data["dest"])

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, src, target, "prior file is unlinked and replaced by the symlink")
}

func TestRun_SymlinkCreateAndConverge(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "dest")
	writeFile(t, src, "x")
	args := domain.Vars{"path": dest, "state": "link", "src": src}

	res, err := run(t, args)
	require.NoError(t, err)
	assert.True(t, res.Changed())

	res, err = run(t, args)
	require.NoError(t, err)
	assert.False(t, res.Changed(), "link already pointing at src is unchanged")
}

func TestRun_SymlinkRetarget(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	dest := filepath.Join(dir, "dest")
	writeFile(t, first, "1")
	writeFile(t, second, "2")
	require.NoError(t, os.Symlink(first, dest))

	res, err := run(t, domain.Vars{"path": dest, "state": "link", "src": second})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, second, target)
}

func TestRun_HardLinkCreateAndConverge(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "dest")
	writeFile(t, src, "x")
	args := domain.Vars{"path": dest, "state": "hard", "src": src}

	res, err := run(t, args)
	require.NoError(t, err)
	assert.True(t, res.Changed())

	res, err = run(t, args)
	require.NoError(t, err)
	assert.False(t, res.Changed(), "same inode is already converged")
}

func TestRun_LinkRequiresSrc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest")

	_, err := run(t, domain.Vars{"path": path, "state": "link"})
	require.ErrorIs(t, err, domain.ErrSrcRequired)
}

func TestRun_ModeConverges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	writeFile(t, path, "x")
	args := domain.Vars{"path": path, "state": "file", "mode": "0600"}

	res, err := run(t, args)
	require.NoError(t, err)
	assert.True(t, res.Changed())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	res, err = run(t, args)
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Contains(t, res.Data, "checksum")
}

func TestRun_RecurseAppliesModeToChildren(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	child := filepath.Join(dir, "f")
	writeFile(t, child, "x")

	res, err := run(t, domain.Vars{
		"path": dir, "state": "directory", "mode": "0700", "recurse": true,
	})
	require.NoError(t, err)
	assert.True(t, res.Changed())

	fi, err := os.Stat(child)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
}

func TestRun_CheckModeDoesNotMutate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.d")

	res, err := runCheck(t, domain.Vars{"path": path, "state": "directory"})
	require.NoError(t, err)
	assert.True(t, res.Changed(), "check mode still reports the would-be change")
	assert.NoDirExists(t, path)
}

func TestRun_PathAliases(t *testing.T) {
	for _, key := range []string{"path", "dest", "name"} {
		t.Run(key, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "d")
			res, err := run(t, domain.Vars{key: path, "state": "directory"})
			require.NoError(t, err)
			assert.Equal(t, path, res.Data["path"])
		})
	}
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    domain.Vars
		wantErr error
	}{
		{name: "missing path", args: domain.Vars{"state": "file"}, wantErr: domain.ErrPathRequired},
		{name: "unknown state", args: domain.Vars{"path": "/tmp/x", "state": "sideways"}, wantErr: domain.ErrUnknownFileState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDiscoverState(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "file")
	writeFile(t, regular, "x")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(regular, link))
	hard := filepath.Join(dir, "hard")
	require.NoError(t, os.Link(regular, hard))

	tests := []struct {
		name string
		path string
		want domain.FileState
	}{
		{name: "absent", path: filepath.Join(dir, "missing"), want: domain.FileStateAbsent},
		{name: "directory", path: dir, want: domain.FileStateDirectory},
		{name: "symlink", path: link, want: domain.FileStateLink},
		{name: "hard link", path: hard, want: domain.FileStateHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := file.DiscoverState(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
