package file

import (
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	"go.trai.ch/zerr"
)

// ApplyAttrs parses ownership/permission/SELinux arguments from args
// and converges them on path. Other modules that create files reuse
// this to honor the shared attribute arguments.
func ApplyAttrs(path string, args domain.Vars, check bool) (bool, error) {
	var a attrs
	if err := a.parse(args); err != nil {
		return false, err
	}
	return a.apply(path, check)
}

// attrs holds the requested ownership/permission/SELinux attributes.
// Unset fields are left alone on the target.
type attrs struct {
	mode  *os.FileMode
	owner string
	group string
	se    seContext
}

func (a *attrs) parse(args domain.Vars) error {
	raw, present := args["mode"]
	if present && raw != nil {
		mode, err := parseMode(raw)
		if err != nil {
			return err
		}
		a.mode = &mode
	}

	var err error
	if a.owner, _, err = modules.StringArg(args, "owner"); err != nil {
		return err
	}
	if a.group, _, err = modules.StringArg(args, "group"); err != nil {
		return err
	}
	return a.se.parse(args)
}

// parseMode accepts the quoted octal string form ("0755") and the bare
// integer YAML produces for an unquoted 0o755.
func parseMode(raw any) (os.FileMode, error) {
	switch v := raw.(type) {
	case string:
		bits, err := strconv.ParseUint(v, 8, 32)
		if err != nil {
			return 0, zerr.With(domain.ErrModuleArgInvalid, "arg", "mode")
		}
		return os.FileMode(bits), nil
	case int:
		return os.FileMode(uint32(v)), nil //nolint:gosec // mode bits fit
	case int64:
		return os.FileMode(uint32(v)), nil //nolint:gosec // mode bits fit
	default:
		return 0, zerr.With(domain.ErrModuleArgInvalid, "arg", "mode")
	}
}

// apply converges the attributes on the path, reporting whether
// anything differed. Symlinks only take ownership changes.
func (a *attrs) apply(path string, check bool) (bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return false, pathErr(err, "failed to stat path", path)
	}

	changed := false

	if a.mode != nil && fi.Mode()&os.ModeSymlink == 0 && fi.Mode().Perm() != a.mode.Perm() {
		if !check {
			if err := os.Chmod(path, a.mode.Perm()); err != nil {
				return changed, pathErr(err, "failed to change mode", path)
			}
		}
		changed = true
	}

	ownChanged, err := a.applyOwnership(path, fi, check)
	if err != nil {
		return changed, err
	}
	changed = changed || ownChanged

	seChanged, err := a.se.apply(path, check)
	if err != nil {
		return changed, err
	}
	return changed || seChanged, nil
}

// applyToLink converges only the attributes that are meaningful on a
// freshly created symlink or hardlink.
func (a *attrs) applyToLink(path string) (bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return false, pathErr(err, "failed to stat link", path)
	}
	return a.applyOwnership(path, fi, false)
}

func (a *attrs) applyOwnership(path string, fi os.FileInfo, check bool) (bool, error) {
	if a.owner == "" && a.group == "" {
		return false, nil
	}

	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return false, nil
	}

	uid, gid := int(st.Uid), int(st.Gid)
	wantUID, wantGID := uid, gid
	var err error

	if a.owner != "" {
		if wantUID, err = lookupUID(a.owner); err != nil {
			return false, err
		}
	}
	if a.group != "" {
		if wantGID, err = lookupGID(a.group); err != nil {
			return false, err
		}
	}

	if wantUID == uid && wantGID == gid {
		return false, nil
	}
	if !check {
		if err := os.Lchown(path, wantUID, wantGID); err != nil {
			return false, pathErr(err, "failed to change ownership", path)
		}
	}
	return true, nil
}

// applyRecursive walks the tree under root and converges attributes on
// every entry.
func (a *attrs) applyRecursive(root string, check bool) (bool, error) {
	changed := false
	err := filepath.WalkDir(root, func(path string, _ fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return pathErr(walkErr, "failed to walk directory", path)
		}
		if path == root {
			return nil
		}
		c, err := a.apply(path, check)
		changed = changed || c
		return err
	})
	return changed, err
}

func lookupUID(owner string) (int, error) {
	if uid, err := strconv.Atoi(owner); err == nil {
		return uid, nil
	}
	u, err := user.Lookup(owner)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to look up owner"), "owner", owner)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to parse uid"), "owner", owner)
	}
	return uid, nil
}

func lookupGID(group string) (int, error) {
	if gid, err := strconv.Atoi(group); err == nil {
		return gid, nil
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to look up group"), "group", group)
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to parse gid"), "group", group)
	}
	return gid, nil
}
