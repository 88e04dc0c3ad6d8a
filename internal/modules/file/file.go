// Package file implements the file module: it idempotently converges a
// filesystem path to a declared state (file, directory, link, hard,
// touch or absent) and its ownership/permission attributes.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"syscall"
	"time"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	"go.trai.ch/zerr"
)

// Module implements modules.Module for the "file" action.
type Module struct{}

// New creates the file module.
func New() *Module {
	return &Module{}
}

func init() {
	modules.Register(New())
}

// Name returns the module name.
func (m *Module) Name() string {
	return "file"
}

type params struct {
	path    string
	state   domain.FileState
	src     string
	force   bool
	recurse bool
	attrs   attrs
}

func parseParams(args domain.Vars) (*params, error) {
	p := &params{}

	path, ok, err := modules.AliasedStringArg(args, "path", "dest", "name")
	if err != nil {
		return nil, err
	}
	if !ok || path == "" {
		return nil, domain.ErrPathRequired
	}
	p.path = path

	stateStr, ok, err := modules.StringArg(args, "state")
	if err != nil {
		return nil, err
	}
	if !ok {
		stateStr = string(domain.FileStateFile)
	}
	if p.state, err = domain.ParseFileState(stateStr); err != nil {
		return nil, err
	}

	if p.src, _, err = modules.StringArg(args, "src"); err != nil {
		return nil, err
	}
	if p.force, err = modules.BoolArg(args, "force", false); err != nil {
		return nil, err
	}
	if p.recurse, err = modules.BoolArg(args, "recurse", false); err != nil {
		return nil, err
	}
	if err = p.attrs.parse(args); err != nil {
		return nil, err
	}

	if (p.state == domain.FileStateLink || p.state == domain.FileStateHard) && p.src == "" {
		return nil, zerr.With(domain.ErrSrcRequired, "path", p.path)
	}

	return p, nil
}

// Run converges the path to the declared state.
func (m *Module) Run(_ context.Context, args domain.Vars, opts domain.ActionOptions) (*domain.TaskResult, error) {
	p, err := parseParams(args)
	if err != nil {
		return nil, err
	}

	prev, err := DiscoverState(p.path)
	if err != nil {
		return nil, err
	}

	var res *domain.TaskResult
	switch p.state {
	case domain.FileStateAbsent:
		res, err = applyAbsent(p, prev, opts)
	case domain.FileStateTouch:
		res, err = applyTouch(p, prev, opts)
	case domain.FileStateDirectory:
		res, err = applyDirectory(p, prev, opts)
	case domain.FileStateLink, domain.FileStateHard:
		res, err = applyLink(p, prev, opts)
	case domain.FileStateFile:
		res, err = applyFile(p, prev, opts)
	}
	if err != nil {
		return nil, err
	}

	res.Data["path"] = p.path
	return res, nil
}

// DiscoverState inspects the filesystem and classifies the path without
// following symlinks. A regular file with more than one link counts as
// a hard link.
func DiscoverState(path string) (domain.FileState, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.FileStateAbsent, nil
		}
		return "", pathErr(err, "failed to stat path", path)
	}

	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		return domain.FileStateLink, nil
	case fi.IsDir():
		return domain.FileStateDirectory, nil
	case linkCount(fi) > 1:
		return domain.FileStateHard, nil
	default:
		return domain.FileStateFile, nil
	}
}

func linkCount(fi os.FileInfo) uint64 {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Nlink)
	}
	return 1
}

func applyAbsent(p *params, prev domain.FileState, opts domain.ActionOptions) (*domain.TaskResult, error) {
	if prev == domain.FileStateAbsent {
		res := domain.OKResult("path is absent")
		res.Data["state"] = string(domain.FileStateAbsent)
		return res, nil
	}

	if !opts.Check {
		if err := os.RemoveAll(p.path); err != nil {
			return nil, pathErr(err, "failed to remove path", p.path)
		}
	}

	res := domain.ChangedResult("removed")
	res.Data["state"] = string(domain.FileStateAbsent)
	return res, nil
}

// applyTouch creates an empty file or bumps timestamps. Touch always
// reports changed=true on an existing node: the timestamps moved.
func applyTouch(p *params, prev domain.FileState, opts domain.ActionOptions) (*domain.TaskResult, error) {
	if prev == domain.FileStateAbsent {
		if !opts.Check {
			f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE, 0o644) //nolint:gosec // declared target path
			if err != nil {
				return nil, pathErr(err, "failed to create file", p.path)
			}
			if err := f.Close(); err != nil {
				return nil, pathErr(err, "failed to close file", p.path)
			}
			if _, err := p.attrs.apply(p.path, opts.Check); err != nil {
				return nil, err
			}
		}
		res := domain.ChangedResult("created empty file")
		res.Data["state"] = string(domain.FileStateTouch)
		return res, nil
	}

	if !opts.Check {
		now := time.Now()
		if err := os.Chtimes(p.path, now, now); err != nil {
			return nil, pathErr(err, "failed to update timestamps", p.path)
		}
		if _, err := p.attrs.apply(p.path, opts.Check); err != nil {
			return nil, err
		}
	}
	res := domain.ChangedResult("updated timestamps")
	res.Data["state"] = string(domain.FileStateTouch)
	return res, nil
}

func applyDirectory(p *params, prev domain.FileState, opts domain.ActionOptions) (*domain.TaskResult, error) {
	switch prev {
	case domain.FileStateAbsent:
		if !opts.Check {
			if err := os.MkdirAll(p.path, 0o755); err != nil { //nolint:gosec // declared target path
				return nil, pathErr(err, "failed to create directory", p.path)
			}
			if _, err := p.attrs.apply(p.path, opts.Check); err != nil {
				return nil, err
			}
		}
		res := domain.ChangedResult("created directory")
		res.Data["state"] = string(domain.FileStateDirectory)
		return res, nil

	case domain.FileStateDirectory:
		changed, err := p.convergeAttrs(opts)
		if err != nil {
			return nil, err
		}
		res := domain.OKResult("directory already present")
		if changed {
			res = domain.ChangedResult("directory attributes updated")
		}
		res.Data["state"] = string(domain.FileStateDirectory)
		return res, nil

	default:
		return nil, conversionRefused(p.path, prev, domain.FileStateDirectory)
	}
}

func applyFile(p *params, prev domain.FileState, opts domain.ActionOptions) (*domain.TaskResult, error) {
	switch prev {
	case domain.FileStateAbsent:
		// The file module never writes content. Creating a regular file
		// is the copy module's job.
		return nil, zerr.With(domain.ErrCreateFileRefused, "path", p.path)

	case domain.FileStateFile, domain.FileStateHard:
		changed, err := p.attrs.apply(p.path, opts.Check)
		if err != nil {
			return nil, err
		}
		res := domain.OKResult("file already in desired state")
		if changed {
			res = domain.ChangedResult("file attributes updated")
		}
		res.Data["state"] = string(domain.FileStateFile)
		if sum, err := Checksum(p.path); err == nil {
			res.Data["checksum"] = sum
		}
		return res, nil

	default:
		return nil, conversionRefused(p.path, prev, domain.FileStateFile)
	}
}

func applyLink(p *params, prev domain.FileState, opts domain.ActionOptions) (*domain.TaskResult, error) {
	switch prev {
	case domain.FileStateAbsent:
		return p.createLink(opts)

	case domain.FileStateLink:
		if p.state == domain.FileStateLink {
			return p.convergeSymlink(opts)
		}
		return p.replaceWithLink(opts)

	case domain.FileStateHard:
		if p.state == domain.FileStateHard {
			same, err := sameInode(p.src, p.path)
			if err != nil {
				return nil, err
			}
			if same {
				res := domain.OKResult("hard link already present")
				res.Data["state"] = string(domain.FileStateHard)
				res.Data["src"] = p.src
				res.Data["dest"] = p.path
				return res, nil
			}
		}
		return p.replaceWithLink(opts)

	default:
		return p.replaceWithLink(opts)
	}
}

// replaceWithLink removes a pre-existing node of a different type and
// creates the declared link. Without force this is a refused conversion.
func (p *params) replaceWithLink(opts domain.ActionOptions) (*domain.TaskResult, error) {
	if !p.force {
		prev, _ := DiscoverState(p.path)
		return nil, conversionRefused(p.path, prev, p.state)
	}
	if !opts.Check {
		if err := os.RemoveAll(p.path); err != nil {
			return nil, pathErr(err, "failed to unlink existing path", p.path)
		}
	}
	return p.createLink(opts)
}

func (p *params) createLink(opts domain.ActionOptions) (*domain.TaskResult, error) {
	if !opts.Check {
		var err error
		if p.state == domain.FileStateHard {
			err = os.Link(p.src, p.path)
		} else {
			err = os.Symlink(p.src, p.path)
		}
		if err != nil {
			return nil, pathErr(err, "failed to create link", p.path)
		}
		if _, err := p.attrs.applyToLink(p.path); err != nil {
			return nil, err
		}
	}

	res := domain.ChangedResult("link created")
	res.Data["state"] = string(p.state)
	res.Data["src"] = p.src
	res.Data["dest"] = p.path
	return res, nil
}

func (p *params) convergeSymlink(opts domain.ActionOptions) (*domain.TaskResult, error) {
	target, err := os.Readlink(p.path)
	if err != nil {
		return nil, pathErr(err, "failed to read link", p.path)
	}

	if target == p.src {
		res := domain.OKResult("link already points at src")
		res.Data["state"] = string(domain.FileStateLink)
		res.Data["src"] = p.src
		res.Data["dest"] = p.path
		return res, nil
	}

	if !opts.Check {
		if err := os.Remove(p.path); err != nil {
			return nil, pathErr(err, "failed to unlink existing link", p.path)
		}
		if err := os.Symlink(p.src, p.path); err != nil {
			return nil, pathErr(err, "failed to create link", p.path)
		}
	}

	res := domain.ChangedResult("link retargeted")
	res.Data["state"] = string(domain.FileStateLink)
	res.Data["src"] = p.src
	res.Data["dest"] = p.path
	return res, nil
}

// convergeAttrs applies attributes to the path, recursing when requested.
func (p *params) convergeAttrs(opts domain.ActionOptions) (bool, error) {
	changed, err := p.attrs.apply(p.path, opts.Check)
	if err != nil || !p.recurse {
		return changed, err
	}

	childChanged, err := p.attrs.applyRecursive(p.path, opts.Check)
	return changed || childChanged, err
}

func sameInode(a, b string) (bool, error) {
	fa, err := os.Stat(a)
	if err != nil {
		return false, pathErr(err, "failed to stat src", a)
	}
	fb, err := os.Lstat(b)
	if err != nil {
		return false, pathErr(err, "failed to stat dest", b)
	}
	return os.SameFile(fa, fb), nil
}

func conversionRefused(path string, from, to domain.FileState) error {
	err := zerr.With(domain.ErrConversionRefused, "path", path)
	err = zerr.With(err, "from", string(from))
	return zerr.With(err, "to", string(to))
}

func pathErr(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(err, msg), "path", path)
}
