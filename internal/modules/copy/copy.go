// Package copy implements the copy module: it places declared content
// or a local source file at a destination path, rewriting only when the
// content differs.
package copy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	"go.trai.ch/ply/internal/modules/file"
	"go.trai.ch/zerr"
)

// Module implements modules.Module for the "copy" action.
type Module struct{}

// New creates the copy module.
func New() *Module {
	return &Module{}
}

func init() {
	modules.Register(New())
}

// Name returns the module name.
func (m *Module) Name() string {
	return "copy"
}

type params struct {
	dest    string
	src     string
	content []byte
}

func parseParams(args domain.Vars) (*params, error) {
	p := &params{}

	dest, ok, err := modules.AliasedStringArg(args, "dest", "path")
	if err != nil {
		return nil, err
	}
	if !ok || dest == "" {
		return nil, domain.ErrPathRequired
	}
	p.dest = dest

	content, hasContent, err := modules.StringArg(args, "content")
	if err != nil {
		return nil, err
	}
	if p.src, _, err = modules.StringArg(args, "src"); err != nil {
		return nil, err
	}

	switch {
	case hasContent && p.src != "":
		return nil, zerr.With(domain.ErrModuleArgInvalid, "arg", "content and src are mutually exclusive")
	case hasContent:
		p.content = []byte(content)
	case p.src == "":
		return nil, zerr.With(domain.ErrSrcRequired, "dest", p.dest)
	}

	return p, nil
}

// Run writes the desired content to dest unless it already matches.
func (m *Module) Run(_ context.Context, args domain.Vars, opts domain.ActionOptions) (*domain.TaskResult, error) {
	p, err := parseParams(args)
	if err != nil {
		return nil, err
	}

	if p.src != "" {
		data, err := os.ReadFile(p.src) //nolint:gosec // declared source path
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read source"), "src", p.src)
		}
		p.content = data
	}

	dest, err := resolveDest(p)
	if err != nil {
		return nil, err
	}

	want := fmt.Sprintf("%016x", xxhash.Sum64(p.content))
	have, exists, err := destChecksum(dest)
	if err != nil {
		return nil, err
	}

	changed := !exists || have != want

	var before []byte
	if changed && opts.Diff && exists {
		if before, err = os.ReadFile(dest); err != nil { //nolint:gosec // declared target path
			return nil, zerr.With(zerr.Wrap(err, "failed to read destination"), "dest", dest)
		}
	}

	if changed && !opts.Check {
		if err := os.WriteFile(dest, p.content, 0o644); err != nil { //nolint:gosec // declared target path
			return nil, zerr.With(zerr.Wrap(err, "failed to write destination"), "dest", dest)
		}
	}

	attrsChanged := false
	if !opts.Check || exists {
		if attrsChanged, err = file.ApplyAttrs(dest, args, opts.Check); err != nil {
			return nil, err
		}
	}

	res := domain.OKResult("content already matches")
	switch {
	case changed:
		res = domain.ChangedResult("content written")
	case attrsChanged:
		res = domain.ChangedResult("attributes updated")
	}
	res.Data["dest"] = dest
	res.Data["checksum"] = want
	if changed && opts.Diff {
		res.Data["diff"] = map[string]any{"before": string(before), "after": string(p.content)}
	}
	return res, nil
}

// resolveDest maps a directory destination to a file inside it, using
// the source's basename. Content without a named file has nowhere to go.
func resolveDest(p *params) (string, error) {
	fi, err := os.Stat(p.dest)
	if err != nil || !fi.IsDir() {
		return p.dest, nil
	}
	if p.src == "" {
		return "", zerr.With(domain.ErrModuleArgInvalid, "arg", "content requires a file destination")
	}
	return filepath.Join(p.dest, filepath.Base(p.src)), nil
}

func destChecksum(dest string) (sum string, exists bool, err error) {
	if _, err := os.Lstat(dest); err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, "failed to stat destination"), "dest", dest)
	}
	sum, err = file.Checksum(dest)
	if err != nil {
		return "", true, err
	}
	return sum, true, nil
}
