// Package command implements the command and shell modules. Both run a
// program on the host; shell routes it through /bin/sh so redirects and
// pipes work, command executes the argv directly.
package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	"go.trai.ch/zerr"
)

// Module implements modules.Module for the "command" and "shell" actions.
type Module struct {
	name      string
	viaShell  bool
	shellPath string
}

// NewCommand creates the command module.
func NewCommand() *Module {
	return &Module{name: "command"}
}

// NewShell creates the shell module.
func NewShell() *Module {
	return &Module{name: "shell", viaShell: true, shellPath: "/bin/sh"}
}

func init() {
	modules.Register(NewCommand())
	modules.Register(NewShell())
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

type params struct {
	cmd     string
	argv    []string
	chdir   string
	creates string
	removes string
}

func (m *Module) parseParams(args domain.Vars) (*params, error) {
	p := &params{}

	var err error
	if p.cmd, _, err = modules.StringArg(args, "cmd"); err != nil {
		return nil, err
	}
	if raw, ok := args["argv"]; ok {
		if p.argv, err = stringSlice(raw); err != nil {
			return nil, err
		}
	}
	if p.chdir, _, err = modules.StringArg(args, "chdir"); err != nil {
		return nil, err
	}
	if p.creates, _, err = modules.StringArg(args, "creates"); err != nil {
		return nil, err
	}
	if p.removes, _, err = modules.StringArg(args, "removes"); err != nil {
		return nil, err
	}

	switch {
	case p.cmd != "" && len(p.argv) > 0:
		return nil, zerr.With(domain.ErrModuleArgInvalid, "arg", "cmd and argv are mutually exclusive")
	case p.cmd == "" && len(p.argv) == 0:
		return nil, zerr.With(domain.ErrModuleArgInvalid, "arg", "cmd")
	case m.viaShell && len(p.argv) > 0:
		return nil, zerr.With(domain.ErrModuleArgInvalid, "arg", "argv is not supported by the shell module")
	}

	return p, nil
}

// Run executes the command. A non-zero exit is reported as a failed
// result with the captured output, not as an error.
func (m *Module) Run(ctx context.Context, args domain.Vars, opts domain.ActionOptions) (*domain.TaskResult, error) {
	p, err := m.parseParams(args)
	if err != nil {
		return nil, err
	}

	if skip, msg := p.guarded(); skip {
		return domain.SkippedResult(msg), nil
	}
	if opts.Check {
		return domain.SkippedResult("command skipped in check mode"), nil
	}

	cmd, err := m.build(ctx, p)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	rc := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, zerr.With(zerr.Wrap(err, "failed to start command"), "cmd", p.display())
		}
		rc = exitErr.ExitCode()
	}

	res := domain.ChangedResult(strings.TrimRight(stdout.String(), "\n"))
	if rc != 0 {
		res = &domain.TaskResult{
			Status: domain.StatusFailed,
			Msg:    "non-zero return code",
			Data:   map[string]any{},
		}
	}
	res.Data["rc"] = rc
	res.Data["stdout"] = stdout.String()
	res.Data["stderr"] = stderr.String()
	return res, nil
}

func (m *Module) build(ctx context.Context, p *params) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch {
	case m.viaShell:
		cmd = exec.CommandContext(ctx, m.shellPath, "-c", p.cmd) //nolint:gosec // declared task command
	case len(p.argv) > 0:
		cmd = exec.CommandContext(ctx, p.argv[0], p.argv[1:]...) //nolint:gosec // declared task command
	default:
		fields := strings.Fields(p.cmd)
		cmd = exec.CommandContext(ctx, fields[0], fields[1:]...) //nolint:gosec // declared task command
	}
	cmd.Dir = p.chdir
	return cmd, nil
}

// guarded implements the creates/removes idempotence guards.
func (p *params) guarded() (bool, string) {
	if p.creates != "" {
		if _, err := os.Stat(p.creates); err == nil {
			return true, "skipped, path already exists"
		}
	}
	if p.removes != "" {
		if _, err := os.Stat(p.removes); err != nil {
			return true, "skipped, path does not exist"
		}
	}
	return false, ""
}

func (p *params) display() string {
	if p.cmd != "" {
		return p.cmd
	}
	return strings.Join(p.argv, " ")
}

func stringSlice(raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, zerr.With(domain.ErrModuleArgInvalid, "arg", "argv")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, zerr.With(domain.ErrModuleArgInvalid, "arg", "argv")
		}
		out = append(out, s)
	}
	return out, nil
}
