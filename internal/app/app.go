// Package app implements the application layer for ply: it ties the
// playbook loader, inventory source and runner together and maps run
// outcomes to the sentinel errors the CLI turns into exit codes.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/ply/internal/adapters/config"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/ply/internal/engine/runner"
	"go.trai.ch/zerr"
)

// defaultInventory is used when neither -i nor the defaults file name
// an inventory.
const defaultInventory = "hosts"

// Options carries one invocation's settings, resolved from flags.
type Options struct {
	// Playbooks are the playbook paths, run in order. Required.
	Playbooks []string
	// Inventory overrides the inventory path.
	Inventory string
	// ExtraVars is the highest-precedence variable layer.
	ExtraVars domain.Vars
	// OnlyTags and SkipTags filter tasks.
	OnlyTags []string
	SkipTags []string
	// Limit restricts hosts.
	Limit string
	// Forks overrides the concurrency cap. Zero keeps the default.
	Forks int
	// Check and Diff select dry-run behavior.
	Check bool
	Diff  bool
	// Step prompts before each task.
	Step bool
	// StartAtTask skips tasks until the named one.
	StartAtTask string
	// SyntaxCheck validates the playbook and stops.
	SyntaxCheck bool
	// ListTasks prints the selected tasks and stops.
	ListTasks bool
	// ListHosts prints the matched hosts and stops.
	ListHosts bool
	// NoColor disables recap styling.
	NoColor bool
}

// App wires the ports together for one CLI invocation.
type App struct {
	loader    ports.PlaybookLoader
	inventory ports.InventorySource
	retry     ports.RetryWriter
	runner    *runner.Runner
	logger    ports.Logger
	defaults  *config.Defaults

	out io.Writer
}

// New creates the application. Recap and listing output go to stdout.
func New(loader ports.PlaybookLoader, inventory ports.InventorySource, retry ports.RetryWriter, run *runner.Runner, logger ports.Logger, defaults *config.Defaults) *App {
	return &App{
		loader:    loader,
		inventory: inventory,
		retry:     retry,
		runner:    run,
		logger:    logger,
		defaults:  defaults,
		out:       os.Stdout,
	}
}

// SetOutput redirects recap and listing output. Used by tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes a playbook invocation. Returns domain.ErrHostsFailed or
// domain.ErrHostsUnreachable when hosts went dark, so the CLI can exit
// 2 or 3 respectively.
func (a *App) Run(ctx context.Context, opts Options) error {
	// Load every playbook up front so a bad path fails before any
	// play mutates a host.
	pbs := make([]*domain.Playbook, 0, len(opts.Playbooks))
	for _, path := range opts.Playbooks {
		pb, err := a.loader.Load(path)
		if err != nil {
			return err
		}
		pbs = append(pbs, pb)
	}

	if opts.SyntaxCheck {
		for _, pb := range pbs {
			fmt.Fprintf(a.out, "playbook: %s\n", pb.Path)
		}
		return nil
	}
	if opts.ListTasks {
		for _, pb := range pbs {
			a.listTasks(pb, opts)
		}
		return nil
	}

	limit, err := resolveLimit(opts.Limit)
	if err != nil {
		return err
	}
	opts.Limit = limit

	inv, err := a.inventory.Load(a.inventoryPath(opts))
	if err != nil {
		return err
	}

	if opts.ListHosts {
		for _, pb := range pbs {
			if err := a.listHosts(pb, inv, opts); err != nil {
				return err
			}
		}
		return nil
	}

	worst := 0
	for _, pb := range pbs {
		stats, err := a.runner.Run(ctx, pb, inv, a.runnerOptions(opts))
		if err != nil {
			return err
		}

		runner.NewRecap(a.out, a.colorEnabled(opts)).Print(stats)
		a.writeRetry(pb, stats)

		switch code := stats.ExitCode(); {
		case code == 2:
			worst = 2
		case code == 3 && worst != 2:
			worst = 3
		}
	}

	switch worst {
	case 2:
		return domain.ErrHostsFailed
	case 3:
		return domain.ErrHostsUnreachable
	default:
		return nil
	}
}

func (a *App) runnerOptions(opts Options) runner.Options {
	forks := opts.Forks
	if forks <= 0 {
		forks = a.defaults.Forks
	}
	return runner.Options{
		OnlyTags:    opts.OnlyTags,
		SkipTags:    opts.SkipTags,
		Limit:       opts.Limit,
		Forks:       forks,
		Check:       opts.Check,
		Diff:        opts.Diff,
		Step:        opts.Step,
		StartAtTask: opts.StartAtTask,
		ExtraVars:   opts.ExtraVars,
		Timeout:     a.defaults.Timeout(),
	}
}

// resolveLimit expands an @file limit into the comma-separated host
// list it contains, matching the hint printed after a failed run.
func resolveLimit(limit string) (string, error) {
	if !strings.HasPrefix(limit, "@") {
		return limit, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(limit, "@")) //nolint:gosec // operator-supplied path
	if err != nil {
		return "", zerr.With(domain.ErrInventoryNotFound, "limit", limit)
	}
	return strings.Join(strings.Fields(string(data)), ","), nil
}

func (a *App) inventoryPath(opts Options) string {
	switch {
	case opts.Inventory != "":
		return opts.Inventory
	case a.defaults.Inventory != "":
		return a.defaults.Inventory
	default:
		return defaultInventory
	}
}

func (a *App) colorEnabled(opts Options) bool {
	if opts.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return a.defaults.Color != "never"
}

// writeRetry persists the failed host list next to the playbook. A
// write failure downgrades to a warning: the recap already happened.
func (a *App) writeRetry(pb *domain.Playbook, stats *domain.RunStats) {
	failed := stats.FailedHosts()
	if len(failed) == 0 {
		return
	}
	path, err := a.retry.Write(pb.Path, failed)
	if err != nil {
		a.logger.Warn("could not write retry inventory: " + err.Error())
		return
	}
	a.logger.Info("to retry, use: --limit @" + path)
}

// listTasks prints the tasks the tag filters would select, per play.
func (a *App) listTasks(pb *domain.Playbook, opts Options) {
	only := domain.NewTagSet(opts.OnlyTags...)
	if only.Len() == 0 {
		only = domain.NewTagSet(domain.TagAll)
	}
	skip := domain.NewTagSet(opts.SkipTags...)

	for i := range pb.Plays {
		play := &pb.Plays[i]
		fmt.Fprintf(a.out, "play #%d (%s):\n", i+1, playTitle(play))
		for t := range play.Tasks {
			task := &play.Tasks[t]
			if !task.EffectiveTags(play).Matches(only, skip) {
				continue
			}
			if names := task.Tags.Names(); len(names) > 0 {
				fmt.Fprintf(a.out, "  %s\tTAGS: [%s]\n", taskTitle(task), strings.Join(names, ", "))
			} else {
				fmt.Fprintf(a.out, "  %s\n", taskTitle(task))
			}
		}
	}
}

// listHosts prints the hosts each play would target.
func (a *App) listHosts(pb *domain.Playbook, inv *domain.Inventory, opts Options) error {
	for i := range pb.Plays {
		play := &pb.Plays[i]
		hosts := inv.Restrict(inv.Match(play.Hosts), opts.Limit)
		if len(hosts) == 0 {
			return zerr.With(domain.ErrNoHostsMatched, "pattern", play.Hosts)
		}
		fmt.Fprintf(a.out, "play #%d (%s): host count=%d\n", i+1, playTitle(play), len(hosts))
		for _, h := range hosts {
			fmt.Fprintf(a.out, "  %s\n", h.Name.String())
		}
	}
	return nil
}

func playTitle(play *domain.Play) string {
	if play.Name != "" {
		return play.Name
	}
	return play.Hosts
}

func taskTitle(task *domain.Task) string {
	if task.Name != "" {
		return task.Name
	}
	return task.Action.Module
}
