// Package runner executes playbooks: it resolves each play's hosts,
// filters tasks by tags, fans task execution out across hosts and
// fires notified handlers after the play body.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options carries the run-mode settings resolved from flags and the
// defaults file.
type Options struct {
	// OnlyTags selects tasks whose tags intersect it. Empty means all.
	OnlyTags []string
	// SkipTags removes tasks whose tags intersect it.
	SkipTags []string
	// Limit restricts play hosts to the ones matching this pattern.
	Limit string
	// Forks caps per-task host concurrency.
	Forks int
	// Check runs every module in dry-run mode.
	Check bool
	// Diff asks modules for content diffs.
	Diff bool
	// Step prompts before each task.
	Step bool
	// StartAtTask skips tasks until the named one is reached.
	StartAtTask string
	// ExtraVars is the highest-precedence variable layer.
	ExtraVars domain.Vars
	// Timeout bounds a single task execution, zero meaning unbounded.
	Timeout time.Duration
}

const defaultForks = 5

// Runner drives playbook execution over a transport.
type Runner struct {
	transport ports.Transport
	logger    ports.Logger
	telemetry ports.Telemetry
	prompter  *prompter
}

// New creates a runner. Step prompts default to stdin/stderr.
func New(transport ports.Transport, logger ports.Logger, telemetry ports.Telemetry) *Runner {
	return &Runner{
		transport: transport,
		logger:    logger,
		telemetry: telemetry,
		prompter:  newPrompter(),
	}
}

// Run executes the playbook against the inventory and returns the
// accumulated statistics. Host failures do not abort the run: they are
// folded into the stats, and the caller classifies the outcome via
// stats.ExitCode.
func (r *Runner) Run(ctx context.Context, pb *domain.Playbook, inv *domain.Inventory, opts Options) (*domain.RunStats, error) {
	if opts.Forks <= 0 {
		opts.Forks = defaultForks
	}
	only := domain.NewTagSet(opts.OnlyTags...)
	if only.Len() == 0 {
		only = domain.NewTagSet(domain.TagAll)
	}
	skip := domain.NewTagSet(opts.SkipTags...)

	stats := domain.NewRunStats()
	stepping := opts.Step
	started := opts.StartAtTask == ""
	startFound := started

	for i := range pb.Plays {
		play := &pb.Plays[i]

		hosts := inv.Restrict(inv.Match(play.Hosts), opts.Limit)
		if len(hosts) == 0 {
			return stats, zerr.With(domain.ErrNoHostsMatched, "pattern", play.Hosts)
		}
		for _, h := range hosts {
			stats.Touch(h.Name)
		}
		r.logger.Info(fmt.Sprintf("PLAY [%s]", playLabel(play)))

		// Handler name to the set of hosts whose notifying task changed.
		notified := make(map[string]map[domain.InternedString]bool)

		for t := range play.Tasks {
			task := &play.Tasks[t]

			if !started {
				if task.Name != opts.StartAtTask {
					continue
				}
				started = true
				startFound = true
			}
			if !task.EffectiveTags(play).Matches(only, skip) {
				continue
			}

			if stepping {
				proceed, stop, err := r.prompter.ask(task.Name)
				if err != nil {
					return stats, err
				}
				if stop {
					stepping = false
				}
				if !proceed {
					continue
				}
			}

			active := activeHosts(hosts, stats)
			if len(active) == 0 {
				break
			}

			r.logger.Info(fmt.Sprintf("TASK [%s]", taskLabel(task)))
			changed := r.runTaskOnHosts(ctx, task, play, active, stats, opts)
			for _, name := range task.Notify {
				if notified[name] == nil {
					notified[name] = make(map[domain.InternedString]bool)
				}
				for _, h := range changed {
					notified[name][h] = true
				}
			}
		}

		r.runHandlers(ctx, play, hosts, notified, stats, opts)
	}

	if !startFound {
		return stats, zerr.With(domain.ErrStartTaskNotFound, "task", opts.StartAtTask)
	}
	return stats, nil
}

// runHandlers fires the play's notified handlers, in definition order,
// on the hosts whose notifying task reported a change and that are
// still active after the play body.
func (r *Runner) runHandlers(ctx context.Context, play *domain.Play, hosts []*domain.Host, notified map[string]map[domain.InternedString]bool, stats *domain.RunStats, opts Options) {
	for i := range play.Handlers {
		handler := &play.Handlers[i]
		if len(notified[handler.Name]) == 0 {
			continue
		}
		var targets []*domain.Host
		for _, h := range activeHosts(hosts, stats) {
			if notified[handler.Name][h.Name] {
				targets = append(targets, h)
			}
		}
		if len(targets) == 0 {
			continue
		}
		r.logger.Info(fmt.Sprintf("RUNNING HANDLER [%s]", handler.Name))
		r.runTaskOnHosts(ctx, handler, play, targets, stats, opts, ports.WithInternal())
	}
}

// activeHosts filters out hosts that have gone dark (failed or
// unreachable earlier in the run).
func activeHosts(hosts []*domain.Host, stats *domain.RunStats) []*domain.Host {
	out := make([]*domain.Host, 0, len(hosts))
	for _, h := range hosts {
		if !stats.Dark(h.Name) {
			out = append(out, h)
		}
	}
	return out
}

func playLabel(play *domain.Play) string {
	if play.Name != "" {
		return play.Name
	}
	return play.Hosts
}

func taskLabel(task *domain.Task) string {
	if task.Name != "" {
		return task.Name
	}
	return task.Action.Module
}
