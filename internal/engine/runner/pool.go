package runner

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// runTaskOnHosts executes one task on every host concurrently, bounded
// by the forks limit, and returns the hosts that reported a change.
// Failures never surface as errors here: they are recorded per host.
func (r *Runner) runTaskOnHosts(ctx context.Context, task *domain.Task, play *domain.Play, hosts []*domain.Host, stats *domain.RunStats, opts Options, vopts ...ports.VertexOption) []domain.InternedString {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Forks)

	var mu sync.Mutex
	var changed []domain.InternedString
	for _, host := range hosts {
		g.Go(func() error {
			res := r.runOnHost(gctx, task, host, play, opts, vopts...)
			stats.Record(res)
			r.report(res)
			if res.Changed() {
				mu.Lock()
				changed = append(changed, host.Name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers report through stats, never errors

	return changed
}

// runOnHost executes one task on one host, wrapping it in a telemetry
// vertex and applying the ignore_errors downgrade.
func (r *Runner) runOnHost(ctx context.Context, task *domain.Task, host *domain.Host, play *domain.Play, opts Options, vopts ...ports.VertexOption) *domain.TaskResult {
	label := fmt.Sprintf("%s [%s]", taskLabel(task), host.Name.String())
	vctx, vertex := r.telemetry.Record(ctx, label, vopts...)

	res := r.execute(vctx, task, host, play, opts)
	res.Host = host.Name

	if res.Failed() && task.IgnoreErrors {
		res.Status = domain.StatusOK
		res.Msg = "failed but ignored: " + res.Msg
	}

	if s, ok := res.Data["stderr"].(string); ok && s != "" {
		_, _ = io.WriteString(vertex.Stderr(), s)
	}

	switch res.Status {
	case domain.StatusFailed, domain.StatusUnreachable:
		vertex.Complete(zerr.New(res.Msg))
	default:
		vertex.Complete(nil)
	}
	return res
}

// execute resolves variables, opens a session and runs the action.
// Transport errors become unreachable results, module errors failed
// results.
func (r *Runner) execute(ctx context.Context, task *domain.Task, host *domain.Host, play *domain.Play, opts Options) *domain.TaskResult {
	vars := domain.MergeVars(host.Vars, play.Vars, opts.ExtraVars)
	args, err := vars.InterpolateArgs(task.Action.Args)
	if err != nil {
		return failedResult(host, err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	sess, err := r.transport.Connect(ctx, host)
	if err != nil {
		return &domain.TaskResult{
			Host:   host.Name,
			Status: domain.StatusUnreachable,
			Msg:    err.Error(),
			Data:   map[string]any{},
		}
	}
	defer sess.Close() //nolint:errcheck // best effort close in defer

	res, err := sess.Run(ctx, domain.Action{Module: task.Action.Module, Args: args}, domain.ActionOptions{
		Check: opts.Check,
		Diff:  opts.Diff,
	})
	if err != nil {
		return failedResult(host, err)
	}
	return res
}

// report writes the per-host outcome line.
func (r *Runner) report(res *domain.TaskResult) {
	host := res.Host.String()
	switch res.Status {
	case domain.StatusFailed:
		r.logger.Error(zerr.With(zerr.New("failed: "+res.Msg), "host", host))
	case domain.StatusUnreachable:
		r.logger.Error(zerr.With(zerr.New("unreachable: "+res.Msg), "host", host))
	case domain.StatusSkipped:
		r.logger.Info(fmt.Sprintf("skipping: [%s]", host))
	case domain.StatusChanged:
		r.logger.Info(fmt.Sprintf("changed: [%s]", host))
	default:
		r.logger.Info(fmt.Sprintf("ok: [%s]", host))
	}
}

func failedResult(host *domain.Host, err error) *domain.TaskResult {
	return &domain.TaskResult{
		Host:   host.Name,
		Status: domain.StatusFailed,
		Msg:    err.Error(),
		Data:   map[string]any{},
	}
}
