// Package main is the entry point for the ply playbook runner.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/ply/cmd/ply/commands"
	"go.trai.ch/ply/internal/app"
	"go.trai.ch/ply/internal/core/domain"
	_ "go.trai.ch/ply/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and maps the outcome to the process exit code:
// 0 on success, 2 when hosts failed, 3 when hosts were only
// unreachable, 1 for everything else.
func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, domain.ErrHostsFailed):
			return 2
		case errors.Is(err, domain.ErrHostsUnreachable):
			return 3
		case errors.Is(err, domain.ErrRunAborted):
			components.Logger.Warn(err.Error())
			return 1
		default:
			components.Logger.Error(err)
			return 1
		}
	}
	return 0
}
