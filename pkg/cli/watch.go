package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/watcher"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "watch",
		EnableShellCompletion: true,
		Usage:                 "Watch a project directory for manifest changes",
		Description: `Watches the project tree recursively and prints one line per YAML change.
Rapid bursts of writes to the same file collapse into a single event.
Generated directories (rendered/, charts/) and hidden directories are
ignored. Runs until interrupted.

# Examples

Watch the current project:
  efctl watch

Watch a specific project:
  efctl watch -p ./my-stack`,
		Flags: []cli.Flag{projectFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watcher.New(func(ev watcher.Event) {
				fmt.Printf("%s\t%s\n", ev.Kind, ev.Path)
			}, newLogger())
			if err := w.Watch(ctx, cmd.String("project")); err != nil {
				return err
			}
			defer w.Stop()

			<-ctx.Done()
			return nil
		},
	}
}
