package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/kube"
)

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:                  "status",
		EnableShellCompletion: true,
		Usage:                 "Report the live status of the cluster's workloads",
		Description: `Lists every Deployment and StatefulSet in the cluster with its ready and
desired replica counts, a readiness color, and its pods. An unreachable
cluster is reported as a status, not an error.

With --poll the command keeps running and prints a fresh snapshot every
interval until interrupted.

# Examples

One-shot status:
  efctl status

Poll every 10 seconds as YAML:
  efctl status --poll 10s --format yaml`,
		Flags: []cli.Flag{
			formatFlag,
			outputFlag,
			&cli.DurationFlag{
				Name:  "poll",
				Usage: "Keep polling at this interval instead of exiting after one snapshot",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()

			interval := cmd.Duration("poll")
			if interval <= 0 {
				return writer.Serialize(client.Status(ctx))
			}

			var serializeErr error
			poller := kube.NewStatusPoller(client, interval, func(status kube.ClusterStatus) {
				if err := writer.Serialize(status); err != nil && serializeErr == nil {
					serializeErr = err
				}
			}, newLogger())
			poller.Run(ctx)
			return serializeErr
		},
	}
}
