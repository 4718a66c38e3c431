package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/kube"
	"github.com/endfield/endfield/pkg/project"
)

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply a manifest file or directory to the cluster",
		Description: `Runs 'kubectl apply' for a file or, recursively, a directory. Uses the
kubeconfig resolved from $KUBECONFIG, ~/.kube/config, or the in-cluster
environment.

# Examples

Apply one file:
  efctl apply databases/db1-statefulset.yaml

Apply a whole project:
  efctl apply ./my-stack`,
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("missing path argument")
			}
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			out, err := client.Apply(ctx, path)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "delete",
		EnableShellCompletion: true,
		Usage:                 "Delete fields from the cluster and from disk",
		Description: `Deletes manifest files or component directories. By default each path is
first deleted from the cluster (best effort) and then removed from disk,
along with its parent directory when that becomes empty.

# Examples

Delete a field everywhere:
  efctl delete databases/db1-statefulset.yaml

Remove only the cluster resources, keep the files:
  efctl delete --mode cluster ./my-stack/cache

Remove only the files:
  efctl delete --mode disk databases/db1-secret.yaml`,
		ArgsUsage: "<path>...",
		Flags: []cli.Flag{
			formatFlag,
			outputFlag,
			&cli.StringFlag{
				Name:  "mode",
				Value: string(project.DeleteEverywhere),
				Usage: "Deletion scope: everywhere, cluster, or disk",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("missing path arguments")
			}
			mode := project.DeleteMode(cmd.String("mode"))
			switch mode {
			case project.DeleteEverywhere, project.DeleteClusterOnly, project.DeleteDiskOnly:
			default:
				return fmt.Errorf("invalid --mode value: %q (must be everywhere, cluster, or disk)", mode)
			}

			var client *kube.Client
			if mode != project.DeleteDiskOnly {
				var err error
				client, err = kube.NewClient(newLogger())
				if err != nil {
					return err
				}
			}

			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()
			return writer.Serialize(project.Delete(ctx, client, paths, mode))
		},
	}
}

func scaleCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scale",
		EnableShellCompletion: true,
		Usage:                 "Change the replica count of a workload in its manifest file",
		Description: `Rewrites the replicas line of the named workload inside a manifest file,
preserving the rest of the file byte for byte, then applies the file to
the cluster. With --no-apply only the file is changed.

# Examples

Scale a deployment to 3 replicas:
  efctl scale --file services/web-deployment.yaml --name web --replicas 3

Edit the file without touching the cluster:
  efctl scale --file services/web-deployment.yaml --name web --replicas 0 --no-apply`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Required: true,
				Usage:    "Manifest file holding the workload",
			},
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Workload name as it appears in metadata.name",
			},
			&cli.IntFlag{
				Name:     "replicas",
				Required: true,
				Usage:    "New replica count",
			},
			&cli.BoolFlag{
				Name:  "no-apply",
				Usage: "Only edit the file, do not apply it to the cluster",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filePath := cmd.String("file")
			if err := project.PatchReplicas(filePath, cmd.String("name"), int(cmd.Int("replicas"))); err != nil {
				return err
			}
			if cmd.Bool("no-apply") {
				return nil
			}
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			out, err := client.Apply(ctx, filePath)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
