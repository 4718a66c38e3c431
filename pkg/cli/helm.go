package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/kube"
)

func helmCmd() *cli.Command {
	return &cli.Command{
		Name:                  "helm",
		EnableShellCompletion: true,
		Usage:                 "Render and manage Helm wrapper components",
		Commands: []*cli.Command{
			helmTemplateCmd(),
			helmInstallCmd(),
			helmUninstallCmd(),
		},
	}
}

var (
	releaseFlag = &cli.StringFlag{
		Name:     "release",
		Aliases:  []string{"r"},
		Required: true,
		Usage:    "Helm release name",
	}
	helmNamespaceFlag = &cli.StringFlag{
		Name:     "namespace",
		Required: true,
		Usage:    "Target namespace of the release",
	}
	valuesFlag = &cli.StringFlag{
		Name:  "values",
		Usage: "Values file passed to helm; empty uses the component's helm/values.yaml",
	}
)

func helmTemplateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "template",
		EnableShellCompletion: true,
		Usage:                 "Render a wrapper component into its rendered/ directory",
		Description: `Updates the wrapper chart's dependencies, renders it with
'helm template --include-crds', splits the output into one file per
resource and writes the files into the component's rendered/ directory
in apply order. Previously rendered files are replaced.

# Examples

Render the ingress component:
  efctl helm template ./my-stack/ingress --release ingress --namespace infra

Render with production values:
  efctl helm template ./my-stack/monitoring --release monitoring \
    --namespace monitoring --values ./my-stack/monitoring/helm/values.prod.yaml`,
		ArgsUsage: "<component-dir>",
		Flags:     []cli.Flag{releaseFlag, helmNamespaceFlag, valuesFlag, formatFlag, outputFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			componentDir := cmd.Args().First()
			if componentDir == "" {
				return fmt.Errorf("missing component directory argument")
			}
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()

			result := client.HelmTemplate(ctx, componentDir, cmd.String("release"), cmd.String("namespace"), cmd.String("values"))
			if err := writer.Serialize(result); err != nil {
				return err
			}
			if result.Error != "" {
				return fmt.Errorf("helm template failed: %s", result.Error)
			}
			return nil
		},
	}
}

func helmInstallCmd() *cli.Command {
	return &cli.Command{
		Name:                  "install",
		EnableShellCompletion: true,
		Usage:                 "Install or upgrade a wrapper component release",
		Description: `Runs 'helm upgrade --install --create-namespace' for a wrapper component.
The command returns as soon as the release is recorded; it does not wait
for the workloads to become ready.

# Examples

Install the ingress component:
  efctl helm install ./my-stack/ingress --release ingress --namespace infra`,
		ArgsUsage: "<component-dir>",
		Flags:     []cli.Flag{releaseFlag, helmNamespaceFlag, valuesFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			componentDir := cmd.Args().First()
			if componentDir == "" {
				return fmt.Errorf("missing component directory argument")
			}
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			out, err := client.HelmInstall(ctx, componentDir, cmd.String("release"), cmd.String("namespace"), cmd.String("values"))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func helmUninstallCmd() *cli.Command {
	return &cli.Command{
		Name:                  "uninstall",
		EnableShellCompletion: true,
		Usage:                 "Uninstall a wrapper component release",
		Description: `Runs 'helm uninstall --ignore-not-found' for a release. A release that
is already gone counts as success.

# Examples

Remove the monitoring release:
  efctl helm uninstall --release monitoring --namespace monitoring`,
		Flags: []cli.Flag{releaseFlag, helmNamespaceFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			out, err := client.HelmUninstall(ctx, cmd.String("release"), cmd.String("namespace"))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
