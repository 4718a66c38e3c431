package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/preset"
)

func presetsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "presets",
		EnableShellCompletion: true,
		Usage:                 "List the available field and infrastructure presets",
		Description: `Prints the built-in preset catalog: raw-YAML workload presets usable with
'efctl generate field', and Helm wrapper presets usable with
'efctl generate infra'.

# Examples

List all presets:
  efctl presets

List presets as YAML:
  efctl presets --format yaml`,
		Flags: []cli.Flag{formatFlag, outputFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()

			catalog, err := preset.Load()
			if err != nil {
				return err
			}
			return writer.Serialize(catalog)
		},
	}
}
