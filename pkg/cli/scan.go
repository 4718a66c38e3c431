package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/field"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scan",
		EnableShellCompletion: true,
		Usage:                 "Scan a project directory and list its fields",
		Description: `Walks the project directory, parses every YAML manifest and Helm wrapper
component it finds, and prints the resulting field list. A field is one
deployable unit: a workload document in a raw manifest, or a Helm wrapper
component directory.

Generated directories (rendered/, charts/, node_modules/, vendor/) are
skipped. Files that fail to parse are reported in the errors list without
aborting the scan.

# Examples

Scan the current directory:
  efctl scan

Scan a specific project as YAML:
  efctl scan --project ./my-stack --format yaml

Write the scan result to a file:
  efctl scan -p ./my-stack -o fields.json`,
		Flags: []cli.Flag{projectFlag, formatFlag, outputFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()

			result := field.Scan(cmd.String("project"))
			return writer.Serialize(result)
		},
	}
}
