package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/logging"
	"github.com/endfield/endfield/pkg/preset"
	"github.com/endfield/endfield/pkg/serializer"
)

// projectFlag is shared by every command that operates on a project
// directory.
var projectFlag = &cli.StringFlag{
	Name:    "project",
	Aliases: []string{"p"},
	Value:   ".",
	Usage:   "Project directory holding the manifest tree",
}

// formatFlag selects the output encoding for structured results.
var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "json",
	Usage:   "Output format: json or yaml",
}

// outputFlag redirects structured results to a file instead of stdout.
var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Value:   "-",
	Usage:   "Output file path, or '-' for stdout",
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: json, yaml", outFormat)
	}
	return outFormat, nil
}

// newOutputWriter builds a serializer writer from the shared format and
// output flags. The caller owns Close.
func newOutputWriter(cmd *cli.Command) (*serializer.Writer, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}
	return serializer.NewFileWriterOrStdout(format, cmd.String("output"))
}

// parseEnvVars turns repeated KEY=VALUE flags into environment variable
// pairs.
func parseEnvVars(pairs []string) ([]preset.EnvVar, error) {
	var out []preset.EnvVar
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env value %q, expected KEY=VALUE", pair)
		}
		out = append(out, preset.EnvVar{Key: key, Value: value})
	}
	return out, nil
}

// newLogger returns a structured logger for command execution. Commands
// log to stderr so stdout stays clean for serialized output.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	}))
}
