package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	appName        = "efctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/endfield/endfield/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Root assembles the efctl command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:                  appName,
		EnableShellCompletion: true,
		Usage:                 "Provision Kubernetes projects from file-first manifests",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			scanCmd(),
			presetsCmd(),
			generateCmd(),
			applyCmd(),
			deleteCmd(),
			scaleCmd(),
			helmCmd(),
			routesCmd(),
			statusCmd(),
			watchCmd(),
			serveCmd(),
		},
	}
}

// Run executes the command tree against os.Args and returns the process
// exit code.
func Run(ctx context.Context) int {
	if err := Root().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
