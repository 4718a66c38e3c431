package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/api"
	"github.com/endfield/endfield/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the local HTTP API",
		Description: `Starts the HTTP API the visual editor talks to. The listener binds
loopback only. Cluster-backed endpoints answer 503 when no kubeconfig
resolves; project and generation endpoints keep working.

Runs until interrupted, then shuts down gracefully.

# Examples

Serve on the default port (7466):
  efctl serve

Serve on another port:
  efctl serve --port 8090

Environment variables:
  PORT       Overrides the listen port
  LOG_LEVEL  debug, info, warn, or error (default: info)`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port; 0 keeps the default or $PORT",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			if port := int(cmd.Int("port")); port > 0 {
				cfg.Port = port
			}
			return api.Serve(cfg)
		},
	}
}
