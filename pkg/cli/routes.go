package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/field"
	"github.com/endfield/endfield/pkg/identity"
	"github.com/endfield/endfield/pkg/kube"
	"github.com/endfield/endfield/pkg/route"
)

func routesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "routes",
		EnableShellCompletion: true,
		Usage:                 "List, render and manage ingress routes",
		Commands: []*cli.Command{
			routesListCmd(),
			routesYAMLCmd(),
			routesApplyCmd(),
			routesDeleteCmd(),
			routesEdgesCmd(),
			routesControllerCmd(),
		},
	}
}

// newRegistry wires the file scanner and, when a cluster is reachable, the
// live discovery source. Without a cluster the registry serves file routes
// only.
func newRegistry() (*route.Registry, *kube.Client) {
	log := newLogger()
	client, err := kube.NewClient(log)
	var cluster route.ClusterSource
	if err != nil {
		log.Warn("no cluster configuration, listing file routes only", "error", err)
		cluster = noCluster{}
		client = nil
	} else {
		cluster = client
	}
	return route.NewRegistry(route.NewFileScanner(log), cluster, log), client
}

type noCluster struct{}

func (noCluster) DiscoverRoutes(context.Context) ([]route.DiscoveredRoute, error) {
	return nil, nil
}

func routesListCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List the merged route set of a project",
		Description: `Scans the project's manifest files for managed Ingress routes, merges in
the routes discovered from the cluster, and prints the result. When a
route exists both on disk and in the cluster, the file version wins;
cluster-only routes are appended in discovery order.

# Examples

List routes for the current project:
  efctl routes list

List as YAML:
  efctl routes list -p ./my-stack --format yaml`,
		Flags: []cli.Flag{projectFlag, formatFlag, outputFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry, _ := newRegistry()
			routes, err := registry.LoadRoutes(ctx, cmd.String("project"))
			if err != nil {
				return err
			}
			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()
			return writer.Serialize(struct {
				Routes []route.IngressRoute `json:"routes"`
			}{Routes: routes})
		},
	}
}

// routeFlags are the route-shape flags shared by 'routes yaml' and
// 'routes apply'.
func routeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "field",
			Required: true,
			Usage:    "Field id of the workload this route points at",
		},
		&cli.StringFlag{
			Name:     "service",
			Required: true,
			Usage:    "Target Service name",
		},
		&cli.StringFlag{
			Name:     "namespace",
			Required: true,
			Usage:    "Namespace of the target Service",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Hostname to match; empty matches every host",
		},
		&cli.StringFlag{
			Name:  "path",
			Value: "/",
			Usage: "HTTP path prefix to match",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Target Service port number; 0 falls back to 80 unless --port-name is set",
		},
		&cli.StringFlag{
			Name:  "port-name",
			Usage: "Target Service port name, used instead of a number",
		},
		&cli.StringFlag{
			Name:  "class",
			Value: "nginx",
			Usage: "IngressClass name",
		},
		&cli.StringFlag{
			Name:  "tls-secret",
			Usage: "TLS secret name; enables TLS together with --tls-host",
		},
		&cli.StringSliceFlag{
			Name:  "tls-host",
			Usage: "Hostname covered by the TLS secret (can be repeated)",
		},
		&cli.StringSliceFlag{
			Name:  "annotation",
			Usage: "Extra Ingress annotation (format: key=value, can be repeated)",
		},
	}
}

func routeFromFlags(cmd *cli.Command) (route.IngressRoute, error) {
	r := route.IngressRoute{
		RouteID:          identity.NewRouteID(),
		FieldID:          cmd.String("field"),
		TargetService:    cmd.String("service"),
		TargetNamespace:  cmd.String("namespace"),
		IngressNamespace: cmd.String("namespace"),
		Host:             cmd.String("host"),
		Path:             cmd.String("path"),
		PathType:         "Prefix",
		TargetPortNumber: int(cmd.Int("port")),
		TargetPortName:   cmd.String("port-name"),
		IngressClassName: cmd.String("class"),
		TLSSecret:        cmd.String("tls-secret"),
		TLSHosts:         cmd.StringSlice("tls-host"),
	}
	r.IngressName = identity.IngressNameForRoute(r.RouteID)
	for _, pair := range cmd.StringSlice("annotation") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return r, fmt.Errorf("invalid --annotation value %q, expected key=value", pair)
		}
		r.Annotations = append(r.Annotations, route.Annotation{Key: key, Value: value})
	}
	return r, nil
}

func routesYAMLCmd() *cli.Command {
	return &cli.Command{
		Name:                  "yaml",
		EnableShellCompletion: true,
		Usage:                 "Render the Ingress manifest for a new route",
		Description: `Generates the Ingress manifest for a route without touching the cluster.
Save the output into the project tree to make the route file-owned.

# Examples

Render a route and keep it in the project:
  efctl routes yaml --field web-web-deployment-0 --service web \
    --namespace apps --host web.example.com --port 8080 \
    > routes/web-route.yaml`,
		Flags: routeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := routeFromFlags(cmd)
			if err != nil {
				return err
			}
			fmt.Print(route.GenerateYAML(r))
			return nil
		},
	}
}

func routesApplyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Create a route directly in the cluster",
		Description: `Generates the Ingress manifest for a route and applies it. The target
namespace is created when missing.

# Examples

Expose a service on every host:
  efctl routes apply --field cache-redis-statefulset-0 \
    --service cache --namespace apps --port 6379`,
		Flags: routeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := routeFromFlags(cmd)
			if err != nil {
				return err
			}
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			result := client.ApplyRoute(ctx, r)
			if !result.Success {
				return fmt.Errorf("route apply failed: %s", strings.TrimSpace(result.Stderr))
			}
			fmt.Print(result.Stdout)
			return nil
		},
	}
}

func routesDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "delete",
		EnableShellCompletion: true,
		Usage:                 "Delete a managed Ingress from the cluster",
		Description: `Deletes one managed Ingress by name. An Ingress that is already gone
counts as deleted. Routes whose manifest lives in the project tree come
back on the next apply; delete the file to remove them for good.

# Examples

Delete a route:
  efctl routes delete ef-route-1a2b3c4d --namespace apps`,
		ArgsUsage: "<ingress-name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "namespace",
				Required: true,
				Usage:    "Namespace of the Ingress",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("missing ingress name argument")
			}
			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			return client.DeleteRoute(ctx, name, cmd.String("namespace"))
		},
	}
}

func routesEdgesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "edges",
		EnableShellCompletion: true,
		Usage:                 "Resolve routes against the project's fields",
		Description: `Loads the merged route set and the project's field set, and prints the
edges connecting them: one edge per route whose source field and target
service both resolve. Routes with an unresolved endpoint are valid but
produce no edge.

# Examples

Show the route edges of a project:
  efctl routes edges -p ./my-stack`,
		Flags: []cli.Flag{projectFlag, formatFlag, outputFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry, _ := newRegistry()
			projectPath := cmd.String("project")
			routes, err := registry.LoadRoutes(ctx, projectPath)
			if err != nil {
				return err
			}
			scan := field.Scan(projectPath)

			writer, err := newOutputWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()
			return writer.Serialize(struct {
				Edges []route.Edge `json:"edges"`
			}{Edges: route.ResolveEdges(scan.Fields, routes)})
		},
	}
}

func routesControllerCmd() *cli.Command {
	return &cli.Command{
		Name:                  "controller",
		EnableShellCompletion: true,
		Usage:                 "Detect the ingress controller installed by a Helm release",
		Description: `Looks up the IngressClass and controller Service created by an ingress
controller release, and reports the load balancer endpoint once one is
assigned.

# Examples

Check the ingress controller in the infra namespace:
  efctl routes controller --release ingress --namespace infra`,
		Flags: []cli.Flag{releaseFlag, helmNamespaceFlag, formatFlag, outputFlag},
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
			return writer.Serialize(client.DetectIngressController(ctx, cmd.String("namespace"), cmd.String("release")))
		},
	}
}
