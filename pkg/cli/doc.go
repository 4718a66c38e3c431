// Package cli implements the command-line interface for the efctl tool.
//
// # Overview
//
// The efctl CLI drives the file-first provisioning workflow: generating
// manifests from presets into a project directory, applying them to a
// cluster, and inspecting what runs. Every generated resource lives as a
// plain YAML file the user owns; the cluster is a projection of the
// project tree, never the other way around.
//
// # Commands
//
// scan - Discover the fields of a project:
//
//	efctl scan [--project DIR] [--format json|yaml]
//
// Walks the project tree, parses raw manifests and Helm wrapper components,
// and lists the resulting deployable fields with their images, namespaces
// and replica counts.
//
// generate - Synthesize manifests from presets:
//
//	efctl generate field --type postgres --name db1 --namespace ns1
//	efctl generate infra --type ingress-nginx --release ingress
//	efctl generate image --name web --image nginx:1.27 --port 80 [--apply]
//
// 'field' renders a raw-YAML workload preset, 'infra' scaffolds a Helm
// wrapper component pinning an upstream chart, and 'image' produces
// manifests for an ad-hoc container image.
//
// apply / delete / scale - Manage fields:
//
//	efctl apply <path>
//	efctl delete <path>... [--mode everywhere|cluster|disk]
//	efctl scale --file FILE --name NAME --replicas N
//
// helm - Render and manage wrapper components:
//
//	efctl helm template <component-dir> --release NAME --namespace NS
//	efctl helm install <component-dir> --release NAME --namespace NS
//	efctl helm uninstall --release NAME --namespace NS
//
// routes - Manage ingress routes:
//
//	efctl routes list [--project DIR]
//	efctl routes yaml --field ID --service SVC --namespace NS [--host H]
//	efctl routes apply --field ID --service SVC --namespace NS
//	efctl routes delete <ingress-name> --namespace NS
//	efctl routes edges [--project DIR]
//	efctl routes controller --release NAME --namespace NS
//
// Routes found in project files take precedence over routes discovered
// from the cluster; cluster-only routes are appended in discovery order.
//
// status / watch / serve - Observe and serve:
//
//	efctl status [--poll DURATION]
//	efctl watch [--project DIR]
//	efctl serve [--port N]
//
// # Global Flags
//
//	--format, -f   Output format: json, yaml (default: json)
//	--output, -o   Output file path, or '-' for stdout
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL   Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG  Path to kubeconfig file
//	PORT        Listen port for 'efctl serve'
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/field - Project scanning and field discovery
//   - pkg/synth - Manifest synthesis from presets
//   - pkg/route - Route registry, Ingress generation and edge resolution
//   - pkg/kube - Cluster client, kubectl/helm subprocess execution
//   - pkg/project - File persistence, deletion and layout storage
//   - pkg/watcher - Debounced project file watching
//   - pkg/api - The HTTP surface behind 'efctl serve'
//   - pkg/serializer - Output formatting
package cli
