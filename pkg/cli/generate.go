package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/endfield/endfield/pkg/kube"
	"github.com/endfield/endfield/pkg/preset"
	"github.com/endfield/endfield/pkg/project"
	"github.com/endfield/endfield/pkg/synth"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		EnableShellCompletion: true,
		Usage:                 "Generate manifests from presets into the project tree",
		Commands: []*cli.Command{
			generateFieldCmd(),
			generateInfraCmd(),
			generateImageCmd(),
		},
	}
}

func generateFieldCmd() *cli.Command {
	return &cli.Command{
		Name:                  "field",
		EnableShellCompletion: true,
		Usage:                 "Generate a raw-YAML workload from a preset",
		Description: `Synthesizes the full manifest file set for one workload preset and writes
it into the project directory. Depending on the preset this produces a
namespace, deployment or statefulset, service, secret, configmap and
persistent volume claim, laid out under the preset's folder.

The same name and preset always produce the same files; regeneration
overwrites them in place.

# Examples

Generate a PostgreSQL instance:
  efctl generate field --type postgres --name db1 --namespace ns1

Generate with an explicit port and environment:
  efctl generate field --type redis --name cache1 \
    --port 6380 --env REDIS_PASSWORD=changeme`,
		Flags: []cli.Flag{
			projectFlag,
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Required: true,
				Usage:    "Preset type id (see 'efctl presets')",
			},
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Workload name; also used in generated file names",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Value: "default",
				Usage: "Target namespace for every generated resource",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Container port override; 0 keeps the preset default",
			},
			&cli.StringSliceFlag{
				Name:  "env",
				Usage: "Environment variable (format: KEY=VALUE, can be repeated)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			catalog, err := preset.Load()
			if err != nil {
				return err
			}
			typeID := cmd.String("type")
			p, ok := catalog.Preset(typeID)
			if !ok {
				msg := fmt.Sprintf("unknown preset %q", typeID)
				if suggestion := catalog.Suggest(typeID); suggestion != "" {
					msg += fmt.Sprintf(", did you mean %q?", suggestion)
				}
				return fmt.Errorf("%s", msg)
			}
			env, err := parseEnvVars(cmd.StringSlice("env"))
			if err != nil {
				return err
			}

			fs := synth.SynthesizeRaw(synth.RawInput{
				Name:      cmd.String("name"),
				Preset:    p,
				Namespace: cmd.String("namespace"),
				Port:      int(cmd.Int("port")),
				Env:       env,
			})
			written, err := project.WriteFileSet(cmd.String("project"), fs)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Println(path)
			}
			return nil
		},
	}
}

func generateInfraCmd() *cli.Command {
	return &cli.Command{
		Name:                  "infra",
		EnableShellCompletion: true,
		Usage:                 "Scaffold a Helm wrapper component from a preset",
		Description: `Creates a Helm wrapper component directory for an infrastructure preset:
a wrapper Chart.yaml pinning the upstream chart as a dependency, default
and production values files, a namespace manifest and a rendered/ output
directory.

Render the wrapper with 'efctl helm template' and install it with
'efctl helm install'.

# Examples

Scaffold an ingress-nginx component:
  efctl generate infra --type ingress-nginx --release ingress

Scaffold into a specific project:
  efctl generate infra -p ./my-stack --type kube-prometheus-stack --release monitoring`,
		Flags: []cli.Flag{
			projectFlag,
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Required: true,
				Usage:    "Helm preset type id (see 'efctl presets')",
			},
			&cli.StringFlag{
				Name:     "release",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "Helm release name; also names the component directory",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			catalog, err := preset.Load()
			if err != nil {
				return err
			}
			typeID := cmd.String("type")
			hp, ok := catalog.HelmPreset(typeID)
			if !ok {
				return fmt.Errorf("unknown helm preset %q", typeID)
			}

			fs := synth.SynthesizeHelm(cmd.String("release"), hp)
			written, err := project.WriteFileSet(cmd.String("project"), fs)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Println(path)
			}
			return nil
		},
	}
}

func generateImageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "image",
		EnableShellCompletion: true,
		Usage:                 "Generate (and optionally apply) manifests for an ad-hoc image",
		Description: `Generates namespace, secret, deployment and service manifests for a
container image without a preset. By default the manifests are printed;
with --apply they are applied to the cluster in order, stopping at the
first failure.

# Examples

Print manifests for an image:
  efctl generate image --name web --image nginx:1.27 --namespace apps --port 80

Deploy directly, with a secret env var:
  efctl generate image --name api --image ghcr.io/acme/api:v2 \
    --namespace apps --port 8080 --secret-env API_TOKEN=s3cret \
    --create-namespace --apply`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Workload name",
			},
			&cli.StringFlag{
				Name:     "image",
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "Container image reference",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Value: "default",
				Usage: "Target namespace",
			},
			&cli.IntFlag{
				Name:  "replicas",
				Value: 1,
				Usage: "Desired replica count",
			},
			&cli.StringSliceFlag{
				Name:  "port",
				Usage: "Exposed container port (format: port or name:port, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "env",
				Usage: "Plain environment variable (format: KEY=VALUE, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "secret-env",
				Usage: "Sensitive environment variable stored in a Secret (format: KEY=VALUE, can be repeated)",
			},
			&cli.StringFlag{
				Name:  "service-type",
				Value: "ClusterIP",
				Usage: "Service type: ClusterIP, NodePort or LoadBalancer",
			},
			&cli.StringFlag{
				Name:  "image-pull-secret",
				Usage: "Name of an existing image pull secret to reference",
			},
			&cli.BoolFlag{
				Name:  "create-namespace",
				Usage: "Also generate a Namespace manifest",
			},
			&cli.BoolFlag{
				Name:  "apply",
				Usage: "Apply the generated manifests to the cluster in order",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ports, err := parseImagePorts(cmd.StringSlice("port"))
			if err != nil {
				return err
			}
			env, err := parseKeyValues(cmd.StringSlice("env"), "--env")
			if err != nil {
				return err
			}
			secretEnv, err := parseKeyValues(cmd.StringSlice("secret-env"), "--secret-env")
			if err != nil {
				return err
			}

			manifests := synth.Manifests(synth.ImageDeployInput{
				Namespace:       cmd.String("namespace"),
				Name:            cmd.String("name"),
				Image:           cmd.String("image"),
				Replicas:        int(cmd.Int("replicas")),
				Env:             env,
				SecretEnv:       secretEnv,
				Ports:           ports,
				ServiceType:     cmd.String("service-type"),
				ImagePullSecret: cmd.String("image-pull-secret"),
				CreateNamespace: cmd.Bool("create-namespace"),
			})

			if !cmd.Bool("apply") {
				printManifests(manifests)
				return nil
			}

			client, err := kube.NewClient(newLogger())
			if err != nil {
				return err
			}
			for _, step := range []struct {
				kind     string
				manifest string
			}{
				{"Namespace", manifests.Namespace},
				{"Secret", manifests.Secret},
				{"Deployment", manifests.Deployment},
				{"Service", manifests.Service},
			} {
				if step.manifest == "" {
					continue
				}
				res := client.ApplyManifest(ctx, step.manifest)
				if !res.Success {
					return fmt.Errorf("applying %s failed: %s", step.kind, strings.TrimSpace(res.Stderr))
				}
				fmt.Print(res.Stdout)
			}
			return nil
		},
	}
}

func printManifests(m synth.ImageDeployManifests) {
	var docs []string
	for _, doc := range []string{m.Namespace, m.Secret, m.Deployment, m.Service} {
		if doc != "" {
			docs = append(docs, strings.TrimRight(doc, "\n"))
		}
	}
	fmt.Println(strings.Join(docs, "\n---\n"))
}

func parseImagePorts(specs []string) ([]synth.ImagePort, error) {
	var out []synth.ImagePort
	for _, spec := range specs {
		name, portStr, ok := strings.Cut(spec, ":")
		if !ok {
			portStr, name = name, ""
		}
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("invalid --port value %q, expected port or name:port", spec)
		}
		out = append(out, synth.ImagePort{ContainerPort: port, Name: name})
	}
	return out, nil
}

func parseKeyValues(pairs []string, flag string) ([]synth.KeyValue, error) {
	var out []synth.KeyValue
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid %s value %q, expected KEY=VALUE", flag, pair)
		}
		out = append(out, synth.KeyValue{Key: key, Value: value})
	}
	return out, nil
}
