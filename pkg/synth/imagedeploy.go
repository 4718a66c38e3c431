package synth

import (
	"fmt"
	"strings"
)

// ImagePort is one exposed container port.
type ImagePort struct {
	ContainerPort int    `json:"container_port"`
	Name          string `json:"name,omitempty"`
}

// ImageResources overrides the default resource row for an image deploy.
// Empty fields fall back to the default row values.
type ImageResources struct {
	CPURequest    string `json:"cpu_request,omitempty"`
	MemoryRequest string `json:"memory_request,omitempty"`
	CPULimit      string `json:"cpu_limit,omitempty"`
	MemoryLimit   string `json:"memory_limit,omitempty"`
}

// ImageDeployInput describes an ad-hoc image deployment: a namespace, an
// image, env split the caller already decided on, and service shape.
type ImageDeployInput struct {
	Namespace       string          `json:"namespace"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	Replicas        int             `json:"replicas"`
	Env             []KeyValue      `json:"env"`
	SecretEnv       []KeyValue      `json:"secret_env"`
	Ports           []ImagePort     `json:"ports"`
	ServiceType     string          `json:"service_type"`
	Resources       *ImageResources `json:"resources,omitempty"`
	ImagePullSecret string          `json:"image_pull_secret,omitempty"`
	CreateNamespace bool            `json:"create_namespace"`
}

// KeyValue is a plain key/value pair used by image-deploy inputs, which
// carry their secret/plain split explicitly instead of using the predicate.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ImageDeployManifests holds the generated documents. Empty strings mean
// the document is not part of this deployment.
type ImageDeployManifests struct {
	Namespace  string `json:"namespace,omitempty"`
	Secret     string `json:"secret,omitempty"`
	Deployment string `json:"deployment"`
	Service    string `json:"service,omitempty"`
}

// SecretName returns the generated Secret name for an image deploy.
func (in ImageDeployInput) SecretName() string {
	return in.Name + "-secrets"
}

// Manifests generates the namespace/secret/deployment/service documents for
// an image deployment. Apply order is Namespace, Secret, Deployment,
// Service; the caller owns application.
func Manifests(in ImageDeployInput) ImageDeployManifests {
	if in.ServiceType == "" {
		in.ServiceType = "ClusterIP"
	}
	m := ImageDeployManifests{Deployment: imageDeploymentYAML(in)}
	if in.CreateNamespace {
		m.Namespace = imageNamespaceYAML(in.Namespace)
	}
	if len(in.SecretEnv) > 0 {
		m.Secret = imageSecretYAML(in)
	}
	if len(in.Ports) > 0 {
		m.Service = imageServiceYAML(in)
	}
	return m
}

func imageNamespaceYAML(namespace string) string {
	return fmt.Sprintf(`apiVersion: v1
kind: Namespace
metadata:
  name: %s
  labels:
    app.kubernetes.io/managed-by: endfield
    endfield/type: image-deploy
`, namespace)
}

func imageSecretYAML(in ImageDeployInput) string {
	var data strings.Builder
	for _, e := range in.SecretEnv {
		fmt.Fprintf(&data, "  %s: %q\n", e.Key, e.Value)
	}
	return fmt.Sprintf(`apiVersion: v1
kind: Secret
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app.kubernetes.io/name: %[3]s
    app.kubernetes.io/managed-by: endfield
    endfield/type: image-deploy
    endfield/namespace: %[2]s
type: Opaque
stringData:
%[4]s`, in.SecretName(), in.Namespace, in.Name, data.String())
}

func imageDeploymentYAML(in ImageDeployInput) string {
	var ports strings.Builder
	if len(in.Ports) > 0 {
		ports.WriteString("          ports:\n")
		for _, p := range in.Ports {
			fmt.Fprintf(&ports, "            - containerPort: %d\n", p.ContainerPort)
			if p.Name != "" {
				fmt.Fprintf(&ports, "              name: %s\n", p.Name)
			}
		}
	}

	var env strings.Builder
	if len(in.Env) > 0 || len(in.SecretEnv) > 0 {
		env.WriteString("          env:\n")
		for _, e := range in.Env {
			fmt.Fprintf(&env, "            - name: %s\n              value: %q\n", e.Key, e.Value)
		}
		for _, e := range in.SecretEnv {
			fmt.Fprintf(&env, "            - name: %[1]s\n              valueFrom:\n                secretKeyRef:\n                  name: %[2]s\n                  key: %[1]s\n", e.Key, in.SecretName())
		}
	}

	resources := ""
	if in.Resources != nil {
		r := *in.Resources
		if r.CPURequest == "" {
			r.CPURequest = "100m"
		}
		if r.MemoryRequest == "" {
			r.MemoryRequest = "128Mi"
		}
		if r.CPULimit == "" {
			r.CPULimit = "500m"
		}
		if r.MemoryLimit == "" {
			r.MemoryLimit = "512Mi"
		}
		resources = fmt.Sprintf(`          resources:
            requests:
              cpu: %q
              memory: %q
            limits:
              cpu: %q
              memory: %q
`, r.CPURequest, r.MemoryRequest, r.CPULimit, r.MemoryLimit)
	}

	pullSecrets := ""
	if in.ImagePullSecret != "" {
		pullSecrets = fmt.Sprintf("      imagePullSecrets:\n        - name: %s\n", in.ImagePullSecret)
	}

	return fmt.Sprintf(`apiVersion: apps/v1
kind: Deployment
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app.kubernetes.io/name: %[1]s
    app.kubernetes.io/managed-by: endfield
    endfield/type: image-deploy
    endfield/namespace: %[2]s
spec:
  replicas: %[3]d
  selector:
    matchLabels:
      app.kubernetes.io/name: %[1]s
  template:
    metadata:
      labels:
        app.kubernetes.io/name: %[1]s
        app.kubernetes.io/managed-by: endfield
    spec:
%[4]s      containers:
        - name: %[1]s
          image: %[5]s
%[6]s%[7]s%[8]s`,
		in.Name, in.Namespace, in.Replicas, pullSecrets, in.Image,
		ports.String(), env.String(), resources)
}

func imageServiceYAML(in ImageDeployInput) string {
	var ports strings.Builder
	for _, p := range in.Ports {
		fmt.Fprintf(&ports, "    - port: %[1]d\n      targetPort: %[1]d\n      protocol: TCP\n", p.ContainerPort)
		if p.Name != "" {
			fmt.Fprintf(&ports, "      name: %s\n", p.Name)
		}
	}
	return fmt.Sprintf(`apiVersion: v1
kind: Service
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app.kubernetes.io/name: %[1]s
    app.kubernetes.io/managed-by: endfield
    endfield/type: image-deploy
    endfield/namespace: %[2]s
spec:
  selector:
    app.kubernetes.io/name: %[1]s
  type: %[3]s
  ports:
%[4]s`, in.Name, in.Namespace, in.ServiceType, ports.String())
}
