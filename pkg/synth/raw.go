package synth

import (
	"fmt"
	"path"
	"strings"

	"github.com/endfield/endfield/pkg/identity"
	"github.com/endfield/endfield/pkg/preset"
)

// RawInput is everything SynthesizeRaw needs. Env, when nil, falls back to
// the preset's default env list; Port, when zero, falls back to the
// preset's default port.
type RawInput struct {
	Name      string
	Preset    *preset.Preset
	Namespace string
	Port      int
	Env       []preset.EnvVar
}

// SynthesizeRaw renders a raw-YAML component into a file set under the
// preset's folder. Emission order: namespace, secret, configmap,
// headless service (StatefulSet only), workload, service, pvc.
//
// Env vars partition by the secret predicate. A var referenced from a
// generated Secret or ConfigMap is never also inlined; secret refs win over
// configmap refs, which win over inline values.
func SynthesizeRaw(in RawInput) *FileSet {
	name := identity.Sanitize(in.Name)
	p := in.Preset
	port := in.Port
	if port == 0 {
		port = p.DefaultPort
	}
	env := in.Env
	if env == nil {
		env = p.Env
	}
	sensitive, plain := preset.PartitionEnv(env)

	hasSecret := len(sensitive) > 0
	hasConfigMap := p.GenerateConfigMap && len(plain) > 0

	fs := NewFileSet()
	file := func(suffix string) string {
		return path.Join(p.Folder, fmt.Sprintf("%s-%s.yaml", name, suffix))
	}

	fs.Add(file("namespace"), namespaceYAML(in.Namespace))
	if hasSecret {
		fs.Add(file("secret"), secretYAML(name, in.Namespace, sensitive))
	}
	if hasConfigMap {
		fs.Add(file("configmap"), configMapYAML(name, in.Namespace, plain))
	}

	if p.Kind == preset.KindStatefulSet {
		fs.Add(file("headless-svc"), headlessServiceYAML(name, in.Namespace, port))
		fs.Add(file("statefulset"), statefulSetYAML(name, in.Namespace, port, p, env, hasSecret, hasConfigMap))
	} else {
		fs.Add(file("deployment"), deploymentYAML(name, in.Namespace, port, p, env, hasSecret, hasConfigMap))
	}

	if p.GenerateService {
		fs.Add(file("service"), serviceYAML(name, in.Namespace, port, p.IngressController))
	}

	if p.Kind == preset.KindDeployment && p.StorageSize != "" {
		fs.Add(file("pvc"), pvcYAML(name, in.Namespace, p.StorageSize))
	}

	return fs
}

func namespaceYAML(namespace string) string {
	return fmt.Sprintf(`apiVersion: v1
kind: Namespace
metadata:
  name: %s
  labels:
    managed-by: endfield
`, namespace)
}

func secretYAML(name, namespace string, vars []preset.EnvVar) string {
	var data strings.Builder
	for _, e := range vars {
		fmt.Fprintf(&data, "  %s: %q\n", e.Key, e.Value)
	}
	return fmt.Sprintf(`apiVersion: v1
kind: Secret
metadata:
  name: %[1]s-secret
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
type: Opaque
stringData:
%[3]s`, name, namespace, data.String())
}

func configMapYAML(name, namespace string, vars []preset.EnvVar) string {
	var data strings.Builder
	for _, e := range vars {
		fmt.Fprintf(&data, "  %s: %q\n", e.Key, e.Value)
	}
	return fmt.Sprintf(`apiVersion: v1
kind: ConfigMap
metadata:
  name: %[1]s-config
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
data:
%[3]s`, name, namespace, data.String())
}

func serviceYAML(name, namespace string, port int, ingressController bool) string {
	serviceType := "ClusterIP"
	if ingressController {
		serviceType = "LoadBalancer"
	}
	return fmt.Sprintf(`apiVersion: v1
kind: Service
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
spec:
  selector:
    app: %[1]s
  ports:
    - protocol: TCP
      port: %[3]d
      targetPort: %[3]d
  type: %[4]s
`, name, namespace, port, serviceType)
}

func headlessServiceYAML(name, namespace string, port int) string {
	return fmt.Sprintf(`apiVersion: v1
kind: Service
metadata:
  name: %[1]s-headless
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
spec:
  clusterIP: None
  selector:
    app: %[1]s
  ports:
    - protocol: TCP
      port: %[3]d
      targetPort: %[3]d
`, name, namespace, port)
}

func pvcYAML(name, namespace, size string) string {
	return fmt.Sprintf(`apiVersion: v1
kind: PersistentVolumeClaim
metadata:
  name: %[1]s-data
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
spec:
  accessModes: ["ReadWriteOnce"]
  resources:
    requests:
      storage: %[3]s
`, name, namespace, size)
}

// envBlock renders the container env list. Every var gets exactly one
// representation: secretKeyRef, configMapKeyRef, or inline value.
func envBlock(name string, env []preset.EnvVar, hasSecret, hasConfigMap bool) string {
	if len(env) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("          env:\n")
	for _, e := range env {
		switch {
		case hasSecret && preset.IsSecretKey(e.Key):
			fmt.Fprintf(&b, "            - name: %[1]s\n              valueFrom:\n                secretKeyRef:\n                  name: %[2]s-secret\n                  key: %[1]s\n", e.Key, name)
		case hasConfigMap && !preset.IsSecretKey(e.Key):
			fmt.Fprintf(&b, "            - name: %[1]s\n              valueFrom:\n                configMapKeyRef:\n                  name: %[2]s-config\n                  key: %[1]s\n", e.Key, name)
		default:
			fmt.Fprintf(&b, "            - name: %s\n              value: %q\n", e.Key, e.Value)
		}
	}
	return b.String()
}

func resourcesBlock(typeID string) string {
	r := preset.ResourcesFor(typeID)
	return fmt.Sprintf(`          resources:
            requests:
              cpu: %q
              memory: %q
            limits:
              cpu: %q
              memory: %q
`, r.CPURequest, r.MemoryRequest, r.CPULimit, r.MemoryLimit)
}

// probeBlock renders livenessProbe and readinessProbe for a workload type.
func probeBlock(typeID string, port int) string {
	spec := preset.ProbeFor(typeID)
	var b strings.Builder
	writeProbe(&b, "livenessProbe", spec, port, spec.LivenessInitialDelaySeconds)
	writeProbe(&b, "readinessProbe", spec, port, spec.ReadinessInitialDelaySeconds)
	return b.String()
}

func writeProbe(b *strings.Builder, field string, spec preset.ProbeSpec, port, initialDelay int) {
	fmt.Fprintf(b, "          %s:\n", field)
	switch spec.Method {
	case preset.ProbeExec:
		b.WriteString("            exec:\n              command:\n")
		for _, arg := range spec.Command {
			fmt.Fprintf(b, "                - %s\n", quoteIfNeeded(arg))
		}
	case preset.ProbeTCP:
		fmt.Fprintf(b, "            tcpSocket:\n              port: %d\n", port)
	case preset.ProbeHTTP:
		fmt.Fprintf(b, "            httpGet:\n              path: %s\n              port: %d\n", spec.Path, port)
	}
	fmt.Fprintf(b, "            initialDelaySeconds: %d\n", initialDelay)
	fmt.Fprintf(b, "            periodSeconds: %d\n", spec.PeriodSeconds)
	fmt.Fprintf(b, "            failureThreshold: %d\n", spec.FailureThreshold)
}

// quoteIfNeeded wraps YAML-significant scalars in quotes so exec command
// arguments like "-c" survive round-trips.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, ":#'\"") || strings.HasPrefix(s, "-") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func deploymentYAML(name, namespace string, port int, p *preset.Preset, env []preset.EnvVar, hasSecret, hasConfigMap bool) string {
	volumeMounts := ""
	volumes := ""
	if p.StorageSize != "" {
		volumeMounts = fmt.Sprintf("          volumeMounts:\n            - name: data\n              mountPath: %s\n", preset.MountPathFor(p.TypeID, name))
		volumes = fmt.Sprintf("      volumes:\n        - name: data\n          persistentVolumeClaim:\n            claimName: %s-data\n", name)
	}
	return fmt.Sprintf(`apiVersion: apps/v1
kind: Deployment
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
spec:
  replicas: %[3]d
  selector:
    matchLabels:
      app: %[1]s
  strategy:
    type: RollingUpdate
    rollingUpdate:
      maxSurge: 1
      maxUnavailable: 0
  template:
    metadata:
      labels:
        app: %[1]s
    spec:
      containers:
        - name: %[1]s
          image: %[4]s
          ports:
            - containerPort: %[5]d
%[6]s%[7]s%[8]s%[9]s%[10]s`,
		name, namespace, p.Replicas, p.Image, port,
		envBlock(name, env, hasSecret, hasConfigMap),
		probeBlock(p.TypeID, port),
		resourcesBlock(p.TypeID),
		volumeMounts, volumes)
}

func statefulSetYAML(name, namespace string, port int, p *preset.Preset, env []preset.EnvVar, hasSecret, hasConfigMap bool) string {
	volumeMounts := ""
	volumeClaims := ""
	if p.StorageSize != "" {
		volumeMounts = fmt.Sprintf("          volumeMounts:\n            - name: data\n              mountPath: %s\n", preset.MountPathFor(p.TypeID, name))
		volumeClaims = fmt.Sprintf(`  volumeClaimTemplates:
    - metadata:
        name: data
      spec:
        accessModes: ["ReadWriteOnce"]
        resources:
          requests:
            storage: %s
`, p.StorageSize)
	}
	return fmt.Sprintf(`apiVersion: apps/v1
kind: StatefulSet
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app: %[1]s
    managed-by: endfield
spec:
  serviceName: %[1]s-headless
  replicas: %[3]d
  selector:
    matchLabels:
      app: %[1]s
  template:
    metadata:
      labels:
        app: %[1]s
    spec:
      containers:
        - name: %[1]s
          image: %[4]s
          ports:
            - containerPort: %[5]d
%[6]s%[7]s%[8]s%[9]s%[10]s`,
		name, namespace, p.Replicas, p.Image, port,
		envBlock(name, env, hasSecret, hasConfigMap),
		probeBlock(p.TypeID, port),
		resourcesBlock(p.TypeID),
		volumeMounts, volumeClaims)
}
