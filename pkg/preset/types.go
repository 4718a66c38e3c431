package preset

import "strings"

// WorkloadKind selects the Kubernetes workload resource a preset renders to.
type WorkloadKind string

const (
	KindDeployment  WorkloadKind = "Deployment"
	KindStatefulSet WorkloadKind = "StatefulSet"
)

// EnvVar is a single key=value environment entry.
type EnvVar struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Preset describes a raw-YAML workload archetype: image, port, kind,
// file layout and generation flags. Presets are static catalog data.
type Preset struct {
	TypeID            string       `json:"type_id" yaml:"typeId"`
	DisplayName       string       `json:"display_name" yaml:"displayName"`
	Image             string       `json:"image" yaml:"image"`
	DefaultPort       int          `json:"default_port" yaml:"defaultPort"`
	Kind              WorkloadKind `json:"kind" yaml:"kind"`
	Replicas          int          `json:"replicas" yaml:"replicas"`
	Folder            string       `json:"folder" yaml:"folder"`
	GenerateConfigMap bool         `json:"generate_config_map" yaml:"generateConfigMap"`
	GenerateService   bool         `json:"generate_service" yaml:"generateService"`

	// StorageSize enables a persistent volume when non-empty (e.g. "10Gi").
	StorageSize string `json:"storage_size,omitempty" yaml:"storageSize,omitempty"`

	// IngressController marks the preset whose Service must be a LoadBalancer.
	IngressController bool `json:"ingress_controller,omitempty" yaml:"ingressController,omitempty"`

	Env []EnvVar `json:"env,omitempty" yaml:"env,omitempty"`
}

// HelmPreset describes a chart wrapped by a locally committed wrapper chart
// pinning name, version and repository.
type HelmPreset struct {
	TypeID           string `json:"type_id" yaml:"typeId"`
	ChartName        string `json:"chart_name" yaml:"chartName"`
	Repo             string `json:"repo" yaml:"repo"`
	Version          string `json:"version" yaml:"version"`
	DefaultNamespace string `json:"default_namespace" yaml:"defaultNamespace"`

	// DefaultValues and ProdValues are opaque values documents written
	// verbatim to helm/values.yaml and helm/values.prod.yaml.
	DefaultValues string `json:"default_values" yaml:"defaultValues"`
	ProdValues    string `json:"prod_values" yaml:"prodValues"`
}

// secretKeyMarkers classify an env key as sensitive when the uppercased key
// contains any of them. Synthesis and parsing both read this list; it is
// the single definition.
var secretKeyMarkers = []string{"PASSWORD", "SECRET", "KEY", "TOKEN", "PASS"}

// IsSecretKey reports whether an env var key is secret-classified.
func IsSecretKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, marker := range secretKeyMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// PartitionEnv splits env vars into sensitive and plain halves, preserving
// input order inside each half.
func PartitionEnv(env []EnvVar) (sensitive, plain []EnvVar) {
	for _, e := range env {
		if IsSecretKey(e.Key) {
			sensitive = append(sensitive, e)
		} else {
			plain = append(plain, e)
		}
	}
	return sensitive, plain
}
