// Package field models the workloads of a project directory. A field is one
// deployable unit discovered on disk, either a raw workload manifest or a
// Helm wrapper-chart component directory.
package field

// Source values for a discovered field.
const (
	SourceRaw  = "raw"
	SourceHelm = "helm"
)

// HelmMeta carries the wrapper-chart details of a Helm-sourced field.
type HelmMeta struct {
	ReleaseName  string `json:"release_name"`
	Namespace    string `json:"namespace"`
	ChartName    string `json:"chart_name"`
	ChartVersion string `json:"chart_version"`
	Repo         string `json:"repo"`
	ValuesPath   string `json:"values_path"`
	RenderedDir  string `json:"rendered_dir"`
}

// Field is one discovered deployable unit.
type Field struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Kind      string    `json:"kind"`
	Image     string    `json:"image"`
	TypeID    string    `json:"type_id"`
	Namespace string    `json:"namespace"`
	FilePath  string    `json:"file_path"`
	Replicas  *int      `json:"replicas,omitempty"`
	Source    string    `json:"source"`
	Helm      *HelmMeta `json:"helm,omitempty"`
}

// ScanResult is the outcome of a project scan. Errors is non-fatal: a
// directory that cannot be read is reported and the scan continues.
type ScanResult struct {
	Fields      []Field  `json:"fields"`
	ProjectPath string   `json:"project_path"`
	Errors      []string `json:"errors"`
}
