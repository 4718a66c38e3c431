package preset

// Resources is a request/limit row from the fixed sizing table.
// Values are Kubernetes quantity strings.
type Resources struct {
	CPURequest    string
	MemoryRequest string
	CPULimit      string
	MemoryLimit   string
}

var resourceTable = map[string]Resources{
	"postgres":      {CPURequest: "250m", MemoryRequest: "256Mi", CPULimit: "1", MemoryLimit: "1Gi"},
	"mysql":         {CPURequest: "250m", MemoryRequest: "256Mi", CPULimit: "1", MemoryLimit: "1Gi"},
	"mongodb":       {CPURequest: "250m", MemoryRequest: "256Mi", CPULimit: "1", MemoryLimit: "1Gi"},
	"redis":         {CPURequest: "100m", MemoryRequest: "128Mi", CPULimit: "250m", MemoryLimit: "256Mi"},
	"kafka":         {CPURequest: "500m", MemoryRequest: "512Mi", CPULimit: "1", MemoryLimit: "2Gi"},
	"redpanda":      {CPURequest: "500m", MemoryRequest: "512Mi", CPULimit: "1", MemoryLimit: "2Gi"},
	"rabbitmq":      {CPURequest: "250m", MemoryRequest: "256Mi", CPULimit: "500m", MemoryLimit: "1Gi"},
	"prometheus":    {CPURequest: "250m", MemoryRequest: "512Mi", CPULimit: "1", MemoryLimit: "2Gi"},
	"grafana":       {CPURequest: "100m", MemoryRequest: "128Mi", CPULimit: "500m", MemoryLimit: "512Mi"},
	"nginx-ingress": {CPURequest: "100m", MemoryRequest: "128Mi", CPULimit: "500m", MemoryLimit: "512Mi"},
}

// defaultResources matches the fallback row every unknown preset gets.
var defaultResources = Resources{
	CPURequest:    "100m",
	MemoryRequest: "128Mi",
	CPULimit:      "500m",
	MemoryLimit:   "512Mi",
}

// ResourcesFor returns the sizing row for a preset type id, falling back to
// the default row.
func ResourcesFor(typeID string) Resources {
	if r, ok := resourceTable[typeID]; ok {
		return r
	}
	return defaultResources
}

var mountPathTable = map[string]string{
	"postgres":   "/var/lib/postgresql/data",
	"mysql":      "/var/lib/mysql",
	"mongodb":    "/data/db",
	"redis":      "/data",
	"kafka":      "/var/lib/kafka/data",
	"redpanda":   "/var/lib/redpanda/data",
	"prometheus": "/prometheus",
	"grafana":    "/var/lib/grafana",
}

// MountPathFor returns the data volume mount path for a preset type id.
// Unknown types mount under /var/lib/<name>.
func MountPathFor(typeID, name string) string {
	if p, ok := mountPathTable[typeID]; ok {
		return p
	}
	return "/var/lib/" + name
}
