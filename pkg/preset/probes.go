package preset

// ProbeMethod selects how a workload is probed.
type ProbeMethod string

const (
	ProbeExec ProbeMethod = "exec"
	ProbeTCP  ProbeMethod = "tcpSocket"
	ProbeHTTP ProbeMethod = "httpGet"
)

// ProbeSpec is the liveness/readiness probe shape for a workload type.
// The timing constants are stable workload knowledge; changing them changes
// every manifest the synthesizer emits.
type ProbeSpec struct {
	Method ProbeMethod

	// Command applies to ProbeExec.
	Command []string

	// Path applies to ProbeHTTP; the port is always the workload port.
	Path string

	LivenessInitialDelaySeconds  int
	ReadinessInitialDelaySeconds int
	PeriodSeconds                int
	FailureThreshold             int
}

var probeTable = map[string]ProbeSpec{
	"postgres": {
		Method:                       ProbeExec,
		Command:                      []string{"sh", "-c", "psql -U postgres -c 'SELECT 1'"},
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 5,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"mysql": {
		Method:                       ProbeExec,
		Command:                      []string{"sh", "-c", "mysqladmin ping -h 127.0.0.1"},
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 5,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"mongodb": {
		Method:                       ProbeTCP,
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 5,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"redis": {
		Method:                       ProbeExec,
		Command:                      []string{"redis-cli", "ping"},
		LivenessInitialDelaySeconds:  10,
		ReadinessInitialDelaySeconds: 5,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"kafka": {
		Method:                       ProbeTCP,
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 10,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"redpanda": {
		Method:                       ProbeTCP,
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 10,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"rabbitmq": {
		Method:                       ProbeTCP,
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 10,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"prometheus": {
		Method:                       ProbeHTTP,
		Path:                         "/-/healthy",
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 10,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
	"grafana": {
		Method:                       ProbeHTTP,
		Path:                         "/api/health",
		LivenessInitialDelaySeconds:  30,
		ReadinessInitialDelaySeconds: 10,
		PeriodSeconds:                10,
		FailureThreshold:             6,
	},
}

// defaultProbe is used for any preset without a dedicated row.
var defaultProbe = ProbeSpec{
	Method:                       ProbeHTTP,
	Path:                         "/",
	LivenessInitialDelaySeconds:  15,
	ReadinessInitialDelaySeconds: 5,
	PeriodSeconds:                10,
	FailureThreshold:             3,
}

// ProbeFor returns the probe spec for a preset type id.
func ProbeFor(typeID string) ProbeSpec {
	if p, ok := probeTable[typeID]; ok {
		return p
	}
	return defaultProbe
}
