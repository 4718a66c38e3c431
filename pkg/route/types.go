// Package route manages ingress routes: the file-preferred registry that
// merges disk and cluster state, the Ingress manifest generator and scanner,
// and edge resolution against the discovered field set.
package route

// Annotation is one ordered key/value pair rendered into the Ingress
// annotations block. A slice keeps author order stable across round-trips.
type Annotation struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IngressRoute is the canonical route shape. Zero values mean absent:
// Host "" renders a host-less rule, TargetPortNumber 0 with TargetPortName
// "" falls back to port 80.
type IngressRoute struct {
	RouteID          string       `json:"route_id"`
	FieldID          string       `json:"field_id"`
	TargetNamespace  string       `json:"target_namespace"`
	TargetService    string       `json:"target_service"`
	TargetPortNumber int          `json:"target_port_number,omitempty"`
	TargetPortName   string       `json:"target_port_name,omitempty"`
	Host             string       `json:"host,omitempty"`
	Path             string       `json:"path"`
	PathType         string       `json:"path_type"`
	TLSSecret        string       `json:"tls_secret,omitempty"`
	TLSHosts         []string     `json:"tls_hosts,omitempty"`
	Annotations      []Annotation `json:"annotations,omitempty"`
	IngressClassName string       `json:"ingress_class_name"`
	IngressName      string       `json:"ingress_name"`
	IngressNamespace string       `json:"ingress_namespace"`
}

// DiscoveredRoute is a route read back from a live cluster Ingress carrying
// the identity annotations. Address is the load balancer IP when assigned.
type DiscoveredRoute struct {
	RouteID          string `json:"route_id"`
	FieldID          string `json:"field_id"`
	IngressName      string `json:"ingress_name"`
	IngressNamespace string `json:"ingress_namespace"`
	Host             string `json:"host,omitempty"`
	Path             string `json:"path"`
	PathType         string `json:"path_type"`
	TargetService    string `json:"target_service"`
	TargetNamespace  string `json:"target_namespace"`
	TargetPortNumber int    `json:"target_port_number,omitempty"`
	TargetPortName   string `json:"target_port_name,omitempty"`
	IngressClassName string `json:"ingress_class_name"`
	TLSSecret        string `json:"tls_secret,omitempty"`
	Address          string `json:"address,omitempty"`
}

// ToRoute projects a discovered route onto the canonical shape. TLS hosts
// and extra annotations are not recoverable from discovery and stay nil.
func (d DiscoveredRoute) ToRoute() IngressRoute {
	return IngressRoute{
		RouteID:          d.RouteID,
		FieldID:          d.FieldID,
		TargetNamespace:  d.TargetNamespace,
		TargetService:    d.TargetService,
		TargetPortNumber: d.TargetPortNumber,
		TargetPortName:   d.TargetPortName,
		Host:             d.Host,
		Path:             d.Path,
		PathType:         d.PathType,
		TLSSecret:        d.TLSSecret,
		IngressClassName: d.IngressClassName,
		IngressName:      d.IngressName,
		IngressNamespace: d.IngressNamespace,
	}
}

// ApplyResult reports one route application.
type ApplyResult struct {
	RouteID     string `json:"route_id"`
	IngressName string `json:"ingress_name"`
	Namespace   string `json:"namespace"`
	Stdout      string `json:"stdout"`
	Stderr      string `json:"stderr"`
	Success     bool   `json:"success"`
}

// ControllerStatus describes the detected ingress controller installation.
type ControllerStatus struct {
	IngressClassName      string `json:"ingress_class_name"`
	ControllerServiceName string `json:"controller_service_name"`
	Endpoint              string `json:"endpoint,omitempty"`
	Ready                 bool   `json:"ready"`
}
