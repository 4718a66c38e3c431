package route

import (
	"fmt"
	"strings"

	"github.com/endfield/endfield/pkg/field"
)

// Edge connects the field a route was created from to the field backing its
// target Service.
type Edge struct {
	RouteID  string `json:"route_id"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Label    string `json:"label"`
}

// ResolveEdges maps routes onto the field set. A route whose endpoints
// cannot both be resolved yields no edge and stays valid on its own; that
// is the normal state for routes pointing at Services outside the project.
func ResolveEdges(fields []field.Field, routes []IngressRoute) []Edge {
	var edges []Edge
	for _, r := range routes {
		source := sourceField(fields, r)
		target := targetField(fields, r)
		if source == nil || target == nil {
			continue
		}
		edges = append(edges, Edge{
			RouteID:  r.RouteID,
			SourceID: source.ID,
			TargetID: target.ID,
			Label:    EdgeLabel(r),
		})
	}
	return edges
}

// EdgeLabel renders "<host> <path>:<port>" with "*" standing in for a
// missing host and 80 for a missing port.
func EdgeLabel(r IngressRoute) string {
	host := r.Host
	if host == "" {
		host = "*"
	}
	port := "80"
	if r.TargetPortNumber > 0 {
		port = fmt.Sprintf("%d", r.TargetPortNumber)
	} else if r.TargetPortName != "" {
		port = r.TargetPortName
	}
	return fmt.Sprintf("%s %s:%s", host, r.Path, port)
}

func sourceField(fields []field.Field, r IngressRoute) *field.Field {
	for i := range fields {
		if fields[i].ID == r.FieldID {
			return &fields[i]
		}
	}
	return nil
}

// targetField resolves the Service a route points at. Exact label and
// namespace match first, then Helm-release naming conventions: a chart
// names its child Services <release> or <release>-<chart>.
func targetField(fields []field.Field, r IngressRoute) *field.Field {
	for i := range fields {
		if fields[i].Label == r.TargetService && fields[i].Namespace == r.TargetNamespace {
			return &fields[i]
		}
	}

	for i := range fields {
		f := &fields[i]
		if f.Source != field.SourceHelm {
			continue
		}
		ns := f.Namespace
		if f.Helm != nil && f.Helm.Namespace != "" {
			ns = f.Helm.Namespace
		}
		if ns != r.TargetNamespace {
			continue
		}
		release := f.Label
		if f.Helm != nil && f.Helm.ReleaseName != "" {
			release = f.Helm.ReleaseName
		}
		if releaseMatchesService(release, r.TargetService) {
			return f
		}
	}
	return nil
}

func releaseMatchesService(release, service string) bool {
	if release == service {
		return true
	}
	if strings.HasPrefix(service, release+"-") || strings.HasPrefix(service, release+"_") {
		return true
	}
	return strings.HasPrefix(service, release)
}
