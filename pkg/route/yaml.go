package route

import (
	"fmt"
	"strings"
)

// Identity keys stamped on every generated Ingress, as both labels and
// annotations. Discovery and the file scanner key on them.
const (
	RouteIDKey = "endfield.io/routeId"
	FieldIDKey = "endfield.io/fieldId"
)

// GenerateYAML renders the Ingress manifest for a route. Output shape is
// fixed: the scanner in this package reads it back, and the identity keys
// appear as both labels and annotations so either survives tooling that
// strips one of the two.
func GenerateYAML(r IngressRoute) string {
	portSpec := "number: 80"
	if r.TargetPortNumber > 0 {
		portSpec = fmt.Sprintf("number: %d", r.TargetPortNumber)
	} else if r.TargetPortName != "" {
		portSpec = "name: " + r.TargetPortName
	}

	var rules string
	if r.Host != "" {
		rules = fmt.Sprintf(`  rules:
    - host: %s
      http:
        paths:
          - path: %s
            pathType: %s
            backend:
              service:
                name: %s
                port:
                  %s
`, r.Host, r.Path, r.PathType, r.TargetService, portSpec)
	} else {
		rules = fmt.Sprintf(`  rules:
    - http:
        paths:
          - path: %s
            pathType: %s
            backend:
              service:
                name: %s
                port:
                  %s
`, r.Path, r.PathType, r.TargetService, portSpec)
	}

	tls := ""
	if r.TLSSecret != "" && len(r.TLSHosts) > 0 {
		var hosts strings.Builder
		for _, h := range r.TLSHosts {
			fmt.Fprintf(&hosts, "        - %s\n", h)
		}
		tls = fmt.Sprintf("  tls:\n    - hosts:\n%s      secretName: %s\n", hosts.String(), r.TLSSecret)
	}

	var ann strings.Builder
	fmt.Fprintf(&ann, "    app.kubernetes.io/managed-by: endfield\n    %s: %s\n    %s: %s\n",
		FieldIDKey, r.FieldID, RouteIDKey, r.RouteID)
	for _, a := range r.Annotations {
		fmt.Fprintf(&ann, "    %s: %s\n", a.Key, a.Value)
	}

	return fmt.Sprintf(`apiVersion: networking.k8s.io/v1
kind: Ingress
metadata:
  name: %[1]s
  namespace: %[2]s
  labels:
    app.kubernetes.io/managed-by: endfield
    %[3]s: %[4]s
    %[5]s: %[6]s
  annotations:
%[7]sspec:
  ingressClassName: %[8]s
%[9]s%[10]s`,
		r.IngressName, r.IngressNamespace,
		FieldIDKey, r.FieldID, RouteIDKey, r.RouteID,
		ann.String(), r.IngressClassName, tls, rules)
}
