// Package identity derives deterministic names and ids for generated
// resources.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// ingressNamePrefix is the fixed prefix for ingress resources owned by this
// tool. The on-cluster name is the prefix plus the first 8 characters of the
// route id.
const ingressNamePrefix = "ef-route-"

// IngressNameForRoute derives the ingress resource name from a route id.
// Total, pure and deterministic for any input, including ids shorter than
// 8 characters.
//
// Known limitation: two route ids sharing the same first 8 characters map to
// the same ingress name. There is no disambiguation; renaming would detach
// live ingresses from their routes, so the truncation is kept as-is.
func IngressNameForRoute(routeID string) string {
	short := routeID
	if len(short) > 8 {
		short = short[:8]
	}
	return ingressNamePrefix + short
}

// NewRouteID mints a fresh opaque route id. Route ids are immutable once
// assigned; edits preserve them.
func NewRouteID() string {
	return uuid.NewString()
}

// Sanitize lowers a name and replaces every character outside [a-z0-9-]
// with '-', producing a DNS-label-safe string.
func Sanitize(name string) string {
	lowered := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}
