package route

import (
	"strings"
	"testing"
)

func sampleRoute() IngressRoute {
	return IngressRoute{
		RouteID:          "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809",
		FieldID:          "web-web-deployment-0",
		TargetNamespace:  "apps",
		TargetService:    "web",
		TargetPortNumber: 8080,
		Host:             "web.example.com",
		Path:             "/",
		PathType:         "Prefix",
		IngressClassName: "nginx",
		IngressName:      "ef-route-1a2b3c4d",
		IngressNamespace: "apps",
	}
}

func TestGenerateYAMLIdentity(t *testing.T) {
	doc := GenerateYAML(sampleRoute())

	// Identity keys appear twice: once in labels, once in annotations.
	for _, key := range []string{RouteIDKey, FieldIDKey} {
		if got := strings.Count(doc, key+":"); got != 2 {
			t.Errorf("%s appears %d times, want 2 (label and annotation)", key, got)
		}
	}
	if !strings.Contains(doc, "app.kubernetes.io/managed-by: endfield") {
		t.Error("managed-by marker missing")
	}
}

func TestGenerateYAMLPortFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*IngressRoute)
		want   string
	}{
		{"explicit number", func(r *IngressRoute) { r.TargetPortNumber = 9000 }, "number: 9000"},
		{"named port", func(r *IngressRoute) {
			r.TargetPortNumber = 0
			r.TargetPortName = "http"
		}, "name: http"},
		{"nothing falls back to 80", func(r *IngressRoute) {
			r.TargetPortNumber = 0
			r.TargetPortName = ""
		}, "number: 80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleRoute()
			tt.modify(&r)
			if doc := GenerateYAML(r); !strings.Contains(doc, tt.want) {
				t.Errorf("manifest missing %q:\n%s", tt.want, doc)
			}
		})
	}
}

func TestGenerateYAMLHostlessRule(t *testing.T) {
	r := sampleRoute()
	r.Host = ""
	doc := GenerateYAML(r)
	if strings.Contains(doc, "host:") {
		t.Errorf("hostless route must not render a host line:\n%s", doc)
	}
	if !strings.Contains(doc, "- http:") {
		t.Errorf("hostless route should render a bare http rule:\n%s", doc)
	}
}

func TestGenerateYAMLTLS(t *testing.T) {
	r := sampleRoute()
	r.TLSSecret = "web-tls"
	r.TLSHosts = []string{"web.example.com"}
	doc := GenerateYAML(r)
	if !strings.Contains(doc, "secretName: web-tls") || !strings.Contains(doc, "tls:") {
		t.Errorf("tls block missing:\n%s", doc)
	}

	// Secret without hosts renders no TLS block.
	r.TLSHosts = nil
	if doc := GenerateYAML(r); strings.Contains(doc, "tls:") {
		t.Errorf("tls block rendered without hosts:\n%s", doc)
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*IngressRoute)
	}{
		{"full route", func(r *IngressRoute) {}},
		{"hostless", func(r *IngressRoute) { r.Host = "" }},
		{"named port", func(r *IngressRoute) {
			r.TargetPortNumber = 0
			r.TargetPortName = "http"
		}},
		{"custom path", func(r *IngressRoute) {
			r.Path = "/api"
			r.PathType = "Exact"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := sampleRoute()
			tt.modify(&want)

			got := ParseManifest(GenerateYAML(want))
			if got == nil {
				t.Fatal("ParseManifest returned nil for a generated manifest")
			}
			if got.RouteID != want.RouteID || got.FieldID != want.FieldID {
				t.Errorf("identity = %s/%s, want %s/%s", got.RouteID, got.FieldID, want.RouteID, want.FieldID)
			}
			if got.Host != want.Host || got.Path != want.Path || got.PathType != want.PathType {
				t.Errorf("rule = %q %q %q, want %q %q %q",
					got.Host, got.Path, got.PathType, want.Host, want.Path, want.PathType)
			}
			if got.TargetService != want.TargetService {
				t.Errorf("service = %q, want %q", got.TargetService, want.TargetService)
			}
			if got.TargetPortName != want.TargetPortName {
				t.Errorf("port name = %q, want %q", got.TargetPortName, want.TargetPortName)
			}
			if got.IngressName != want.IngressName || got.IngressNamespace != want.IngressNamespace {
				t.Errorf("ingress = %s/%s, want %s/%s",
					got.IngressNamespace, got.IngressName, want.IngressNamespace, want.IngressName)
			}
			if got.TargetNamespace != want.IngressNamespace {
				t.Errorf("target namespace = %q, want the ingress namespace %q",
					got.TargetNamespace, want.IngressNamespace)
			}
		})
	}
}

func TestParseManifestForeignDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an ingress", "kind: Service\nmetadata:\n  name: web\n"},
		{"ingress without identity keys", `kind: Ingress
metadata:
  name: other-teams-ingress
  namespace: apps
`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseManifest(tt.doc); got != nil {
				t.Errorf("ParseManifest() = %+v, want nil", got)
			}
		})
	}
}

func TestParseManifestSingleKeySuffices(t *testing.T) {
	doc := `kind: Ingress
metadata:
  name: partial
  namespace: apps
  annotations:
    endfield.io/routeId: abc
`
	r := ParseManifest(doc)
	if r == nil {
		t.Fatal("a manifest with one identity key is still ours")
	}
	if r.RouteID != "abc" || r.FieldID != "" {
		t.Errorf("identity = %q/%q, want abc/empty", r.RouteID, r.FieldID)
	}
	if r.Path != "/" || r.PathType != "Prefix" {
		t.Errorf("defaults = %q %q, want / Prefix", r.Path, r.PathType)
	}
}
