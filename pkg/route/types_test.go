package route

import "testing"

func TestDiscoveredToRoute(t *testing.T) {
	d := DiscoveredRoute{
		RouteID:          "1a2b3c4d-ffff",
		FieldID:          "web-web-deployment-0",
		IngressName:      "ef-route-1a2b3c4d",
		IngressNamespace: "apps",
		Host:             "web.example.com",
		Path:             "/api",
		PathType:         "Prefix",
		TargetService:    "web",
		TargetNamespace:  "apps",
		TargetPortNumber: 8080,
		TargetPortName:   "http",
		IngressClassName: "nginx",
		TLSSecret:        "web-tls",
		Address:          "203.0.113.7",
	}

	r := d.ToRoute()

	if r.RouteID != d.RouteID || r.FieldID != d.FieldID {
		t.Errorf("identity = %s/%s", r.RouteID, r.FieldID)
	}
	if r.IngressName != d.IngressName || r.IngressNamespace != d.IngressNamespace {
		t.Errorf("ingress = %s/%s", r.IngressName, r.IngressNamespace)
	}
	if r.Host != d.Host || r.Path != d.Path || r.PathType != d.PathType {
		t.Errorf("rule = %q %q %q", r.Host, r.Path, r.PathType)
	}
	if r.TargetService != d.TargetService || r.TargetNamespace != d.TargetNamespace {
		t.Errorf("target = %s/%s", r.TargetNamespace, r.TargetService)
	}
	if r.TargetPortNumber != d.TargetPortNumber || r.TargetPortName != d.TargetPortName {
		t.Errorf("port = %d/%q", r.TargetPortNumber, r.TargetPortName)
	}
	if r.IngressClassName != d.IngressClassName || r.TLSSecret != d.TLSSecret {
		t.Errorf("class/tls = %q/%q", r.IngressClassName, r.TLSSecret)
	}

	// TLS hosts and annotations cannot be recovered from discovery.
	if r.TLSHosts != nil {
		t.Errorf("TLSHosts = %v, want nil", r.TLSHosts)
	}
	if r.Annotations != nil {
		t.Errorf("Annotations = %v, want nil", r.Annotations)
	}
}
