package kube

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"

	"github.com/endfield/endfield/pkg/route"
)

func managedIngress(name, namespace, routeID, fieldID string) *networkingv1.Ingress {
	pathType := networkingv1.PathTypePrefix
	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				"app.kubernetes.io/managed-by": "endfield",
				route.RouteIDKey:               routeID,
				route.FieldIDKey:               fieldID,
			},
			Annotations: map[string]string{
				route.RouteIDKey: routeID,
				route.FieldIDKey: fieldID,
			},
		},
		Spec: networkingv1.IngressSpec{
			IngressClassName: ptr.To("nginx"),
			Rules: []networkingv1.IngressRule{{
				Host: "web.example.com",
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path:     "/api",
							PathType: &pathType,
							Backend: networkingv1.IngressBackend{
								Service: &networkingv1.IngressServiceBackend{
									Name: "web",
									Port: networkingv1.ServiceBackendPort{Number: 8080},
								},
							},
						}},
					},
				},
			}},
		},
	}
}

func TestDiscoverRoutes(t *testing.T) {
	complete := managedIngress("ef-route-1a2b3c4d", "apps", "1a2b3c4d-ffff", "web-web-deployment-0")
	complete.Status.LoadBalancer.Ingress = []networkingv1.IngressLoadBalancerIngress{{IP: "203.0.113.7"}}

	// Carries the managed-by label but no identity annotations: skipped.
	stray := managedIngress("stray", "apps", "", "")
	stray.Annotations = map[string]string{}

	c := NewClientWith(fake.NewClientset(complete, stray), NewRunner(discard()), discard())

	routes, err := c.DiscoverRoutes(context.Background())
	if err != nil {
		t.Fatalf("DiscoverRoutes() error = %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("got %d routes, want 1: %+v", len(routes), routes)
	}

	d := routes[0]
	if d.RouteID != "1a2b3c4d-ffff" || d.FieldID != "web-web-deployment-0" {
		t.Errorf("identity = %s/%s", d.RouteID, d.FieldID)
	}
	if d.Host != "web.example.com" || d.Path != "/api" || d.PathType != "Prefix" {
		t.Errorf("rule = %q %q %q", d.Host, d.Path, d.PathType)
	}
	if d.TargetService != "web" || d.TargetPortNumber != 8080 {
		t.Errorf("backend = %q:%d", d.TargetService, d.TargetPortNumber)
	}
	if d.IngressClassName != "nginx" {
		t.Errorf("class = %q", d.IngressClassName)
	}
	if d.Address != "203.0.113.7" {
		t.Errorf("address = %q", d.Address)
	}
	if d.TargetNamespace != "apps" || d.IngressNamespace != "apps" {
		t.Errorf("namespaces = %q/%q", d.TargetNamespace, d.IngressNamespace)
	}
}

func TestEnsureNamespace(t *testing.T) {
	clientset := fake.NewClientset(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: "existing"},
	})
	c := NewClientWith(clientset, NewRunner(discard()), discard())

	created, err := c.EnsureNamespace(context.Background(), "existing")
	if err != nil {
		t.Fatalf("EnsureNamespace(existing) error = %v", err)
	}
	if created {
		t.Error("existing namespace reported as created")
	}

	created, err = c.EnsureNamespace(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("EnsureNamespace(fresh) error = %v", err)
	}
	if !created {
		t.Error("fresh namespace not reported as created")
	}
	if _, err := clientset.CoreV1().Namespaces().Get(context.Background(), "fresh", metav1.GetOptions{}); err != nil {
		t.Errorf("namespace not actually created: %v", err)
	}
}

func TestDeleteRouteIgnoresMissing(t *testing.T) {
	c := NewClientWith(fake.NewClientset(), NewRunner(discard()), discard())
	if err := c.DeleteRoute(context.Background(), "nope", "apps"); err != nil {
		t.Errorf("deleting an absent ingress should succeed, got %v", err)
	}
}

func TestListServices(t *testing.T) {
	clientset := fake.NewClientset(&corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "apps"},
		Spec: corev1.ServiceSpec{
			Ports: []corev1.ServicePort{{Port: 80}, {Port: 443}},
		},
	})
	c := NewClientWith(clientset, NewRunner(discard()), discard())

	services, err := c.ListServices(context.Background(), "apps")
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(services) != 1 || services[0].Name != "web" {
		t.Fatalf("services = %+v", services)
	}
	if len(services[0].Ports) != 2 || services[0].Ports[0] != "80" {
		t.Errorf("ports = %v", services[0].Ports)
	}
}

func TestDetectIngressController(t *testing.T) {
	clientset := fake.NewClientset(
		&networkingv1.IngressClass{
			ObjectMeta: metav1.ObjectMeta{
				Name:   "custom-nginx",
				Labels: map[string]string{"app.kubernetes.io/instance": "ingress"},
			},
		},
		&corev1.Service{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "ingress-ingress-nginx-controller",
				Namespace: "infra",
				Labels:    map[string]string{"app.kubernetes.io/instance": "ingress"},
			},
			Status: corev1.ServiceStatus{
				LoadBalancer: corev1.LoadBalancerStatus{
					Ingress: []corev1.LoadBalancerIngress{{IP: "203.0.113.10"}},
				},
			},
		},
	)
	c := NewClientWith(clientset, NewRunner(discard()), discard())

	status := c.DetectIngressController(context.Background(), "infra", "ingress")
	if status.IngressClassName != "custom-nginx" {
		t.Errorf("class = %q, want custom-nginx", status.IngressClassName)
	}
	if !status.Ready || status.ControllerServiceName != "ingress-ingress-nginx-controller" {
		t.Errorf("controller = %+v", status)
	}
	if status.Endpoint != "203.0.113.10" {
		t.Errorf("endpoint = %q", status.Endpoint)
	}
}

func TestDetectIngressControllerAbsent(t *testing.T) {
	c := NewClientWith(fake.NewClientset(), NewRunner(discard()), discard())
	status := c.DetectIngressController(context.Background(), "infra", "ingress")
	if status.Ready {
		t.Error("no controller service should mean not ready")
	}
	if status.IngressClassName != "nginx" {
		t.Errorf("class = %q, want the nginx default", status.IngressClassName)
	}
}
