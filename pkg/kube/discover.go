package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/route"
)

// ManagedBySelector matches every resource this tool applied.
const ManagedBySelector = "app.kubernetes.io/managed-by=endfield"

// EnsureNamespace creates a namespace when it does not exist yet and
// reports whether it had to.
func (c *Client) EnsureNamespace(ctx context.Context, namespace string) (bool, error) {
	_, err := c.kube.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{})
	if err == nil {
		return false, nil
	}
	if !apierrors.IsNotFound(err) {
		return false, errors.Wrap(errors.ErrCodeUnavailable, "checking namespace", err)
	}

	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: namespace}}
	if _, err := c.kube.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{}); err != nil {
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeApply, "creating namespace", err)
	}
	c.log.Info("created namespace", "namespace", namespace)
	return true, nil
}

// DiscoverRoutes lists every managed Ingress in the cluster and projects it
// onto the discovered-route shape. Ingresses missing either identity
// annotation are skipped; something else created them under our label.
func (c *Client) DiscoverRoutes(ctx context.Context) ([]route.DiscoveredRoute, error) {
	list, err := c.kube.NetworkingV1().Ingresses(metav1.NamespaceAll).List(ctx, metav1.ListOptions{
		LabelSelector: ManagedBySelector,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "listing ingresses", err)
	}

	var routes []route.DiscoveredRoute
	for _, ing := range list.Items {
		routeID := ing.Annotations[route.RouteIDKey]
		fieldID := ing.Annotations[route.FieldIDKey]
		if routeID == "" || fieldID == "" {
			continue
		}

		d := route.DiscoveredRoute{
			RouteID:          routeID,
			FieldID:          fieldID,
			IngressName:      ing.Name,
			IngressNamespace: ing.Namespace,
			TargetNamespace:  ing.Namespace,
			Path:             "/",
			PathType:         "Prefix",
		}
		if ing.Spec.IngressClassName != nil {
			d.IngressClassName = *ing.Spec.IngressClassName
		}

		if len(ing.Spec.Rules) > 0 {
			rule := ing.Spec.Rules[0]
			d.Host = rule.Host
			if rule.HTTP != nil && len(rule.HTTP.Paths) > 0 {
				p := rule.HTTP.Paths[0]
				if p.Path != "" {
					d.Path = p.Path
				}
				if p.PathType != nil {
					d.PathType = string(*p.PathType)
				}
				if p.Backend.Service != nil {
					d.TargetService = p.Backend.Service.Name
					d.TargetPortNumber = int(p.Backend.Service.Port.Number)
					d.TargetPortName = p.Backend.Service.Port.Name
				}
			}
		}
		if len(ing.Spec.TLS) > 0 {
			d.TLSSecret = ing.Spec.TLS[0].SecretName
		}
		for _, lb := range ing.Status.LoadBalancer.Ingress {
			if lb.IP != "" {
				d.Address = lb.IP
				break
			}
		}
		routes = append(routes, d)
	}
	return routes, nil
}

// ApplyRoute generates the Ingress manifest for a route and applies it.
// The result carries both subprocess streams so a failure shows kubectl's
// own words.
func (c *Client) ApplyRoute(ctx context.Context, r route.IngressRoute) route.ApplyResult {
	if _, err := c.EnsureNamespace(ctx, r.IngressNamespace); err != nil {
		c.log.Warn("namespace ensure failed before route apply",
			"namespace", r.IngressNamespace, "error", err)
	}

	res := c.ApplyManifest(ctx, route.GenerateYAML(r))
	return route.ApplyResult{
		RouteID:     r.RouteID,
		IngressName: r.IngressName,
		Namespace:   r.IngressNamespace,
		Stdout:      res.Stdout,
		Stderr:      res.Stderr,
		Success:     res.Success,
	}
}

// DeleteRoute removes a managed Ingress. Already gone counts as deleted.
func (c *Client) DeleteRoute(ctx context.Context, name, namespace string) error {
	err := c.kube.NetworkingV1().Ingresses(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return errors.Wrap(errors.ErrCodeApply, "deleting ingress", err)
	}
	return nil
}

// ServiceInfo is one Service and its ports, as route targets.
type ServiceInfo struct {
	Name  string   `json:"name"`
	Ports []string `json:"ports"`
}

// ListServices returns the Services in a namespace with their port numbers.
func (c *Client) ListServices(ctx context.Context, namespace string) ([]ServiceInfo, error) {
	list, err := c.kube.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "listing services", err)
	}

	out := make([]ServiceInfo, 0, len(list.Items))
	for _, svc := range list.Items {
		info := ServiceInfo{Name: svc.Name, Ports: []string{}}
		for _, p := range svc.Spec.Ports {
			info.Ports = append(info.Ports, fmt.Sprintf("%d", p.Port))
		}
		out = append(out, info)
	}
	return out, nil
}

// ListNamespaces returns all namespace names.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	list, err := c.kube.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "listing namespaces", err)
	}
	out := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		out = append(out, ns.Name)
	}
	return out, nil
}

// DetectIngressController locates the ingress controller installed by a
// Helm release: its IngressClass (default nginx) and the load balancer
// endpoint of its controller Service when one is assigned.
func (c *Client) DetectIngressController(ctx context.Context, namespace, releaseName string) route.ControllerStatus {
	status := route.ControllerStatus{IngressClassName: "nginx"}
	selector := "app.kubernetes.io/instance=" + releaseName

	if classes, err := c.kube.NetworkingV1().IngressClasses().List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	}); err == nil && len(classes.Items) > 0 {
		status.IngressClassName = classes.Items[0].Name
	}

	services, err := c.kube.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil || len(services.Items) == 0 {
		return status
	}

	svc := services.Items[0]
	status.ControllerServiceName = svc.Name
	status.Ready = true
	for _, lb := range svc.Status.LoadBalancer.Ingress {
		if lb.IP != "" {
			status.Endpoint = lb.IP
			break
		}
		if lb.Hostname != "" && status.Endpoint == "" {
			status.Endpoint = lb.Hostname
		}
	}
	return status
}
