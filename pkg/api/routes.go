package api

import (
	"net/http"

	"github.com/endfield/endfield/pkg/field"
	"github.com/endfield/endfield/pkg/identity"
	"github.com/endfield/endfield/pkg/metrics"
	"github.com/endfield/endfield/pkg/route"
	"github.com/endfield/endfield/pkg/serializer"
	"github.com/endfield/endfield/pkg/server"
)

// HandleRoutes handles GET /v1/routes?project=: the merged file-preferred
// route list.
func (h *Handlers) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	projectPath, ok := requireQuery(w, r, "project")
	if !ok {
		return
	}

	routes, err := h.registry.LoadRoutes(r.Context(), projectPath)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	metrics.RouteMergeTotal.Inc()
	serializer.RespondJSON(w, http.StatusOK, struct {
		Routes []route.IngressRoute `json:"routes"`
	}{Routes: routes})
}

// normalizeRoute fills the generated identity fields a new route may omit.
func normalizeRoute(r *route.IngressRoute) {
	if r.RouteID == "" {
		r.RouteID = identity.NewRouteID()
	}
	if r.IngressName == "" {
		r.IngressName = identity.IngressNameForRoute(r.RouteID)
	}
	if r.Path == "" {
		r.Path = "/"
	}
	if r.PathType == "" {
		r.PathType = "Prefix"
	}
	if r.IngressClassName == "" {
		r.IngressClassName = "nginx"
	}
	if r.IngressNamespace == "" {
		r.IngressNamespace = r.TargetNamespace
	}
}

// HandleRouteApply handles POST /v1/routes/apply.
func (h *Handlers) HandleRouteApply(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	var req route.IngressRoute
	if !decodeBody(w, r, &req) {
		return
	}
	normalizeRoute(&req)

	result := h.kube.ApplyRoute(r.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	serializer.RespondJSON(w, status, result)
}

// HandleRouteDelete handles POST /v1/routes/delete.
func (h *Handlers) HandleRouteDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	var req struct {
		Name      string `json:"name"`
		Namespace string `json:"namespace"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.kube.DeleteRoute(r.Context(), req.Name, req.Namespace); err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Deleted string `json:"deleted"`
	}{Deleted: req.Name})
}

// HandleRouteYAML handles POST /v1/routes/yaml: render the Ingress manifest
// for a route without touching the cluster.
func (h *Handlers) HandleRouteYAML(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req route.IngressRoute
	if !decodeBody(w, r, &req) {
		return
	}
	normalizeRoute(&req)
	serializer.RespondJSON(w, http.StatusOK, struct {
		YAML string `json:"yaml"`
	}{YAML: route.GenerateYAML(req)})
}

// HandleEdges handles GET /v1/routes/edges?project=: routes resolved
// against the current field set.
func (h *Handlers) HandleEdges(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	projectPath, ok := requireQuery(w, r, "project")
	if !ok {
		return
	}

	routes, err := h.registry.LoadRoutes(r.Context(), projectPath)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	scan := field.Scan(projectPath)
	edges := route.ResolveEdges(scan.Fields, routes)
	serializer.RespondJSON(w, http.StatusOK, struct {
		Edges []route.Edge `json:"edges"`
	}{Edges: edges})
}

// HandleController handles GET /v1/routes/controller?namespace=&release=.
func (h *Handlers) HandleController(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	namespace, ok := requireQuery(w, r, "namespace")
	if !ok {
		return
	}
	release, ok := requireQuery(w, r, "release")
	if !ok {
		return
	}
	status := h.kube.DetectIngressController(r.Context(), namespace, release)
	serializer.RespondJSON(w, http.StatusOK, status)
}

// HandleStatus handles GET /v1/cluster/status.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, h.kube.Status(r.Context()))
}

// HandleNamespaces handles GET /v1/cluster/namespaces.
func (h *Handlers) HandleNamespaces(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	namespaces, err := h.kube.ListNamespaces(r.Context())
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Namespaces []string `json:"namespaces"`
	}{Namespaces: namespaces})
}

// HandleServices handles GET /v1/cluster/services?namespace=.
func (h *Handlers) HandleServices(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	namespace, ok := requireQuery(w, r, "namespace")
	if !ok {
		return
	}
	services, err := h.kube.ListServices(r.Context(), namespace)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, services)
}
