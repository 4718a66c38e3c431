// Package api wires the domain packages into the HTTP command surface.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/kube"
	"github.com/endfield/endfield/pkg/logging"
	"github.com/endfield/endfield/pkg/route"
	"github.com/endfield/endfield/pkg/server"
)

const (
	name           = "endfield-api"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/endfield/endfield/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Handlers carries the shared dependencies of the HTTP handlers. kube is
// nil when no cluster configuration was found; file-backed operations keep
// working and cluster operations answer 503.
type Handlers struct {
	kube     *kube.Client
	registry *route.Registry
	log      *slog.Logger
}

// NewHandlers builds the handler set over an optional cluster client.
func NewHandlers(kc *kube.Client, log *slog.Logger) *Handlers {
	var cluster route.ClusterSource
	if kc != nil {
		cluster = kc
	} else {
		cluster = unavailableCluster{}
	}
	return &Handlers{
		kube:     kc,
		registry: route.NewRegistry(route.NewFileScanner(log), cluster, log),
		log:      log,
	}
}

// unavailableCluster stands in when no kubeconfig resolves.
type unavailableCluster struct{}

func (unavailableCluster) DiscoverRoutes(context.Context) ([]route.DiscoveredRoute, error) {
	return nil, errors.New(errors.ErrCodeUnavailable, "no cluster configuration found")
}

// Routes returns the route table served behind the middleware chain.
func (h *Handlers) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/project/scan":   h.HandleScan,
		"/v1/project/files":  h.HandleFiles,
		"/v1/project/file":   h.HandleFile,
		"/v1/project/layout": h.HandleLayout,
		"/v1/presets":        h.HandlePresets,

		"/v1/fields/generate": h.HandleGenerateField,
		"/v1/fields/replicas": h.HandleReplicas,
		"/v1/fields/delete":   h.HandleDelete,
		"/v1/infra/generate":  h.HandleGenerateInfra,
		"/v1/image/deploy":    h.HandleImageDeploy,

		"/v1/apply":          h.HandleApply,
		"/v1/helm/template":  h.HandleHelmTemplate,
		"/v1/helm/install":   h.HandleHelmInstall,
		"/v1/helm/uninstall": h.HandleHelmUninstall,

		"/v1/routes":            h.HandleRoutes,
		"/v1/routes/apply":      h.HandleRouteApply,
		"/v1/routes/delete":     h.HandleRouteDelete,
		"/v1/routes/yaml":       h.HandleRouteYAML,
		"/v1/routes/edges":      h.HandleEdges,
		"/v1/routes/controller": h.HandleController,

		"/v1/cluster/status":     h.HandleStatus,
		"/v1/cluster/namespaces": h.HandleNamespaces,
		"/v1/cluster/services":   h.HandleServices,
	}
}

// Serve starts the API server and blocks until shutdown.
func Serve(cfg *server.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	log := slog.Default()
	kc, err := kube.NewClient(log)
	if err != nil {
		slog.Warn("no cluster client, cluster operations disabled", "error", err)
		kc = nil
	}

	h := NewHandlers(kc, log)

	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	}
	if cfg != nil {
		opts = append(opts, server.WithConfig(cfg))
	}

	s := server.New(opts...)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// requireCluster answers 503 and returns false when no cluster client
// exists.
func (h *Handlers) requireCluster(w http.ResponseWriter, r *http.Request) bool {
	if h.kube == nil {
		server.WriteError(w, r, http.StatusServiceUnavailable,
			server.ErrCodeServiceUnavailable, "no cluster configuration found", true, nil)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		server.WriteError(w, r, http.StatusBadRequest,
			server.ErrCodeInvalidRequest, "invalid request body: "+err.Error(), false, nil)
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			server.ErrCodeMethodNotAllowed, "method not allowed", false, nil)
		return false
	}
	return true
}

func requireQuery(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		server.WriteError(w, r, http.StatusBadRequest,
			server.ErrCodeInvalidRequest, "missing query parameter: "+key, false, nil)
		return "", false
	}
	return v, true
}
