package route

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/endfield/endfield/pkg/errors"
)

// FileSource yields the routes present in the project's manifests.
type FileSource interface {
	FileRoutes(ctx context.Context, projectPath string) ([]IngressRoute, error)
}

// ClusterSource yields the routes present in the live cluster.
type ClusterSource interface {
	DiscoverRoutes(ctx context.Context) ([]DiscoveredRoute, error)
}

// Merge combines file and cluster routes into one file-preferred list. For
// a route_id present in both, the file version wins whole, no field-level
// merge. Cluster-only routes are appended in discovery order. Merging an
// already-merged result against the same cluster input is a no-op.
func Merge(fileRoutes []IngressRoute, clusterRoutes []DiscoveredRoute) []IngressRoute {
	out := make([]IngressRoute, 0, len(fileRoutes)+len(clusterRoutes))
	seen := make(map[string]bool, len(fileRoutes))
	for _, r := range fileRoutes {
		out = append(out, r)
		seen[r.RouteID] = true
	}
	for _, d := range clusterRoutes {
		if seen[d.RouteID] {
			continue
		}
		seen[d.RouteID] = true
		out = append(out, d.ToRoute())
	}
	return out
}

// Registry serves the merged route view. File routes are read synchronously
// on every load; cluster routes come from a cache refreshed out of band, so
// an unreachable cluster never blocks the file-backed view.
type Registry struct {
	files   FileSource
	cluster ClusterSource
	log     *slog.Logger

	mu         sync.RWMutex
	discovered []DiscoveredRoute
	refreshing atomic.Bool
}

// NewRegistry wires a registry over the given sources.
func NewRegistry(files FileSource, cluster ClusterSource, log *slog.Logger) *Registry {
	return &Registry{files: files, cluster: cluster, log: log}
}

// LoadRoutes returns the merged routes for a project. When file routes
// exist they return immediately against the cached cluster state, and a
// background refresh updates the cache for the next load. With zero file
// routes the cluster is queried synchronously, since there is nothing to
// show otherwise.
func (r *Registry) LoadRoutes(ctx context.Context, projectPath string) ([]IngressRoute, error) {
	fileRoutes, err := r.files.FileRoutes(ctx, projectPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "scanning project routes", err)
	}

	if len(fileRoutes) == 0 {
		discovered, err := r.cluster.DiscoverRoutes(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, "discovering cluster routes", err)
		}
		r.setDiscovered(discovered)
		return Merge(nil, discovered), nil
	}

	merged := Merge(fileRoutes, r.snapshot())
	r.refreshAsync(context.WithoutCancel(ctx))
	return merged, nil
}

// Discovered returns the last cached cluster view.
func (r *Registry) Discovered() []DiscoveredRoute {
	return r.snapshot()
}

func (r *Registry) snapshot() []DiscoveredRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DiscoveredRoute, len(r.discovered))
	copy(out, r.discovered)
	return out
}

func (r *Registry) setDiscovered(routes []DiscoveredRoute) {
	r.mu.Lock()
	r.discovered = routes
	r.mu.Unlock()
}

func (r *Registry) refreshAsync(ctx context.Context) {
	if !r.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer r.refreshing.Store(false)
		discovered, err := r.cluster.DiscoverRoutes(ctx)
		if err != nil {
			r.log.Warn("cluster route refresh failed", "error", err)
			return
		}
		r.setDiscovered(discovered)
		r.log.Debug("cluster route cache refreshed", "routes", len(discovered))
	}()
}
