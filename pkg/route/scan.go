package route

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/endfield/endfield/pkg/field"
	"github.com/endfield/endfield/pkg/yamlscan"
)

// ParseManifest reads a route back from an on-disk Ingress document. The
// document is scanned for the two identity keys rather than fully parsed;
// a manifest carrying neither key belongs to someone else and returns nil.
// Not an error: project directories routinely hold foreign Ingresses.
func ParseManifest(doc string) *IngressRoute {
	if yamlscan.TopLevelField(doc, "kind") != "Ingress" {
		return nil
	}
	routeID := yamlscan.TaggedValue(doc, RouteIDKey)
	fieldID := yamlscan.TaggedValue(doc, FieldIDKey)
	if routeID == "" && fieldID == "" {
		return nil
	}

	r := &IngressRoute{
		RouteID:          routeID,
		FieldID:          fieldID,
		IngressName:      yamlscan.MetadataField(doc, "name"),
		IngressNamespace: yamlscan.MetadataField(doc, "namespace"),
		IngressClassName: yamlscan.TaggedValue(doc, "ingressClassName"),
		Path:             "/",
		PathType:         "Prefix",
	}

	inService := false
	inPort := false
	for _, line := range strings.Split(doc, "\n") {
		t := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(t, "- host:"):
			r.Host = scalarAfter(t, "- host:")
		case strings.HasPrefix(t, "- path:"):
			if v := scalarAfter(t, "- path:"); v != "" {
				r.Path = v
			}
		case strings.HasPrefix(t, "pathType:"):
			if v := scalarAfter(t, "pathType:"); v != "" {
				r.PathType = v
			}
		case t == "service:":
			inService, inPort = true, false
		case inService && !inPort && strings.HasPrefix(t, "name:"):
			r.TargetService = scalarAfter(t, "name:")
		case inService && t == "port:":
			inPort = true
		case inPort && strings.HasPrefix(t, "number:"):
			r.TargetPortNumber, _ = strconv.Atoi(scalarAfter(t, "number:"))
			inService, inPort = false, false
		case inPort && strings.HasPrefix(t, "name:"):
			r.TargetPortName = scalarAfter(t, "name:")
			inService, inPort = false, false
		case strings.HasPrefix(t, "secretName:"):
			r.TLSSecret = scalarAfter(t, "secretName:")
		}
	}

	// The rule targets a Service in the Ingress's own namespace.
	r.TargetNamespace = r.IngressNamespace
	return r
}

func scalarAfter(trimmed, prefix string) string {
	return strings.Trim(strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), `"'`)
}

// FileScanner discovers routes from the manifests on disk.
type FileScanner struct {
	log *slog.Logger
}

// NewFileScanner returns a scanner logging through the given logger.
func NewFileScanner(log *slog.Logger) *FileScanner {
	return &FileScanner{log: log}
}

// FileRoutes scans every YAML file under projectPath and returns the routes
// found, in path order. Unreadable files are logged and skipped so one bad
// file never hides the rest of the project.
func (s *FileScanner) FileRoutes(ctx context.Context, projectPath string) ([]IngressRoute, error) {
	var routes []IngressRoute
	for _, path := range field.ListYAMLPaths(projectPath) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		for _, doc := range yamlscan.SplitDocs(string(content)) {
			if r := ParseManifest(doc); r != nil {
				routes = append(routes, *r)
			}
		}
	}
	return routes, nil
}
