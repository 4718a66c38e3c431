package route

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoutes(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("routes/web.yaml", GenerateYAML(sampleRoute()))
	// A foreign ingress and a non-ingress document are both ignored.
	write("routes/foreign.yaml", "kind: Ingress\nmetadata:\n  name: other\n")
	write("services/web-deployment.yaml", "kind: Deployment\nmetadata:\n  name: web\n")
	// Multi-document file with one route.
	second := sampleRoute()
	second.RouteID = "second-route"
	write("routes/multi.yaml", "kind: Service\nmetadata:\n  name: x\n---\n"+GenerateYAML(second))

	scanner := NewFileScanner(slog.New(slog.DiscardHandler))
	routes, err := scanner.FileRoutes(context.Background(), root)
	if err != nil {
		t.Fatalf("FileRoutes() error = %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2: %+v", len(routes), routes)
	}
	// Path order: routes/multi.yaml sorts before routes/web.yaml.
	if routes[0].RouteID != "second-route" || routes[1].RouteID != sampleRoute().RouteID {
		t.Errorf("route order = %s, %s", routes[0].RouteID, routes[1].RouteID)
	}
}

func TestFileRoutesCanceledContext(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.yaml"), []byte("kind: Service\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewFileScanner(slog.New(slog.DiscardHandler))
	if _, err := scanner.FileRoutes(ctx, root); err == nil {
		t.Error("expected context error")
	}
}
