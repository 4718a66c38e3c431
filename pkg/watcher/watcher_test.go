package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/endfield/endfield/pkg/errors"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWatchMissingPath(t *testing.T) {
	w := New(func(Event) {}, discard())
	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %v, want not found", errors.CodeOf(err))
	}
}

// collector records delivered events.
type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) add(ev Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *collector) waitFor(t *testing.T, n int) []Event {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if evs := c.snapshot(); len(evs) >= n {
			return evs
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %+v", n, c.snapshot())
	return nil
}

func TestWatchDeliversYAMLEvents(t *testing.T) {
	root := t.TempDir()
	var c collector
	w := New(c.add, discard())
	if err := w.Watch(context.Background(), root); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	path := filepath.Join(root, "web-deployment.yaml")
	if err := os.WriteFile(path, []byte("kind: Deployment\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := c.waitFor(t, 1)
	if events[0].Path != path {
		t.Errorf("event path = %s, want %s", events[0].Path, path)
	}
}

func TestWatchIgnoresNonYAML(t *testing.T) {
	root := t.TempDir()
	var c collector
	w := New(c.add, discard())
	if err := w.Watch(context.Background(), root); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "real.yaml"), []byte("kind: Service\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := c.waitFor(t, 1)
	for _, ev := range events {
		if filepath.Ext(ev.Path) != ".yaml" {
			t.Errorf("non-yaml event leaked: %+v", ev)
		}
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	var c collector
	w := New(c.add, discard())
	if err := w.Watch(context.Background(), root); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	path := filepath.Join(root, "burst.yaml")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("kind: Service\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	c.waitFor(t, 1)
	// Let any stray timers fire before counting.
	time.Sleep(2 * DebounceWindow)
	if evs := c.snapshot(); len(evs) != 1 {
		t.Errorf("burst produced %d events, want 1: %+v", len(evs), evs)
	}
}

func TestSkippedDir(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{"node_modules", true},
		{"vendor", true},
		{"charts", true},
		{"rendered", true},
		{"services", false},
		{"infra", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skippedDir(tt.name); got != tt.want {
				t.Errorf("skippedDir(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInSkippedDir(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"proj/rendered/00-namespace.yaml", true},
		{"proj/infra/ingress/charts/dep/templates/x.yaml", true},
		{"proj/services/web.yaml", false},
		{"./proj/web.yaml", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := inSkippedDir(tt.path); got != tt.want {
				t.Errorf("inSkippedDir(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsYAML(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.yaml", true},
		{"a.yml", true},
		{"a.json", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := isYAML(tt.path); got != tt.want {
			t.Errorf("isYAML(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
