package identity

import (
	"strings"
	"testing"
)

func TestIngressNameForRoute(t *testing.T) {
	tests := []struct {
		name    string
		routeID string
		want    string
	}{
		{"uuid truncated to 8", "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809", "ef-route-1a2b3c4d"},
		{"short id kept whole", "abc", "ef-route-abc"},
		{"exactly 8", "12345678", "ef-route-12345678"},
		{"empty id", "", "ef-route-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IngressNameForRoute(tt.routeID); got != tt.want {
				t.Errorf("IngressNameForRoute(%q) = %q, want %q", tt.routeID, got, tt.want)
			}
		})
	}
}

func TestIngressNameForRouteDeterministic(t *testing.T) {
	id := NewRouteID()
	first := IngressNameForRoute(id)
	for i := 0; i < 10; i++ {
		if got := IngressNameForRoute(id); got != first {
			t.Fatalf("IngressNameForRoute not deterministic: %q vs %q", got, first)
		}
	}
}

func TestNewRouteIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRouteID()
		if seen[id] {
			t.Fatalf("NewRouteID returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "my-service", "my-service"},
		{"uppercase lowered", "MyService", "myservice"},
		{"spaces and dots replaced", "my service.v2", "my-service-v2"},
		{"underscores replaced", "my_service", "my-service"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for _, r := range got {
				if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
					t.Errorf("Sanitize(%q) produced invalid rune %q", tt.input, string(r))
				}
			}
		})
	}
	if strings.ContainsAny(Sanitize("Weird!@#Name"), "!@#") {
		t.Error("Sanitize left special characters in place")
	}
}
