package cli

import (
	"testing"
)

func TestParseEnvVars(t *testing.T) {
	got, err := parseEnvVars([]string{"POSTGRES_DB=app", "EMPTY_OK="})
	if err != nil {
		t.Fatalf("parseEnvVars() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d vars, want 2: %+v", len(got), got)
	}
	if got[0].Key != "POSTGRES_DB" || got[0].Value != "app" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Key != "EMPTY_OK" || got[1].Value != "" {
		t.Errorf("second = %+v", got[1])
	}

	for _, bad := range []string{"novalue", "=orphan"} {
		if _, err := parseEnvVars([]string{bad}); err == nil {
			t.Errorf("parseEnvVars(%q) should fail", bad)
		}
	}
}

func TestParseImagePorts(t *testing.T) {
	got, err := parseImagePorts([]string{"8080", "metrics:9090"})
	if err != nil {
		t.Fatalf("parseImagePorts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d ports: %+v", len(got), got)
	}
	if got[0].ContainerPort != 8080 || got[0].Name != "" {
		t.Errorf("bare port = %+v", got[0])
	}
	if got[1].ContainerPort != 9090 || got[1].Name != "metrics" {
		t.Errorf("named port = %+v", got[1])
	}

	for _, bad := range []string{"http", "web:abc", "web:0", "-1"} {
		if _, err := parseImagePorts([]string{bad}); err == nil {
			t.Errorf("parseImagePorts(%q) should fail", bad)
		}
	}
}

func TestParseKeyValues(t *testing.T) {
	got, err := parseKeyValues([]string{"DB_HOST=pg.databases", "TOKEN=a=b"}, "--env")
	if err != nil {
		t.Fatalf("parseKeyValues() error = %v", err)
	}
	if got[0].Key != "DB_HOST" || got[0].Value != "pg.databases" {
		t.Errorf("first = %+v", got[0])
	}
	// Everything after the first '=' belongs to the value.
	if got[1].Key != "TOKEN" || got[1].Value != "a=b" {
		t.Errorf("second = %+v", got[1])
	}

	if _, err := parseKeyValues([]string{"broken"}, "--secret-env"); err == nil {
		t.Error("missing separator should fail")
	}
}
