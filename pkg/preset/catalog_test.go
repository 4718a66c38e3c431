package preset

import (
	"testing"
)

func TestLoad(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(catalog.Presets) == 0 {
		t.Fatal("Load() returned no raw presets")
	}
	if len(catalog.HelmPresets) == 0 {
		t.Fatal("Load() returned no helm presets")
	}

	// Every preset must carry the minimum to be renderable.
	for _, p := range catalog.Presets {
		if p.TypeID == "" || p.Image == "" || p.DefaultPort == 0 {
			t.Errorf("preset %+v missing type id, image or port", p)
		}
		if p.Kind != KindDeployment && p.Kind != KindStatefulSet {
			t.Errorf("preset %s has unknown kind %q", p.TypeID, p.Kind)
		}
	}
	for _, hp := range catalog.HelmPresets {
		if hp.TypeID == "" || hp.ChartName == "" || hp.Version == "" || hp.Repo == "" {
			t.Errorf("helm preset %+v missing chart pin", hp)
		}
	}
}

func TestPresetLookup(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p, ok := catalog.Preset("postgres")
	if !ok {
		t.Fatal("Preset(postgres) not found")
	}
	if p.Kind != KindStatefulSet {
		t.Errorf("postgres kind = %q, want StatefulSet", p.Kind)
	}
	if p.DefaultPort != 5432 {
		t.Errorf("postgres port = %d, want 5432", p.DefaultPort)
	}

	if _, ok := catalog.Preset("does-not-exist"); ok {
		t.Error("Preset(does-not-exist) unexpectedly found")
	}
}

func TestHelmPresetLookup(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	hp, ok := catalog.HelmPreset("ingress-nginx")
	if !ok {
		t.Fatal("HelmPreset(ingress-nginx) not found")
	}
	if hp.ChartName != "ingress-nginx" {
		t.Errorf("chart name = %q, want ingress-nginx", hp.ChartName)
	}
}

func TestSuggest(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	tests := []struct {
		name   string
		typeID string
		want   string
	}{
		{"one typo", "postgre", "postgres"},
		{"transposition", "rdeis", "redis"},
		{"nothing close", "zzzzzzzzzzzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalog.Suggest(tt.typeID); got != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.typeID, got, tt.want)
			}
		})
	}
}

func TestIsSecretKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"POSTGRES_PASSWORD", true},
		{"postgres_password", true},
		{"Api-Secret", true},
		{"ACCESS_KEY", true},
		{"AUTH_TOKEN", true},
		{"BYPASS_CACHE", true}, // contains PASS
		{"POSTGRES_DB", false},
		{"LOG_LEVEL", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSecretKey(tt.key); got != tt.want {
				t.Errorf("IsSecretKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestPartitionEnv(t *testing.T) {
	env := []EnvVar{
		{Key: "DB_NAME", Value: "app"},
		{Key: "DB_PASSWORD", Value: "s3cret"},
		{Key: "LOG_LEVEL", Value: "debug"},
		{Key: "API_TOKEN", Value: "t0ken"},
	}
	sensitive, plain := PartitionEnv(env)
	if len(sensitive) != 2 || sensitive[0].Key != "DB_PASSWORD" || sensitive[1].Key != "API_TOKEN" {
		t.Errorf("sensitive = %v, want [DB_PASSWORD API_TOKEN] in input order", sensitive)
	}
	if len(plain) != 2 || plain[0].Key != "DB_NAME" || plain[1].Key != "LOG_LEVEL" {
		t.Errorf("plain = %v, want [DB_NAME LOG_LEVEL] in input order", plain)
	}
}

func TestTitle(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := catalog.Title("some-unknown-id"); got != "Some-Unknown-Id" {
		t.Errorf("Title(some-unknown-id) = %q, want title-cased fallback", got)
	}
}
