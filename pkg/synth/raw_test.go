package synth

import (
	"strings"
	"testing"

	"github.com/endfield/endfield/pkg/preset"
)

func mustPreset(t *testing.T, typeID string) *preset.Preset {
	t.Helper()
	catalog, err := preset.Load()
	if err != nil {
		t.Fatalf("preset.Load() error = %v", err)
	}
	p, ok := catalog.Preset(typeID)
	if !ok {
		t.Fatalf("preset %q not in catalog", typeID)
	}
	return p
}

func TestSynthesizeRawPostgres(t *testing.T) {
	fs := SynthesizeRaw(RawInput{
		Name:      "db1",
		Preset:    mustPreset(t, "postgres"),
		Namespace: "ns1",
	})

	wantFiles := []string{
		"databases/db1-namespace.yaml",
		"databases/db1-secret.yaml",
		"databases/db1-headless-svc.yaml",
		"databases/db1-statefulset.yaml",
		"databases/db1-service.yaml",
	}
	for _, path := range wantFiles {
		if !fs.Has(path) {
			t.Errorf("missing file %s, got %v", path, fs.Paths())
		}
	}
	if fs.Len() != len(wantFiles) {
		t.Errorf("file count = %d, want %d: %v", fs.Len(), len(wantFiles), fs.Paths())
	}

	sts, _ := fs.Get("databases/db1-statefulset.yaml")
	for _, want := range []string{
		"kind: StatefulSet",
		"name: db1",
		"namespace: ns1",
		"image: postgres:16",
		"containerPort: 5432",
		"serviceName: db1-headless",
		"volumeClaimTemplates:",
		"storage: 10Gi",
	} {
		if !strings.Contains(sts, want) {
			t.Errorf("statefulset missing %q", want)
		}
	}

	// POSTGRES_PASSWORD lands in the Secret and is referenced, not inlined.
	secret, _ := fs.Get("databases/db1-secret.yaml")
	if !strings.Contains(secret, `POSTGRES_PASSWORD: "changeme"`) {
		t.Error("secret missing POSTGRES_PASSWORD entry")
	}
	if !strings.Contains(sts, "secretKeyRef:") || strings.Contains(sts, `value: "changeme"`) {
		t.Error("statefulset should reference the secret, not inline the password")
	}
}

func TestSynthesizeRawDeterministic(t *testing.T) {
	in := RawInput{Name: "db1", Preset: mustPreset(t, "postgres"), Namespace: "ns1"}
	first := SynthesizeRaw(in)
	second := SynthesizeRaw(in)
	if len(first.Files()) != len(second.Files()) {
		t.Fatal("repeated synthesis produced different file counts")
	}
	for _, f := range first.Files() {
		other, ok := second.Get(f.Path)
		if !ok || other != f.Content {
			t.Errorf("file %s differs between runs", f.Path)
		}
	}
}

func TestSynthesizeRawOneWorkloadPerPreset(t *testing.T) {
	catalog, err := preset.Load()
	if err != nil {
		t.Fatalf("preset.Load() error = %v", err)
	}
	for _, p := range catalog.Presets {
		fs := SynthesizeRaw(RawInput{Name: "x", Preset: &p, Namespace: "ns"})
		workloads := 0
		for _, f := range fs.Files() {
			if strings.Contains(f.Content, "kind: Deployment") || strings.Contains(f.Content, "kind: StatefulSet") {
				workloads++
			}
		}
		if workloads != 1 {
			t.Errorf("preset %s produced %d workloads, want exactly 1", p.TypeID, workloads)
		}
	}
}

func TestSynthesizeRawPortOverride(t *testing.T) {
	fs := SynthesizeRaw(RawInput{
		Name:      "cache",
		Preset:    mustPreset(t, "redis"),
		Namespace: "apps",
		Port:      6380,
	})
	found := false
	for _, f := range fs.Files() {
		if strings.Contains(f.Content, "containerPort: 6380") {
			found = true
		}
		if strings.Contains(f.Content, "containerPort: 6379") {
			t.Errorf("file %s still uses the default port", f.Path)
		}
	}
	if !found {
		t.Error("no file carries the overridden port")
	}
}

func TestSynthesizeRawSanitizesName(t *testing.T) {
	fs := SynthesizeRaw(RawInput{
		Name:      "My DB",
		Preset:    mustPreset(t, "postgres"),
		Namespace: "ns1",
	})
	for _, path := range fs.Paths() {
		if strings.ContainsAny(path, " ") || path != strings.ToLower(path) {
			t.Errorf("path %q not sanitized", path)
		}
	}
	if !fs.Has("databases/my-db-statefulset.yaml") {
		t.Errorf("expected sanitized statefulset path, got %v", fs.Paths())
	}
}

func TestSynthesizeRawIngressControllerService(t *testing.T) {
	fs := SynthesizeRaw(RawInput{
		Name:      "edge",
		Preset:    mustPreset(t, "nginx-ingress"),
		Namespace: "infra",
	})
	svc, ok := fs.Get("gateways/edge-service.yaml")
	if !ok {
		t.Fatalf("service file missing, got %v", fs.Paths())
	}
	if !strings.Contains(svc, "type: LoadBalancer") {
		t.Error("ingress controller service should be a LoadBalancer")
	}
}

func TestEnvBlockSingleRepresentation(t *testing.T) {
	env := []preset.EnvVar{
		{Key: "DB_PASSWORD", Value: "secret"},
		{Key: "DB_NAME", Value: "app"},
	}
	block := envBlock("db", env, true, true)
	if !strings.Contains(block, "secretKeyRef:") {
		t.Error("sensitive var should reference the secret")
	}
	if !strings.Contains(block, "configMapKeyRef:") {
		t.Error("plain var should reference the configmap")
	}
	if strings.Contains(block, `value: "secret"`) || strings.Contains(block, `value: "app"`) {
		t.Error("referenced vars must not also be inlined")
	}

	// Without secret or configmap everything inlines.
	inline := envBlock("db", env, false, false)
	if strings.Contains(inline, "KeyRef") {
		t.Error("inline block should not reference anything")
	}
	if !strings.Contains(inline, `value: "secret"`) {
		t.Error("inline block missing value")
	}
}
