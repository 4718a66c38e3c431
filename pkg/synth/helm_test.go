package synth

import (
	"strings"
	"testing"

	"github.com/endfield/endfield/pkg/preset"
)

func mustHelmPreset(t *testing.T, typeID string) *preset.HelmPreset {
	t.Helper()
	catalog, err := preset.Load()
	if err != nil {
		t.Fatalf("preset.Load() error = %v", err)
	}
	hp, ok := catalog.HelmPreset(typeID)
	if !ok {
		t.Fatalf("helm preset %q not in catalog", typeID)
	}
	return hp
}

func TestSynthesizeHelmLayout(t *testing.T) {
	fs := SynthesizeHelm("ingress", mustHelmPreset(t, "ingress-nginx"))

	for _, path := range []string{
		"infra/ingress/namespace.yaml",
		"infra/ingress/helm/Chart.yaml",
		"infra/ingress/helm/values.yaml",
		"infra/ingress/helm/values.prod.yaml",
		"infra/ingress/rendered/.gitkeep",
	} {
		if !fs.Has(path) {
			t.Errorf("missing file %s, got %v", path, fs.Paths())
		}
	}
}

func TestSynthesizeHelmChartPinsDependency(t *testing.T) {
	hp := mustHelmPreset(t, "ingress-nginx")
	fs := SynthesizeHelm("ingress", hp)

	chart, _ := fs.Get("infra/ingress/helm/Chart.yaml")
	for _, want := range []string{
		"name: ingress",
		"dependencies:",
		"- name: " + hp.ChartName,
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("Chart.yaml missing %q:\n%s", want, chart)
		}
	}
	if !strings.Contains(chart, hp.Version) {
		t.Error("Chart.yaml does not pin the chart version")
	}
	if !strings.Contains(chart, hp.Repo) {
		t.Error("Chart.yaml does not pin the chart repository")
	}
}

func TestSynthesizeHelmNamespaceFallback(t *testing.T) {
	hp := &preset.HelmPreset{
		TypeID:    "custom",
		ChartName: "custom-chart",
		Version:   "1.0.0",
		Repo:      "https://example.com/charts",
	}
	fs := SynthesizeHelm("My Release", hp)

	ns, ok := fs.Get("infra/my-release/namespace.yaml")
	if !ok {
		t.Fatalf("namespace file missing, got %v", fs.Paths())
	}
	if !strings.Contains(ns, "name: infra-my-release") {
		t.Errorf("expected fallback namespace infra-my-release:\n%s", ns)
	}
}

func TestSynthesizeHelmValuesTrailingNewline(t *testing.T) {
	hp := &preset.HelmPreset{
		TypeID:        "custom",
		ChartName:     "c",
		Version:       "1.0.0",
		Repo:          "https://example.com",
		DefaultValues: "replicaCount: 2",
	}
	fs := SynthesizeHelm("r", hp)
	values, _ := fs.Get("infra/r/helm/values.yaml")
	if !strings.HasSuffix(values, "\n") {
		t.Error("values.yaml should end with a newline")
	}
}
