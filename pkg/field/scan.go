package field

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/endfield/endfield/pkg/yamlscan"
)

// workloadKinds are the manifest kinds that become fields. Everything else
// (Services, ConfigMaps, Ingresses) stays visible through the flat file
// listing only.
var workloadKinds = map[string]bool{
	"Deployment":  true,
	"StatefulSet": true,
	"DaemonSet":   true,
	"Job":         true,
	"CronJob":     true,
	"ReplicaSet":  true,
	"Pod":         true,
}

// skippedDirs are never descended into during a scan.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"charts":       true,
	"rendered":     true,
}

// Scan walks a project directory and returns its deduplicated fields. Helm
// wrapper components are detected by the presence of helm/Chart.yaml and
// consume the whole component directory; everything else is scanned file by
// file for workload documents.
func Scan(root string) ScanResult {
	result := ScanResult{ProjectPath: root}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		result.Errors = append(result.Errors, fmt.Sprintf("path does not exist: %s", root))
		return result
	}

	var fields []Field
	scanDir(root, &fields, &result.Errors)
	result.Fields = dedupe(fields)
	return result
}

func scanDir(dir string, fields *[]Field, errs *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("cannot read: %s", dir))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if strings.HasPrefix(name, ".") || skippedDirs[name] {
				continue
			}
			if f := parseHelmField(path); f != nil {
				*fields = append(*fields, *f)
				continue
			}
			scanDir(path, fields, errs)
			continue
		}

		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		parsed, err := parseManifestFile(path)
		if err != nil {
			*errs = append(*errs, err.Error())
			continue
		}
		*fields = append(*fields, parsed...)
	}
}

// wrapperChart is the subset of a wrapper Chart.yaml the scanner needs: the
// single pinned dependency.
type wrapperChart struct {
	Dependencies []struct {
		Name       string `yaml:"name"`
		Version    string `yaml:"version"`
		Repository string `yaml:"repository"`
	} `yaml:"dependencies"`
}

// parseHelmField returns a Helm-sourced field when componentDir holds a
// wrapper chart, or nil when it does not.
func parseHelmField(componentDir string) *Field {
	chartPath := filepath.Join(componentDir, "helm", "Chart.yaml")
	content, err := os.ReadFile(chartPath)
	if err != nil {
		return nil
	}

	var chart wrapperChart
	if err := yaml.Unmarshal(content, &chart); err != nil || len(chart.Dependencies) == 0 {
		return nil
	}
	dep := chart.Dependencies[0]
	if dep.Name == "" {
		return nil
	}

	release := filepath.Base(componentDir)
	namespace := "infra-" + release
	if nsContent, err := os.ReadFile(filepath.Join(componentDir, "namespace.yaml")); err == nil {
		namespace = "infra"
		if ns := yamlscan.MetadataField(string(nsContent), "name"); ns != "" {
			namespace = ns
		}
	}

	return &Field{
		ID:        "helm-" + release,
		Label:     release,
		Kind:      "HelmRelease",
		Image:     fmt.Sprintf("helm:%s/%s", dep.Name, dep.Version),
		TypeID:    TypeIDForChart(dep.Name),
		Namespace: namespace,
		FilePath:  chartPath,
		Source:    SourceHelm,
		Helm: &HelmMeta{
			ReleaseName:  release,
			Namespace:    namespace,
			ChartName:    dep.Name,
			ChartVersion: dep.Version,
			Repo:         dep.Repository,
			ValuesPath:   filepath.Join(componentDir, "helm", "values.yaml"),
			RenderedDir:  filepath.Join(componentDir, "rendered"),
		},
	}
}

func parseManifestFile(path string) ([]Field, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var fields []Field
	for idx, doc := range strings.Split(string(content), "\n---") {
		if f := parseWorkloadDoc(strings.TrimSpace(doc), path, idx); f != nil {
			fields = append(fields, *f)
		}
	}
	return fields, nil
}

func parseWorkloadDoc(doc, path string, idx int) *Field {
	kind := yamlscan.TopLevelField(doc, "kind")
	if !workloadKinds[kind] {
		return nil
	}

	name := yamlscan.MetadataField(doc, "name")
	if name == "" {
		name = "unknown"
	}
	namespace := yamlscan.MetadataField(doc, "namespace")
	if namespace == "" {
		namespace = "default"
	}

	var replicas *int
	if n, ok := yamlscan.Replicas(doc); ok {
		replicas = &n
	}

	image := ""
	typeID := "service"
	if images := yamlscan.Images(doc); len(images) > 0 {
		image = images[0]
		typeID = TypeIDForImage(image)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	safeName := strings.NewReplacer("/", "-", ".", "-").Replace(name)

	return &Field{
		ID:        fmt.Sprintf("%s-%s-%d", safeName, stem, idx),
		Label:     name,
		Kind:      kind,
		Image:     image,
		TypeID:    typeID,
		Namespace: namespace,
		FilePath:  path,
		Replicas:  replicas,
		Source:    SourceRaw,
	}
}

// dedupe collapses fields that describe the same workload. Workloads key by
// label and namespace so one preset never yields two fields; other kinds
// also key by kind. On collision the lower priority value wins, and final
// IDs get an index suffix so they stay unique across files.
func dedupe(fields []Field) []Field {
	seen := make(map[string]int)
	var out []Field

	for _, f := range fields {
		var key string
		if workloadKinds[f.Kind] {
			key = f.Label + "::" + f.Namespace
		} else {
			key = f.Kind + "::" + f.Label + "::" + f.Namespace
		}

		if i, ok := seen[key]; ok {
			if dedupePriority(f) < dedupePriority(out[i]) {
				out[i] = f
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, f)
	}

	for i := range out {
		out[i].ID = fmt.Sprintf("%s-%d", out[i].ID, i)
	}
	return out
}

func dedupePriority(f Field) int {
	if f.Source == SourceHelm {
		return 0
	}
	switch f.Kind {
	case "StatefulSet":
		return 1
	case "Deployment":
		return 2
	case "DaemonSet":
		return 3
	case "ReplicaSet":
		return 4
	case "Job":
		return 5
	case "CronJob":
		return 6
	case "Pod":
		return 7
	}
	return 8
}

// ListYAMLPaths returns every .yaml/.yml path under root in a stable sorted
// walk, including rendered output. Hidden directories and dependency caches
// are skipped.
func ListYAMLPaths(root string) []string {
	var files []string
	listYAMLPaths(root, &files)
	return files
}

func listYAMLPaths(dir string, files *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" {
			continue
		}
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			listYAMLPaths(path, files)
			continue
		}
		if ext := filepath.Ext(name); ext == ".yaml" || ext == ".yml" {
			*files = append(*files, path)
		}
	}
}
