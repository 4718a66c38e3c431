package synth

import (
	"fmt"
	"path"
	"strings"

	"github.com/endfield/endfield/pkg/identity"
	"github.com/endfield/endfield/pkg/preset"
)

// SynthesizeHelm renders the wrapper-chart scaffold for a Helm release
// under infra/<release>/. The wrapper chart carries a single dependency
// pinned to the preset's chart name, version and repository, so render and
// install operations target a committed chart rather than a floating
// upstream reference.
func SynthesizeHelm(releaseName string, hp *preset.HelmPreset) *FileSet {
	release := identity.Sanitize(releaseName)
	namespace := hp.DefaultNamespace
	if namespace == "" {
		namespace = "infra-" + release
	}

	root := path.Join("infra", release)
	fs := NewFileSet()
	fs.Add(path.Join(root, "namespace.yaml"), namespaceYAML(namespace))
	fs.Add(path.Join(root, "helm", "Chart.yaml"), wrapperChartYAML(release, hp))
	fs.Add(path.Join(root, "helm", "values.yaml"), ensureTrailingNewline(hp.DefaultValues))
	fs.Add(path.Join(root, "helm", "values.prod.yaml"), ensureTrailingNewline(hp.ProdValues))
	// Placeholder marking the render-output directory so it survives in git.
	fs.Add(path.Join(root, "rendered", ".gitkeep"), "")
	return fs
}

func wrapperChartYAML(release string, hp *preset.HelmPreset) string {
	return fmt.Sprintf(`apiVersion: v2
name: %[1]s
description: Endfield managed Helm release for %[1]s
type: application
version: 0.1.0
dependencies:
  - name: %[2]s
    version: %[3]q
    repository: %[4]q
`, release, hp.ChartName, hp.Version, hp.Repo)
}

func ensureTrailingNewline(doc string) string {
	if doc == "" || strings.HasSuffix(doc, "\n") {
		return doc
	}
	return doc + "\n"
}
