package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/endfield/endfield/pkg/synth"
)

// RenderResult reports one helm template run. Error is terminal; Warnings
// cover rendered files that could not be written while the rest succeeded.
type RenderResult struct {
	RenderedFiles []string `json:"rendered_files"`
	Warnings      []string `json:"warnings"`
	Error         string   `json:"error,omitempty"`
}

// HelmAvailable reports whether the helm CLI responds.
func (c *Client) HelmAvailable(ctx context.Context) bool {
	return c.run.Capture(ctx, "", "helm", "version", "--short").Success
}

// HelmTemplate renders a wrapper chart into its component's rendered/
// directory, one file per document in apply order. Existing rendered files
// are cleared first so removals in the chart do not leave stale output.
func (c *Client) HelmTemplate(ctx context.Context, componentDir, releaseName, namespace, valuesFile string) RenderResult {
	helmDir := filepath.Join(componentDir, "helm")
	renderedDir := filepath.Join(componentDir, "rendered")

	if !c.HelmAvailable(ctx) {
		return RenderResult{Error: "helm CLI not found"}
	}
	if _, err := c.run.Run(ctx, helmDir, "helm", "dependency", "update", "."); err != nil {
		return RenderResult{Error: fmt.Sprintf("helm dependency update failed: %v", err)}
	}

	if valuesFile == "" {
		valuesFile = filepath.Join(helmDir, "values.yaml")
	}

	raw, err := c.run.Run(ctx, helmDir, "helm",
		"template", releaseName, ".",
		"--namespace", namespace,
		"--values", valuesFile,
		"--include-crds")
	if err != nil {
		return RenderResult{Error: fmt.Sprintf("helm template failed: %v", err)}
	}

	if err := clearRenderedDir(renderedDir); err != nil {
		return RenderResult{Error: err.Error()}
	}

	var result RenderResult
	for _, f := range synth.SplitRendered(raw) {
		outPath := filepath.Join(renderedDir, f.Name)
		if err := os.WriteFile(outPath, []byte(f.Content), 0o644); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to write %s: %v", f.Name, err))
			continue
		}
		result.RenderedFiles = append(result.RenderedFiles, outPath)
	}
	c.log.Info("rendered helm chart",
		"release", releaseName, "namespace", namespace, "files", len(result.RenderedFiles))
	return result
}

func clearRenderedDir(renderedDir string) error {
	entries, err := os.ReadDir(renderedDir)
	if os.IsNotExist(err) {
		return os.MkdirAll(renderedDir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("cannot read rendered/: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == ".gitkeep" {
			continue
		}
		if err := os.Remove(filepath.Join(renderedDir, entry.Name())); err != nil {
			return fmt.Errorf("cannot clear rendered/: %w", err)
		}
	}
	return nil
}

// HelmInstall installs or upgrades a wrapper chart release. No --wait: the
// call returns once the release is recorded and the cluster converges on
// its own while the status poll reports progress.
func (c *Client) HelmInstall(ctx context.Context, componentDir, releaseName, namespace, valuesFile string) (string, error) {
	helmDir := filepath.Join(componentDir, "helm")

	if _, err := c.run.Run(ctx, helmDir, "helm", "dependency", "update", "."); err != nil {
		return "", err
	}
	if valuesFile == "" {
		valuesFile = filepath.Join(helmDir, "values.yaml")
	}

	out, err := c.run.Run(ctx, helmDir, "helm",
		"upgrade", "--install", releaseName, ".",
		"--namespace", namespace,
		"--create-namespace",
		"--values", valuesFile,
		"--atomic=false")
	if err != nil {
		return "", err
	}
	c.log.Info("installed helm release", "release", releaseName, "namespace", namespace)
	return out, nil
}

// HelmUninstall removes a release. A release that is already gone is fine.
func (c *Client) HelmUninstall(ctx context.Context, releaseName, namespace string) (string, error) {
	return c.run.Run(ctx, "", "helm",
		"uninstall", releaseName,
		"--namespace", namespace,
		"--ignore-not-found")
}
