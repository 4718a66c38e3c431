package kube

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"k8s.io/client-go/kubernetes"
)

// Client bundles the typed clientset with the subprocess runner. Typed
// calls serve reads and targeted writes; the runner serves file-shaped
// applies and the Helm lifecycle.
type Client struct {
	kube kubernetes.Interface
	run  *Runner
	log  *slog.Logger
}

// NewClient builds a Client on the shared clientset.
func NewClient(log *slog.Logger) (*Client, error) {
	clientset, _, err := GetKubeClient()
	if err != nil {
		return nil, err
	}
	return &Client{kube: clientset, run: NewRunner(log), log: log}, nil
}

// NewClientWith wires an explicit clientset and runner. Tests use this with
// a fake clientset.
func NewClientWith(kube kubernetes.Interface, run *Runner, log *slog.Logger) *Client {
	return &Client{kube: kube, run: run, log: log}
}

// Apply runs kubectl apply against a file or directory path.
func (c *Client) Apply(ctx context.Context, path string) (string, error) {
	return c.run.Run(ctx, "", "kubectl", "apply", "-f", path)
}

// ApplyManifest applies manifest text through kubectl's stdin.
func (c *Client) ApplyManifest(ctx context.Context, manifest string) CmdResult {
	return c.run.CaptureInput(ctx, "", manifest, "kubectl", "apply", "-f", "-")
}

// DeleteByPath removes the resources defined at path from the cluster.
// Directories delete recursively. Missing resources are not an error.
func (c *Client) DeleteByPath(ctx context.Context, path string) CmdResult {
	args := []string{"delete", "-f", path, "--ignore-not-found=true"}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		args = []string{"delete", "-f", path, "--recursive", "--ignore-not-found=true"}
	}
	return c.run.Capture(ctx, "", "kubectl", args...)
}

// DeleteByLabel removes every resource carrying app=<label> in a
// namespace.
func (c *Client) DeleteByLabel(ctx context.Context, label, namespace string) (string, error) {
	return c.run.Run(ctx, "", "kubectl",
		"delete", "all", "-l", "app="+label, "-n", namespace, "--ignore-not-found=true")
}

// PodLogs returns the last tail lines of a pod's log.
func (c *Client) PodLogs(ctx context.Context, namespace, pod string, tail int) (string, error) {
	return c.run.Run(ctx, "", "kubectl",
		"logs", "-n", namespace, pod, fmt.Sprintf("--tail=%d", tail))
}

// Events returns recent events, cluster-wide when namespace is "all".
func (c *Client) Events(ctx context.Context, namespace string) (string, error) {
	if namespace == "all" {
		return c.run.Run(ctx, "", "kubectl",
			"get", "events", "--all-namespaces", "--sort-by=.lastTimestamp", "--no-headers")
	}
	return c.run.Run(ctx, "", "kubectl",
		"get", "events", "-n", namespace, "--sort-by=.lastTimestamp", "--no-headers")
}
