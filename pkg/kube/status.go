package kube

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodInfo summarizes one pod for the status view.
type PodInfo struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Phase     string `json:"phase"`
	Ready     int    `json:"ready"`
	Total     int    `json:"total"`
	Restarts  int    `json:"restarts"`
}

// WorkloadStatus is the rollout state of one Deployment or StatefulSet,
// with its pods attached by name prefix.
type WorkloadStatus struct {
	Label     string    `json:"label"`
	Namespace string    `json:"namespace"`
	Desired   int       `json:"desired"`
	Ready     int       `json:"ready"`
	Available int       `json:"available"`
	Status    string    `json:"status"`
	Pods      []PodInfo `json:"pods"`
}

// ClusterStatus is one full status poll.
type ClusterStatus struct {
	Workloads []WorkloadStatus `json:"workloads"`
	Reachable bool             `json:"cluster_reachable"`
	Error     string           `json:"error,omitempty"`
}

// StatusColor buckets readiness: gray for scaled to zero, red for nothing
// ready, yellow for a partial rollout, green for fully ready.
func StatusColor(ready, desired int) string {
	switch {
	case desired == 0:
		return "gray"
	case ready == 0:
		return "red"
	case ready < desired:
		return "yellow"
	default:
		return "green"
	}
}

// Status polls Deployments, StatefulSets and Pods across all namespaces in
// parallel and returns the combined view. An unreachable cluster comes back
// as Reachable=false with the cause, never as an error: the poll loop keeps
// running either way.
func (c *Client) Status(ctx context.Context) ClusterStatus {
	var (
		deployments  *appsv1.DeploymentList
		statefulSets *appsv1.StatefulSetList
		podList      *corev1.PodList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deployments, err = c.kube.AppsV1().Deployments(metav1.NamespaceAll).List(gctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() error {
		var err error
		statefulSets, err = c.kube.AppsV1().StatefulSets(metav1.NamespaceAll).List(gctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() error {
		var err error
		podList, err = c.kube.CoreV1().Pods(metav1.NamespaceAll).List(gctx, metav1.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return ClusterStatus{Reachable: false, Error: err.Error()}
	}

	pods := make([]PodInfo, 0, len(podList.Items))
	for _, p := range podList.Items {
		pods = append(pods, podInfo(p))
	}

	var workloads []WorkloadStatus
	for _, d := range deployments.Items {
		desired := 0
		if d.Spec.Replicas != nil {
			desired = int(*d.Spec.Replicas)
		}
		ready := int(d.Status.ReadyReplicas)
		workloads = append(workloads, WorkloadStatus{
			Label:     d.Name,
			Namespace: d.Namespace,
			Desired:   desired,
			Ready:     ready,
			Available: int(d.Status.AvailableReplicas),
			Status:    StatusColor(ready, desired),
			Pods:      podsFor(pods, d.Namespace, d.Name),
		})
	}
	for _, s := range statefulSets.Items {
		desired := 0
		if s.Spec.Replicas != nil {
			desired = int(*s.Spec.Replicas)
		}
		ready := int(s.Status.ReadyReplicas)
		workloads = append(workloads, WorkloadStatus{
			Label:     s.Name,
			Namespace: s.Namespace,
			Desired:   desired,
			Ready:     ready,
			Available: ready,
			Status:    StatusColor(ready, desired),
			Pods:      podsFor(pods, s.Namespace, s.Name),
		})
	}

	return ClusterStatus{Workloads: workloads, Reachable: true}
}

func podInfo(p corev1.Pod) PodInfo {
	info := PodInfo{
		Name:      p.Name,
		Namespace: p.Namespace,
		Phase:     string(p.Status.Phase),
		Total:     len(p.Spec.Containers),
	}
	for _, cs := range p.Status.ContainerStatuses {
		if cs.Ready {
			info.Ready++
		}
		info.Restarts += int(cs.RestartCount)
	}
	return info
}

func podsFor(pods []PodInfo, namespace, workload string) []PodInfo {
	var out []PodInfo
	for _, p := range pods {
		if p.Namespace == namespace && strings.HasPrefix(p.Name, workload) {
			out = append(out, p)
		}
	}
	return out
}
