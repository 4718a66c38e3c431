package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/endfield/endfield/pkg/kube"
)

// DeleteMode selects which halves of a deletion run.
type DeleteMode string

const (
	// DeleteEverywhere removes from the cluster first, then from disk.
	DeleteEverywhere DeleteMode = "everywhere"
	// DeleteClusterOnly removes from the cluster and keeps the files.
	DeleteClusterOnly DeleteMode = "cluster"
	// DeleteDiskOnly removes the files and leaves the cluster untouched.
	DeleteDiskOnly DeleteMode = "disk"
)

// DeleteResult reports both halves of a deletion separately. The two are
// not transactional: a cluster failure after a disk delete is reported
// here, never rolled back.
type DeleteResult struct {
	DeletedFiles  []string `json:"deleted_files"`
	MissingFiles  []string `json:"missing_files"`
	FileErrors    []string `json:"file_errors"`
	ClusterOutput string   `json:"cluster_output,omitempty"`
	ClusterError  string   `json:"cluster_error,omitempty"`
}

// Delete removes the given manifest files or component directories. Cluster
// removal is best effort per path; disk removal proceeds regardless and
// cleans up parent directories it empties.
func Delete(ctx context.Context, client *kube.Client, paths []string, mode DeleteMode) DeleteResult {
	var result DeleteResult
	var clusterOut, clusterErr []string

	for _, path := range paths {
		info, statErr := os.Stat(path)
		if statErr != nil {
			result.MissingFiles = append(result.MissingFiles, path)
			continue
		}

		if mode != DeleteDiskOnly {
			res := client.DeleteByPath(ctx, path)
			if res.Success {
				if out := strings.TrimSpace(res.Stdout); out != "" {
					clusterOut = append(clusterOut, fmt.Sprintf("%s: %s", path, out))
				}
			} else {
				clusterErr = append(clusterErr, fmt.Sprintf("%s: %s", path, kube.FirstStderrLine(res.Stderr)))
			}
		}

		if mode == DeleteClusterOnly {
			continue
		}

		var removeErr error
		if info.IsDir() {
			removeErr = os.RemoveAll(path)
		} else {
			removeErr = os.Remove(path)
		}
		if removeErr != nil {
			result.FileErrors = append(result.FileErrors, fmt.Sprintf("%s: %v", path, removeErr))
			continue
		}
		result.DeletedFiles = append(result.DeletedFiles, path)
		if !info.IsDir() {
			removeEmptyParent(filepath.Dir(path))
		}
	}

	result.ClusterOutput = strings.Join(clusterOut, "\n")
	result.ClusterError = strings.Join(clusterErr, "\n")
	return result
}

func removeEmptyParent(dir string) {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
}
