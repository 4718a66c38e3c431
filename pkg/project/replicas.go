package project

import (
	"os"
	"strconv"
	"strings"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/yamlscan"
)

// PatchReplicas rewrites the replicas line of the named workload inside a
// manifest file. The edit is textual so the author's formatting and
// comments survive. Only the document whose metadata name matches is
// touched; a file without such a document is an error.
func PatchReplicas(filePath, workloadName string, replicas int) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, "reading "+filePath, err)
	}

	docs := strings.Split(string(raw), "\n---")
	found := false
	for i, doc := range docs {
		name := yamlscan.MetadataField(doc, "name")
		if name != workloadName {
			continue
		}
		if _, ok := yamlscan.Replicas(doc); !ok {
			continue
		}

		lines := strings.Split(doc, "\n")
		for j, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "replicas:") {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				lines[j] = indent + "replicas: " + strconv.Itoa(replicas)
			}
		}
		docs[i] = strings.Join(lines, "\n")
		found = true
	}

	if !found {
		return errors.Newf(errors.ErrCodeNotFound, "%q with replicas not found in %s", workloadName, filePath)
	}

	if err := os.WriteFile(filePath, []byte(strings.Join(docs, "\n---")), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, "writing "+filePath, err)
	}
	return nil
}
