package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/endfield/endfield/pkg/yamlscan"
)

// RenderedFile is one document extracted from raw `helm template` output.
type RenderedFile struct {
	Name    string
	Content string
}

// kindApplyOrder fixes the relative ordering of rendered documents so the
// rendered/ directory applies cleanly with a plain recursive apply.
var kindApplyOrder = map[string]int{
	"Namespace":                0,
	"ServiceAccount":           1,
	"ClusterRole":              2,
	"ClusterRoleBinding":       3,
	"Role":                     4,
	"RoleBinding":              5,
	"ConfigMap":                6,
	"Secret":                   7,
	"PersistentVolumeClaim":    8,
	"Service":                  9,
	"Deployment":               10,
	"StatefulSet":              11,
	"DaemonSet":                12,
	"Job":                      13,
	"CronJob":                  14,
	"Ingress":                  15,
	"IngressClass":             16,
	"CustomResourceDefinition": 17,
}

const kindOrderUnknown = 50

// SplitRendered splits multi-document helm template output into one file per
// document, named NN-<kind>-<name>.yaml in apply order. Empty and
// comment-only documents are dropped.
func SplitRendered(raw string) []RenderedFile {
	type doc struct {
		order    int
		filename string
		content  string
	}

	var docs []doc
	for _, chunk := range yamlscan.SplitDocs(raw) {
		if yamlscan.IsCommentOnly(chunk) {
			continue
		}

		kind := yamlscan.TopLevelField(chunk, "kind")
		if kind == "" {
			kind = "Unknown"
		}
		name := yamlscan.MetadataField(chunk, "name")
		if name == "" {
			name = "resource"
		}

		order, ok := kindApplyOrder[kind]
		if !ok {
			order = kindOrderUnknown
		}
		safeName := strings.NewReplacer("/", "-", ".", "-").Replace(name)
		docs = append(docs, doc{
			order:    order,
			filename: fmt.Sprintf("%s-%s.yaml", strings.ToLower(kind), safeName),
			content:  chunk + "\n",
		})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].order != docs[j].order {
			return docs[i].order < docs[j].order
		}
		return docs[i].filename < docs[j].filename
	})

	out := make([]RenderedFile, len(docs))
	for i, d := range docs {
		out[i] = RenderedFile{
			Name:    fmt.Sprintf("%02d-%s", i, d.filename),
			Content: d.content,
		}
	}
	return out
}
