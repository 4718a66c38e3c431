// Package yamlscan is a permissive line scanner for Kubernetes manifest
// text. It is deliberately not a YAML parser: callers extract a handful of
// well-known fields from documents that may be templated, partial, or not
// owned by this tool at all, and a miss is an expected condition.
package yamlscan

import (
	"strconv"
	"strings"
)

// SplitDocs splits multi-document YAML text on document separators and
// returns the trimmed non-empty documents.
func SplitDocs(content string) []string {
	var docs []string
	for _, chunk := range strings.Split(content, "\n---") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			docs = append(docs, chunk)
		}
	}
	return docs
}

// IsCommentOnly reports whether every non-blank line is a comment.
func IsCommentOnly(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		t := strings.TrimSpace(line)
		if t != "" && !strings.HasPrefix(t, "#") {
			return false
		}
	}
	return true
}

// TopLevelField returns the value of an unindented `key: value` line.
func TopLevelField(doc, key string) string {
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		if v, ok := cutKeyValue(strings.TrimSpace(line), key); ok {
			return v
		}
	}
	return ""
}

// MetadataField returns the value of a two-space-indented `key: value` line
// inside the top-level metadata: block.
func MetadataField(doc, key string) string {
	inMetadata := false
	for _, line := range strings.Split(doc, "\n") {
		if !strings.HasPrefix(line, " ") && strings.TrimSpace(line) == "metadata:" {
			inMetadata = true
			continue
		}
		if !inMetadata {
			continue
		}
		if line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}
		if strings.HasPrefix(line, "  ") && !strings.HasPrefix(line, "   ") {
			if v, ok := cutKeyValue(strings.TrimSpace(line), key); ok {
				return v
			}
		}
	}
	return ""
}

// TaggedValue returns the value of the first `key: value` line at any
// indentation. Used for label/annotation identity keys where the exact
// nesting (labels vs annotations) does not matter.
func TaggedValue(doc, key string) string {
	for _, line := range strings.Split(doc, "\n") {
		if v, ok := cutKeyValue(strings.TrimSpace(line), key); ok {
			return v
		}
	}
	return ""
}

// Images returns every `image:` value in the document, skipping Helm
// template placeholders. Container entries often lead with the image
// (`- image: nginx`), so a list-item dash is stripped before matching.
func Images(doc string) []string {
	var images []string
	for _, line := range strings.Split(doc, "\n") {
		t := strings.TrimSpace(line)
		t = strings.TrimSpace(strings.TrimPrefix(t, "- "))
		if v, ok := cutKeyValue(t, "image"); ok {
			if v != "" && !strings.HasPrefix(v, "{{") {
				images = append(images, v)
			}
		}
	}
	return images
}

// Replicas returns the first `replicas:` value in the document.
func Replicas(doc string) (int, bool) {
	for _, line := range strings.Split(doc, "\n") {
		if v, ok := cutKeyValue(strings.TrimSpace(line), "replicas"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// cutKeyValue matches `key: value` exactly (not a longer key sharing the
// prefix) and returns the unquoted value.
func cutKeyValue(trimmed, key string) (string, bool) {
	rest, ok := strings.CutPrefix(trimmed, key)
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	value, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	value = strings.Trim(value, `"'`)
	if value == "" {
		return "", false
	}
	return value, true
}
