// Package project owns the on-disk side of a project: saving and reading
// manifests, batch file-set writes, deletion, replica patching and the
// .endfield layout file.
package project

import (
	"os"
	"path/filepath"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/synth"
)

// SaveYAML writes content to path, creating parent directories as needed.
func SaveYAML(path, content string) error {
	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodePersistence, "creating "+parent, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, "writing "+path, err)
	}
	return nil
}

// ReadYAML reads a manifest file.
func ReadYAML(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodePersistence, "reading "+path, err)
	}
	return string(content), nil
}

// WriteFileSet persists a synthesized file set under root, sequentially so
// a failure names exactly one file. It returns the absolute paths written;
// on error, the returned paths are the files that did land and the error
// names the relative path that did not.
func WriteFileSet(root string, fs *synth.FileSet) ([]string, error) {
	written := make([]string, 0, fs.Len())
	for _, f := range fs.Files() {
		abs := filepath.Join(root, f.Path)
		if err := SaveYAML(abs, f.Content); err != nil {
			return written, errors.Wrap(errors.ErrCodePersistence, f.Path, err)
		}
		written = append(written, abs)
	}
	return written, nil
}
