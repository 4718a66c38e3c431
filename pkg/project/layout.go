package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/endfield/endfield/pkg/errors"
)

// layoutFileName sits at the project root, next to the manifests it
// describes.
const layoutFileName = ".endfield"

// LayoutEntry is the saved canvas position of one field.
type LayoutEntry struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Layout is the persisted arrangement of a project's fields.
type Layout struct {
	Version     int           `json:"version"`
	ProjectPath string        `json:"project_path"`
	Fields      []LayoutEntry `json:"fields"`
}

// SaveLayout writes the layout file for a project.
func SaveLayout(projectPath string, fields []LayoutEntry) error {
	layout := Layout{Version: 1, ProjectPath: projectPath, Fields: fields}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "encoding layout", err)
	}
	path := filepath.Join(projectPath, layoutFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodePersistence, "writing "+layoutFileName, err)
	}
	return nil
}

// LoadLayout reads the layout file for a project. A project without one
// returns a not-found error the caller treats as "no saved layout".
func LoadLayout(projectPath string) (*Layout, error) {
	path := filepath.Join(projectPath, layoutFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "no layout file found")
		}
		return nil, errors.Wrap(errors.ErrCodePersistence, "reading "+layoutFileName, err)
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "parsing "+layoutFileName, err)
	}
	return &layout, nil
}
