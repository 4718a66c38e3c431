package api

import (
	"net/http"

	"github.com/endfield/endfield/pkg/field"
	"github.com/endfield/endfield/pkg/preset"
	"github.com/endfield/endfield/pkg/project"
	"github.com/endfield/endfield/pkg/serializer"
	"github.com/endfield/endfield/pkg/server"
)

// HandleScan handles GET /v1/project/scan?path=.
func (h *Handlers) HandleScan(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, ok := requireQuery(w, r, "path")
	if !ok {
		return
	}

	result := field.Scan(path)
	h.log.Debug("scanned project", "path", path, "fields", len(result.Fields), "errors", len(result.Errors))
	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandleFiles handles GET /v1/project/files?path=: the flat YAML listing,
// rendered output included.
func (h *Handlers) HandleFiles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	path, ok := requireQuery(w, r, "path")
	if !ok {
		return
	}

	files := field.ListYAMLPaths(path)
	serializer.RespondJSON(w, http.StatusOK, struct {
		Files []string `json:"files"`
	}{Files: files})
}

// HandleFile reads (GET ?path=) or saves (POST {path, content}) one file.
func (h *Handlers) HandleFile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		path, ok := requireQuery(w, r, "path")
		if !ok {
			return
		}
		content, err := project.ReadYAML(path)
		if err != nil {
			server.WriteDomainError(w, r, err)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		}{Path: path, Content: content})

	case http.MethodPost, http.MethodPut:
		var req struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := project.SaveYAML(req.Path, req.Content); err != nil {
			server.WriteDomainError(w, r, err)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, struct {
			Saved string `json:"saved"`
		}{Saved: req.Path})

	default:
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			server.ErrCodeMethodNotAllowed, "method not allowed", false, nil)
	}
}

// HandleLayout loads (GET ?project=) or saves (POST) the canvas layout.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		projectPath, ok := requireQuery(w, r, "project")
		if !ok {
			return
		}
		layout, err := project.LoadLayout(projectPath)
		if err != nil {
			server.WriteDomainError(w, r, err)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, layout)

	case http.MethodPost:
		var req struct {
			ProjectPath string                `json:"project_path"`
			Fields      []project.LayoutEntry `json:"fields"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := project.SaveLayout(req.ProjectPath, req.Fields); err != nil {
			server.WriteDomainError(w, r, err)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, struct {
			Saved bool `json:"saved"`
		}{Saved: true})

	default:
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			server.ErrCodeMethodNotAllowed, "method not allowed", false, nil)
	}
}

// HandlePresets handles GET /v1/presets: the full workload catalog.
func (h *Handlers) HandlePresets(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	catalog, err := preset.Load()
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, catalog)
}
