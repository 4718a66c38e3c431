package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/endfield/endfield/pkg/metrics"
	"github.com/endfield/endfield/pkg/preset"
	"github.com/endfield/endfield/pkg/project"
	"github.com/endfield/endfield/pkg/serializer"
	"github.com/endfield/endfield/pkg/server"
	"github.com/endfield/endfield/pkg/synth"
)

// HandleGenerateField handles POST /v1/fields/generate: synthesize a raw
// preset into the project and report every file written.
func (h *Handlers) HandleGenerateField(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		ProjectPath string          `json:"project_path"`
		Name        string          `json:"name"`
		TypeID      string          `json:"type_id"`
		Namespace   string          `json:"namespace"`
		Port        int             `json:"port"`
		Env         []preset.EnvVar `json:"env"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	catalog, err := preset.Load()
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	p, ok := catalog.Preset(req.TypeID)
	if !ok {
		msg := fmt.Sprintf("unknown preset %q", req.TypeID)
		if suggestion := catalog.Suggest(req.TypeID); suggestion != "" {
			msg += fmt.Sprintf(", did you mean %q?", suggestion)
		}
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest, msg, false, nil)
		return
	}

	start := time.Now()
	fs := synth.SynthesizeRaw(synth.RawInput{
		Name:      req.Name,
		Preset:    p,
		Namespace: req.Namespace,
		Port:      req.Port,
		Env:       req.Env,
	})
	metrics.SynthesisTotal.WithLabelValues("raw").Inc()
	metrics.SynthesisDuration.Observe(time.Since(start).Seconds())

	written, err := project.WriteFileSet(req.ProjectPath, fs)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	h.log.Info("generated field", "name", req.Name, "type", req.TypeID, "files", len(written))
	serializer.RespondJSON(w, http.StatusOK, struct {
		Files []string `json:"files"`
	}{Files: written})
}

// HandleGenerateInfra handles POST /v1/infra/generate: scaffold a Helm
// wrapper component.
func (h *Handlers) HandleGenerateInfra(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		ProjectPath string `json:"project_path"`
		ReleaseName string `json:"release_name"`
		TypeID      string `json:"type_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	catalog, err := preset.Load()
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	hp, ok := catalog.HelmPreset(req.TypeID)
	if !ok {
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown helm preset %q", req.TypeID), false, nil)
		return
	}

	start := time.Now()
	fs := synth.SynthesizeHelm(req.ReleaseName, hp)
	metrics.SynthesisTotal.WithLabelValues("helm").Inc()
	metrics.SynthesisDuration.Observe(time.Since(start).Seconds())

	written, err := project.WriteFileSet(req.ProjectPath, fs)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	h.log.Info("generated infra component", "release", req.ReleaseName, "chart", hp.ChartName)
	serializer.RespondJSON(w, http.StatusOK, struct {
		Files []string `json:"files"`
	}{Files: written})
}

// HandleImageDeploy handles POST /v1/image/deploy: generate the manifests
// for an ad-hoc image and optionally apply them in order.
func (h *Handlers) HandleImageDeploy(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		synth.ImageDeployInput
		Apply bool `json:"apply"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	metrics.SynthesisTotal.WithLabelValues("image").Inc()
	manifests := synth.Manifests(req.ImageDeployInput)

	if !req.Apply {
		serializer.RespondJSON(w, http.StatusOK, manifests)
		return
	}
	if !h.requireCluster(w, r) {
		return
	}

	type applyStep struct {
		Kind   string `json:"kind"`
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
		OK     bool   `json:"ok"`
	}
	var steps []applyStep
	apply := func(kind, manifest string) bool {
		if manifest == "" {
			return true
		}
		res := h.kube.ApplyManifest(r.Context(), manifest)
		steps = append(steps, applyStep{Kind: kind, Stdout: res.Stdout, Stderr: res.Stderr, OK: res.Success})
		return res.Success
	}

	ok := apply("Namespace", manifests.Namespace) &&
		apply("Secret", manifests.Secret) &&
		apply("Deployment", manifests.Deployment) &&
		apply("Service", manifests.Service)

	serializer.RespondJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		Steps   []applyStep `json:"steps"`
	}{Success: ok, Steps: steps})
}

// HandleReplicas handles POST /v1/fields/replicas: patch the file, then
// apply it.
func (h *Handlers) HandleReplicas(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		FilePath string `json:"file_path"`
		Label    string `json:"label"`
		Replicas int    `json:"replicas"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := project.PatchReplicas(req.FilePath, req.Label, req.Replicas); err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	out, err := h.kube.Apply(r.Context(), req.FilePath)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Output string `json:"output"`
	}{Output: out})
}

// HandleDelete handles POST /v1/fields/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Paths []string           `json:"paths"`
		Mode  project.DeleteMode `json:"mode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Mode == "" {
		req.Mode = project.DeleteEverywhere
	}
	if req.Mode != project.DeleteDiskOnly && !h.requireCluster(w, r) {
		return
	}

	result := project.Delete(r.Context(), h.kube, req.Paths, req.Mode)
	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandleApply handles POST /v1/apply.
func (h *Handlers) HandleApply(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := h.kube.Apply(r.Context(), req.Path)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Output string `json:"output"`
	}{Output: out})
}

// HandleHelmTemplate handles POST /v1/helm/template.
func (h *Handlers) HandleHelmTemplate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	var req struct {
		ComponentDir string `json:"component_dir"`
		ReleaseName  string `json:"release_name"`
		Namespace    string `json:"namespace"`
		ValuesFile   string `json:"values_file"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	result := h.kube.HelmTemplate(r.Context(), req.ComponentDir, req.ReleaseName, req.Namespace, req.ValuesFile)
	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandleHelmInstall handles POST /v1/helm/install.
func (h *Handlers) HandleHelmInstall(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	var req struct {
		ComponentDir string `json:"component_dir"`
		ReleaseName  string `json:"release_name"`
		Namespace    string `json:"namespace"`
		ValuesFile   string `json:"values_file"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := h.kube.HelmInstall(r.Context(), req.ComponentDir, req.ReleaseName, req.Namespace, req.ValuesFile)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Output string `json:"output"`
	}{Output: out})
}

// HandleHelmUninstall handles POST /v1/helm/uninstall.
func (h *Handlers) HandleHelmUninstall(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireCluster(w, r) {
		return
	}
	var req struct {
		ReleaseName string `json:"release_name"`
		Namespace   string `json:"namespace"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := h.kube.HelmUninstall(r.Context(), req.ReleaseName, req.Namespace)
	if err != nil {
		server.WriteDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Output string `json:"output"`
	}{Output: out})
}
