package devserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/scene"
	"github.com/revati108/arch-board/internal/validation"
)

// Handler serves the backend API from a State.
type Handler struct {
	state *State
}

// NewHandler creates a Handler over state.
func NewHandler(state *State) *Handler {
	return &Handler{state: state}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decode reads a JSON body, writing a 400 problem on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

// --- hyprland ---

// Schema handles GET /hyprland/schema
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"schema": h.state.Schema()})
}

// Config handles GET /hyprland/config
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.state.Config())
}

// BulkUpdate handles POST /hyprland/config/bulk
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Updates map[string]any `json:"updates"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, map[string]any{"success": true, "results": h.state.BulkUpdate(req.Updates)})
}

// ListEntries handles GET /hyprland/{kind}
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	items, err := h.state.Entries(kind)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{kind: items})
}

// MutateEntry handles POST /hyprland/{kind}
func (h *Handler) MutateEntry(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	var m mutation
	if !decode(w, r, &m) {
		return
	}
	changed, err := h.state.Mutate(kind, m)
	if err != nil {
		MapError(w, r, err)
		return
	}
	if !changed {
		writeJSON(w, backend.Result{Success: false, Action: string(m.Action), Error: "no line matches"})
		return
	}
	slog.Debug("entry mutated", "kind", kind, "action", m.Action)
	writeJSON(w, backend.Result{Success: true, Action: string(m.Action)})
}

// Reload handles POST /hyprland/reload
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	n := h.state.Reload()
	writeJSON(w, map[string]any{"success": true, "stdout": "ok\n", "stderr": "", "reloads": n})
}

// MigrationVersion handles GET /hyprland/migration/version
func (h *Handler) MigrationVersion(w http.ResponseWriter, r *http.Request) {
	st := h.state.MigrationStatus()
	if st.Version == nil {
		writeJSON(w, map[string]any{"version": nil, "error": "Could not detect Hyprland version"})
		return
	}
	writeJSON(w, st.Version)
}

// MigrationStatus handles GET /hyprland/migration/status
func (h *Handler) MigrationStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.state.MigrationStatus())
}

// Migrate handles POST /hyprland/migration/migrate
func (h *Handler) Migrate(w http.ResponseWriter, r *http.Request) {
	res := h.state.Migrate()
	if res.Migrated {
		slog.Info("config migrated", "rules", res.MigratedRules, "options", res.RenamedOptions, "backup", res.BackupPath)
	}
	writeJSON(w, res)
}

// --- hyprlock ---

// Lockscreen handles GET /hyprlock/config
func (h *Handler) Lockscreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.state.Lockscreen())
}

// SaveLockscreen handles POST /hyprlock/config
func (h *Handler) SaveLockscreen(w http.ResponseWriter, r *http.Request) {
	var cfg scene.LockscreenConfig
	if !decode(w, r, &cfg) {
		return
	}
	h.state.SetLockscreen(cfg)
	writeJSON(w, map[string]string{"status": "success"})
}

// --- waybar ---

// Waybar handles GET /waybar/config
func (h *Handler) Waybar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.state.Waybar())
}

// UpdateWaybarModule handles POST /waybar/config/update
func (h *Handler) UpdateWaybarModule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Module string          `json:"module"`
		Value  json.RawMessage `json:"value"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Module == "" || len(req.Value) == 0 || string(req.Value) == "null" {
		WriteProblem(w, r, http.StatusBadRequest, "Missing module or value")
		return
	}
	if err := h.state.UpdateWaybarModule(req.Module, req.Value); err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "success", "message": "Module " + req.Module + " updated"})
}

// --- presets ---

func tool(r *http.Request) string {
	t, _ := ToolFromContext(r.Context())
	return t
}

// Presets handles GET /presets/{tool}
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	list, err := h.state.Presets(tool(r))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, list)
}

// CreatePreset handles POST /presets/{tool}
func (h *Handler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var in backend.PresetInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.state.CreatePreset(tool(r), in)
	if err != nil {
		MapError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// checkPresetRequest rejects a malformed {id} together with a body whose
// name could not be written as one line, listing every failed field.
func checkPresetRequest(w http.ResponseWriter, r *http.Request, in *backend.PresetInput) bool {
	var c validation.Collector
	c.Add(validation.ValidateULID("id", chi.URLParam(r, "id")))
	if in != nil {
		c.Add(validation.ValidateSingleLine("name", in.Name))
		c.Add(validation.ValidateNoNullBytes("description", in.Description))
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return false
	}
	return true
}

// UpdatePreset handles PUT /presets/{tool}/{id}
func (h *Handler) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	var in backend.PresetInput
	if !decode(w, r, &in) || !checkPresetRequest(w, r, &in) {
		return
	}
	p, err := h.state.UpdatePreset(tool(r), chi.URLParam(r, "id"), in)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, p)
}

// DeletePreset handles DELETE /presets/{tool}/{id}
func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	if !checkPresetRequest(w, r, nil) {
		return
	}
	if err := h.state.DeletePreset(tool(r), chi.URLParam(r, "id")); err != nil {
		MapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActivatePreset handles POST /presets/{tool}/{id}/activate
func (h *Handler) ActivatePreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BackupCurrent bool `json:"backup_current"`
	}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if !checkPresetRequest(w, r, nil) {
		return
	}
	if err := h.state.ActivatePreset(tool(r), chi.URLParam(r, "id"), req.BackupCurrent); err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, backend.Result{Success: true, Action: "activate"})
}

// DeactivatePreset handles POST /presets/{tool}/deactivate
func (h *Handler) DeactivatePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.state.DeactivatePreset(tool(r)); err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, backend.Result{Success: true, Action: "deactivate"})
}

// UpdatePresetContent handles POST /presets/{tool}/{id}/update-content
func (h *Handler) UpdatePresetContent(w http.ResponseWriter, r *http.Request) {
	if !checkPresetRequest(w, r, nil) {
		return
	}
	if err := h.state.UpdatePresetContent(tool(r), chi.URLParam(r, "id")); err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, backend.Result{Success: true, Action: "update-content"})
}
