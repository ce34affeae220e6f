package devserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Get("/health", h.Health)

	r.Route("/hyprland", func(r chi.Router) {
		r.Get("/schema", h.Schema)
		r.Get("/config", h.Config)
		r.Post("/config/bulk", h.BulkUpdate)
		r.Post("/reload", h.Reload)
		r.Get("/migration/version", h.MigrationVersion)
		r.Get("/migration/status", h.MigrationStatus)
		r.Post("/migration/migrate", h.Migrate)
		r.Get("/{kind}", h.ListEntries)
		r.Post("/{kind}", h.MutateEntry)
	})

	r.Route("/hyprlock", func(r chi.Router) {
		r.Get("/config", h.Lockscreen)
		r.Post("/config", h.SaveLockscreen)
	})

	r.Route("/waybar", func(r chi.Router) {
		r.Get("/config", h.Waybar)
		r.Post("/config/update", h.UpdateWaybarModule)
	})

	r.Route("/presets/{tool}", func(r chi.Router) {
		r.Use(ToolContext)
		r.Get("/", h.Presets)
		r.Post("/", h.CreatePreset)
		r.Post("/deactivate", h.DeactivatePreset)
		r.Put("/{id}", h.UpdatePreset)
		r.Delete("/{id}", h.DeletePreset)
		r.Post("/{id}/activate", h.ActivatePreset)
		r.Post("/{id}/update-content", h.UpdatePresetContent)
	})

	return r
}
