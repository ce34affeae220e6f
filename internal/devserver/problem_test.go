package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/revati108/arch-board/internal/validation"
	"github.com/revati108/arch-board/internal/waybar"
)

func TestWriteProblem_BodyFormat(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/presets/hyprland/abc", nil)

	WriteProblem(w, r, http.StatusNotFound, "preset not found: abc")

	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	var p Problem
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if p.Type != "https://archboard.dev/errors/not-found" {
		t.Errorf("type = %q", p.Type)
	}
	if p.Title != "Not Found" || p.Status != 404 {
		t.Errorf("title/status = %q/%d", p.Title, p.Status)
	}
	if p.Instance != "/presets/hyprland/abc" {
		t.Errorf("instance = %q", p.Instance)
	}
}

func TestWriteProblem_UnknownStatus(t *testing.T) {
	w := httptest.NewRecorder()
	WriteProblem(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, "short and stout")

	var p Problem
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Title != http.StatusText(http.StatusTeapot) {
		t.Errorf("title = %q", p.Title)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantErrors int
	}{
		{"single field", validation.New("name", "is required"), http.StatusUnprocessableEntity, 1},
		{"many fields", validation.Errors{{Field: "name"}, {Field: "description"}}, http.StatusUnprocessableEntity, 2},
		{"wrapped field", fmt.Errorf("create: %w", validation.New("name", "is required")), http.StatusUnprocessableEntity, 1},
		{"preset", fmt.Errorf("%w: x", ErrPresetNotFound), http.StatusNotFound, 0},
		{"tool", ErrUnknownTool, http.StatusNotFound, 0},
		{"kind", ErrUnknownKind, http.StatusNotFound, 0},
		{"waybar module", waybar.ErrModuleNotFound, http.StatusNotFound, 0},
		{"bad request", ErrBadRequest, http.StatusBadRequest, 0},
		{"waybar config", waybar.ErrInvalidConfig, http.StatusBadRequest, 0},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, 0},
	}

	captureLogs(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			MapError(w, httptest.NewRequest(http.MethodPost, "/x", nil), tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var p ProblemWithErrors
			if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(p.Errors) != tt.wantErrors {
				t.Errorf("errors = %+v, want %d", p.Errors, tt.wantErrors)
			}
			if tt.wantStatus == http.StatusInternalServerError && p.Detail != "Internal Server Error" {
				t.Errorf("detail = %q leaks the cause", p.Detail)
			}
		})
	}
}
