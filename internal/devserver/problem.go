package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/revati108/arch-board/internal/validation"
	"github.com/revati108/arch-board/internal/waybar"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

type problemType struct {
	typeURI string
	title   string
}

var problemTypes = map[int]problemType{
	http.StatusBadRequest:          {"https://archboard.dev/errors/bad-request", "Bad Request"},
	http.StatusNotFound:            {"https://archboard.dev/errors/not-found", "Not Found"},
	http.StatusConflict:            {"https://archboard.dev/errors/conflict", "Conflict"},
	http.StatusUnprocessableEntity: {"https://archboard.dev/errors/validation-error", "Validation Error"},
	http.StatusInternalServerError: {"https://archboard.dev/errors/internal-error", "Internal Server Error"},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt = problemType{typeURI: "https://archboard.dev/errors/unknown", title: http.StatusText(status)}
	}
	writeProblem(w, status, Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

// ProblemWithErrors extends Problem with field errors.
type ProblemWithErrors struct {
	Problem
	Errors []validation.ValidationError `json:"errors,omitempty"`
}

// WriteProblemWithErrors writes a 422 response listing every failed field.
func WriteProblemWithErrors(w http.ResponseWriter, r *http.Request, detail string, errs []validation.ValidationError) {
	pt := problemTypes[http.StatusUnprocessableEntity]
	writeProblem(w, http.StatusUnprocessableEntity, ProblemWithErrors{
		Problem: Problem{
			Type:     pt.typeURI,
			Title:    pt.title,
			Status:   http.StatusUnprocessableEntity,
			Detail:   detail,
			Instance: r.URL.Path,
		},
		Errors: errs,
	})
}

func writeProblem(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// MapError converts domain errors to Problem Details responses.
func MapError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		one  *validation.ValidationError
		many validation.Errors
	)
	switch {
	case errors.As(err, &one):
		WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{*one})
	case errors.As(err, &many):
		WriteProblemWithErrors(w, r, "Request contains invalid fields", many)
	case errors.Is(err, ErrPresetNotFound), errors.Is(err, ErrUnknownTool), errors.Is(err, ErrUnknownKind),
		errors.Is(err, waybar.ErrModuleNotFound):
		WriteProblem(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadRequest), errors.Is(err, waybar.ErrInvalidConfig):
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}
