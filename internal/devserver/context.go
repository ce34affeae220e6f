package devserver

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// toolContextKey is the context key for the resolved tool name.
type toolContextKey struct{}

// ErrNoToolInContext indicates ToolContext did not run.
var ErrNoToolInContext = errors.New("no tool in context")

// WithTool returns a new context with the tool attached.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, toolContextKey{}, tool)
}

// ToolFromContext extracts the tool from the context.
func ToolFromContext(ctx context.Context) (string, error) {
	tool, ok := ctx.Value(toolContextKey{}).(string)
	if !ok || tool == "" {
		return "", ErrNoToolInContext
	}
	return tool, nil
}

// ToolContext resolves the {tool} URL parameter. Unknown tools get a 404.
func ToolContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tool := chi.URLParam(r, "tool")
		if !slices.Contains(Tools, tool) {
			WriteProblem(w, r, http.StatusNotFound, "Unknown tool: "+tool)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithTool(r.Context(), tool)))
	})
}
