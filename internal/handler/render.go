package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// render writes an HTML page. Headers are already committed if rendering
// fails halfway, so the error is only logged.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}
