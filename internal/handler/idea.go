package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/ideabox/internal/domain"
	"github.com/msomdec/ideabox/internal/metrics"
	"github.com/msomdec/ideabox/internal/service"
	"github.com/msomdec/ideabox/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const emptyTitleMessage = "Title can't be empty."

// IdeaHandler handles the idea list and the add form.
type IdeaHandler struct {
	ideas        *service.IdeaService
	metrics      *metrics.Metrics
	cookieSecure bool
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideas *service.IdeaService, m *metrics.Metrics, cookieSecure bool) *IdeaHandler {
	return &IdeaHandler{ideas: ideas, metrics: m, cookieSecure: cookieSecure}
}

// HandleList renders the current user's ideas, newest first.
// GET /
func (h *IdeaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ideas, err := h.ideas.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list ideas", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	flash := popFlash(w, r, h.cookieSecure)
	render(w, r, view.IdeasPage(user.Nickname, ideas, flash))
}

// HandleAdd stores a new idea for the current user. A plain form post is
// answered with a redirect to /; a datastar request gets the list patched
// in place over SSE.
// POST /add
func (h *IdeaHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Read the body before any SSE headers go out.
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	title, memo := r.PostFormValue("title"), r.PostFormValue("memo")
	live := isDatastarRequest(r)

	idea, err := h.ideas.Add(r.Context(), user.ID, title, memo)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			slog.Error("add idea", "user_id", user.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if live {
			sse := datastar.NewSSE(w, r)
			sse.PatchElementTempl(view.FlashMessage(view.Flash{Kind: view.FlashError, Message: emptyTitleMessage}))
			return
		}
		setFlash(w, h.cookieSecure, view.FlashError, emptyTitleMessage)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.metrics.IdeasCreated.Inc()

	if !live {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(view.IdeaCard(*idea),
		datastar.WithSelectorID("idea-list"),
		datastar.WithModePrepend(),
	)
	sse.PatchElementTempl(view.EmptyState(false))
	sse.PatchElementTempl(view.FlashMessage(view.Flash{}))
	sse.PatchElementTempl(view.AddIdeaForm())
}

// isDatastarRequest reports whether the request came from the datastar client.
func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
