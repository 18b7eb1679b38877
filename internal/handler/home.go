package handler

import (
	"log/slog"
	"net/http"

	"github.com/penmark/penmark/internal/service"
	"github.com/penmark/penmark/internal/view"
)

// HomeHandler renders the front page: the owned-posts listing for
// authenticated users, the landing page for everyone else.
type HomeHandler struct {
	posts  *service.PostService
	render *view.Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(posts *service.PostService, render *view.Renderer) *HomeHandler {
	return &HomeHandler{posts: posts, render: render}
}

// Handle renders the front page.
// GET /
func (h *HomeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		h.render.Render(w, http.StatusOK, "landing", view.LandingData{
			Page: view.Page{Title: "Welcome"},
		})
		return
	}

	posts, err := h.posts.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("list posts", "error", err)
		h.render.Render(w, http.StatusInternalServerError, "error", view.ErrorData{
			Page:    view.Page{Title: "Something went wrong", Username: identity.Username},
			Message: "An unexpected error occurred. Please try again.",
		})
		return
	}

	items := make([]view.PostItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, view.PostItem{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt})
	}

	h.render.Render(w, http.StatusOK, "dashboard", view.DashboardData{
		Page:  view.Page{Title: "Your posts", Username: identity.Username},
		Posts: items,
	})
}
