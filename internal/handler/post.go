package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/penmark/penmark/internal/domain"
	"github.com/penmark/penmark/internal/service"
	"github.com/penmark/penmark/internal/view"
)

// PostHandler handles the post pages: public reads and owner-gated writes.
type PostHandler struct {
	posts    *service.PostService
	markdown *service.MarkdownRenderer
	render   *view.Renderer
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService, markdown *service.MarkdownRenderer, render *view.Renderer) *PostHandler {
	return &PostHandler{posts: posts, markdown: markdown, render: render}
}

// ShowPost renders a post. Readable by anyone; edit controls appear only for
// the owner.
// GET /post/{id}
func (h *PostHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.renderNotFound(w, r)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		slog.Error("get post", "error", err)
		h.renderServerError(w, r)
		return
	}

	body, err := h.markdown.Render(post.Body)
	if err != nil {
		slog.Error("render post body", "error", err)
		h.renderServerError(w, r)
		return
	}

	identity := IdentityFromContext(r.Context())
	h.render.Render(w, http.StatusOK, "post", view.PostViewData{
		Page:      view.Page{Title: post.Title, Username: usernameFrom(r)},
		ID:        post.ID,
		PostTitle: post.Title,
		Body:      body,
		CreatedAt: post.CreatedAt,
		IsOwner:   identity != nil && identity.UserID == post.OwnerID,
	})
}

// ShowCreate renders the new-post form.
// GET /create-post
func (h *PostHandler) ShowCreate(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "post_form", view.PostFormData{
		Page:    view.Page{Title: "New post", Username: usernameFrom(r)},
		Heading: "New post",
		Action:  "/create-post",
	})
}

// HandleCreate creates a post owned by the current user.
// POST /create-post
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	title := r.PostFormValue("title")
	body := r.PostFormValue("body")

	post, err := h.posts.Create(r.Context(), identity.UserID, title, body)
	if err != nil {
		var violations domain.Violations
		if errors.As(err, &violations) {
			h.render.Render(w, http.StatusUnprocessableEntity, "post_form", view.PostFormData{
				Page:      view.Page{Title: "New post", Username: identity.Username},
				Heading:   "New post",
				Action:    "/create-post",
				PostTitle: title,
				Body:      body,
				Errors:    violations,
			})
			return
		}
		slog.Error("create post", "error", err)
		h.renderServerError(w, r)
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
}

// ShowEdit renders the edit form, or redirects home when the post is missing
// or owned by someone else.
// GET /edit-post/{id}
func (h *PostHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	id, ok := postID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil || post.OwnerID != identity.UserID {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			slog.Error("get post for edit", "error", err)
			h.renderServerError(w, r)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.Render(w, http.StatusOK, "post_form", view.PostFormData{
		Page:      view.Page{Title: "Edit post", Username: identity.Username},
		Heading:   "Edit post",
		Action:    "/edit-post/" + strconv.FormatInt(post.ID, 10),
		PostTitle: post.Title,
		Body:      post.Body,
	})
}

// HandleEdit updates a post. Missing post and ownership mismatch get the same
// silent redirect home.
// POST /edit-post/{id}
func (h *PostHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	id, ok := postID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	title := r.PostFormValue("title")
	body := r.PostFormValue("body")

	post, err := h.posts.Update(r.Context(), id, identity.UserID, title, body)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		var violations domain.Violations
		if errors.As(err, &violations) {
			h.render.Render(w, http.StatusUnprocessableEntity, "post_form", view.PostFormData{
				Page:      view.Page{Title: "Edit post", Username: identity.Username},
				Heading:   "Edit post",
				Action:    "/edit-post/" + strconv.FormatInt(id, 10),
				PostTitle: title,
				Body:      body,
				Errors:    violations,
			})
			return
		}
		slog.Error("update post", "error", err)
		h.renderServerError(w, r)
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
}

// HandleDelete deletes a post. Same silent redirect for missing and
// not-owned posts.
// POST /delete-post/{id}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	id, ok := postID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.posts.Delete(r.Context(), id, identity.UserID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("delete post", "error", err)
		h.renderServerError(w, r)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PostHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusNotFound, "error", view.ErrorData{
		Page:    view.Page{Title: "Not found", Username: usernameFrom(r)},
		Message: "This post does not exist.",
	})
}

func (h *PostHandler) renderServerError(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusInternalServerError, "error", view.ErrorData{
		Page:    view.Page{Title: "Something went wrong", Username: usernameFrom(r)},
		Message: "An unexpected error occurred. Please try again.",
	})
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
