package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/penmark/penmark/internal/domain"
	"github.com/penmark/penmark/internal/service"
	"github.com/penmark/penmark/internal/view"
)

// AuthHandler handles signup, login, and logout pages.
type AuthHandler struct {
	auth         *service.AuthService
	tokens       *service.Tokens
	render       *view.Renderer
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, tokens *service.Tokens, render *view.Renderer, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, render: render, cookieSecure: cookieSecure}
}

// ShowLogin renders the login form.
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "login", view.AuthFormData{
		Page: view.Page{Title: "Log in", Username: usernameFrom(r)},
	})
}

// HandleLogin verifies credentials and establishes a session.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	identity, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.render.Render(w, http.StatusUnauthorized, "login", view.AuthFormData{
				Page:         view.Page{Title: "Log in"},
				FormUsername: username,
				Errors:       []string{"Invalid username or password."},
			})
			return
		}
		slog.Error("login", "error", err)
		h.renderServerError(w)
		return
	}

	h.establishSession(w, r, identity)
}

// ShowSignup renders the signup form.
// GET /signup
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "signup", view.AuthFormData{
		Page: view.Page{Title: "Sign up", Username: usernameFrom(r)},
	})
}

// HandleSignup validates the new account, creates it, and establishes a
// session. Validation failures re-render the form with every broken rule.
// POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.auth.SignUp(r.Context(), username, password)
	if err != nil {
		var violations domain.Violations
		if errors.As(err, &violations) {
			h.render.Render(w, http.StatusUnprocessableEntity, "signup", view.AuthFormData{
				Page:         view.Page{Title: "Sign up"},
				FormUsername: username,
				Errors:       violations,
			})
			return
		}
		slog.Error("signup", "error", err)
		h.renderServerError(w)
		return
	}

	h.establishSession(w, r, domain.Identity{UserID: user.ID, Username: user.Username})
}

// HandleLogout clears the session cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.cookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, identity domain.Identity) {
	token, err := h.tokens.Issue(identity.UserID, identity.Username)
	if err != nil {
		slog.Error("issue session token", "error", err)
		h.renderServerError(w)
		return
	}
	setSessionCookie(w, token, h.tokens.TTL(), h.cookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderServerError(w http.ResponseWriter) {
	h.render.Render(w, http.StatusInternalServerError, "error", view.ErrorData{
		Page:    view.Page{Title: "Something went wrong"},
		Message: "An unexpected error occurred. Please try again.",
	})
}

func usernameFrom(r *http.Request) string {
	if identity := IdentityFromContext(r.Context()); identity != nil {
		return identity.Username
	}
	return ""
}
