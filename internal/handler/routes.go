package handler

import (
	"net/http"

	"github.com/penmark/penmark/internal/service"
	"github.com/penmark/penmark/internal/view"
)

// RegisterRoutes sets up all HTTP routes on the given mux. The caller is
// expected to wrap the mux with WithIdentity so every handler can see the
// current identity; RequireAuth and RateLimit are applied per route here.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	posts *service.PostService,
	tokens *service.Tokens,
	markdown *service.MarkdownRenderer,
	limiter *service.RateLimiter,
	render *view.Renderer,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, tokens, render, cookieSecure)
	postHandler := NewPostHandler(posts, markdown, render)
	homeHandler := NewHomeHandler(posts, render)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", homeHandler.Handle)

	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.Handle("POST /login", RateLimit(limiter, render, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("GET /signup", authHandler.ShowSignup)
	mux.Handle("POST /signup", RateLimit(limiter, render, http.HandlerFunc(authHandler.HandleSignup)))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)

	mux.HandleFunc("GET /post/{id}", postHandler.ShowPost)
	mux.Handle("GET /create-post", RequireAuth(http.HandlerFunc(postHandler.ShowCreate)))
	mux.Handle("POST /create-post", RequireAuth(http.HandlerFunc(postHandler.HandleCreate)))
	mux.Handle("GET /edit-post/{id}", RequireAuth(http.HandlerFunc(postHandler.ShowEdit)))
	mux.Handle("POST /edit-post/{id}", RequireAuth(http.HandlerFunc(postHandler.HandleEdit)))
	mux.Handle("POST /delete-post/{id}", RequireAuth(http.HandlerFunc(postHandler.HandleDelete)))
}
