package view

import (
	"html/template"
	"time"
)

// Page carries the fields every template needs. Username is empty for
// anonymous visitors.
type Page struct {
	Title    string
	Username string
}

// LandingData renders the anonymous home page.
type LandingData struct {
	Page
}

// DashboardData renders the authenticated home page listing owned posts.
type DashboardData struct {
	Page
	Posts []PostItem
}

// PostItem is one row of the owned-posts listing.
type PostItem struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}

// AuthFormData renders the login and signup forms.
type AuthFormData struct {
	Page
	FormUsername string
	Errors       []string
}

// PostViewData renders a single post. Body has already been through the
// markdown sanitizer.
type PostViewData struct {
	Page
	ID        int64
	PostTitle string
	Body      template.HTML
	CreatedAt time.Time
	IsOwner   bool
}

// PostFormData renders the create and edit forms.
type PostFormData struct {
	Page
	Heading   string
	Action    string
	PostTitle string
	Body      string
	Errors    []string
}

// ErrorData renders the generic error page. Message never contains internal
// error detail.
type ErrorData struct {
	Page
	Message string
}
