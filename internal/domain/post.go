package domain

import (
	"context"
	"time"
)

// Post is a markdown article owned by exactly one user. Title and body are
// stored as plain text (markdown source for the body); rendering to HTML
// happens at display time, never at storage time. OwnerID and CreatedAt are
// immutable after creation.
type Post struct {
	ID        int64
	Title     string
	Body      string
	OwnerID   int64
	CreatedAt time.Time
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
