package domain

import (
	"context"
	"time"
)

// User is a registered account. Records are created at signup and never
// mutated or deleted afterwards; the repository is the only writer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the authenticated principal derived from a session token.
// It is never persisted; validity comes from the token signature and
// expiry alone.
type Identity struct {
	UserID   int64
	Username string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
