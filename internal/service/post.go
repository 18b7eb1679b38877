package service

import (
	"context"
	"fmt"

	"github.com/penmark/penmark/internal/domain"
)

const (
	maxTitleLength = 200
	maxBodyLength  = 10000
)

// PostService handles post CRUD and enforces the ownership gate on mutating
// operations.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// ListByOwner returns a user's posts, newest first.
func (s *PostService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Post, error) {
	return s.posts.ListByOwner(ctx, ownerID)
}

// Get returns a post by ID. Posts are readable by anyone.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create validates and persists a new post owned by ownerID. Title and body
// are stripped to plain text before being stored; the body keeps its markdown
// source and is rendered at display time.
func (s *PostService) Create(ctx context.Context, ownerID int64, title, body string) (*domain.Post, error) {
	title, body, err := sanitizePostInput(title, body)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:   title,
		Body:    body,
		OwnerID: ownerID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update replaces a post's title and body after the same validation as
// Create. A missing post and an ownership mismatch both return
// domain.ErrNotFound: the caller cannot tell whether the post exists.
func (s *PostService) Update(ctx context.Context, id, ownerID int64, title, body string) (*domain.Post, error) {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}

	title, body, err = sanitizePostInput(title, body)
	if err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Body = body
	if err := s.posts.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return existing, nil
}

// Delete removes a post. Same not-found/not-owner collapse as Update.
func (s *PostService) Delete(ctx context.Context, id, ownerID int64) error {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	return s.posts.Delete(ctx, id)
}

// sanitizePostInput strips both fields to plain text and accumulates every
// violated length rule.
func sanitizePostInput(title, body string) (string, string, error) {
	title = StripToPlainText(title)
	body = StripToPlainText(body)

	var v domain.Violations
	if title == "" {
		v.Add("Title is required.")
	} else if len(title) > maxTitleLength {
		v.Add("Title must be at most 200 characters.")
	}
	if body == "" {
		v.Add("Body is required.")
	} else if len(body) > maxBodyLength {
		v.Add("Body must be at most 10000 characters.")
	}
	if err := v.Err(); err != nil {
		return "", "", err
	}
	return title, body, nil
}
