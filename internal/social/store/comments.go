package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by both store backends.
var (
	// ErrNotFound reports a missing row.
	ErrNotFound = errors.New("row not found")
	// ErrDuplicate reports a uniqueness violation.
	ErrDuplicate = errors.New("duplicate row")
)

// Comment represents a single comment row. MediaID is fixed at creation and
// never re-derived from the parent.
type Comment struct {
	ID               int64     `json:"commentId"`
	Content          string    `json:"content"`
	AuthorID         int64     `json:"userId"`
	AuthorExternalID string    `json:"userExternalId"`
	MediaID          int64     `json:"mediaId"`
	ParentID         *int64    `json:"parentId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CommentStore defines the contract for comment persistence.
type CommentStore interface {
	Create(ctx context.Context, c Comment) (Comment, error)
	GetByID(ctx context.Context, id int64) (Comment, error)
	// UpdateContent replaces the body and advances updated_at.
	UpdateContent(ctx context.Context, id int64, content string) (Comment, error)
	// Delete removes the row. Replies are left in place.
	Delete(ctx context.Context, id int64) error
	// ListRoots returns parent-less comments for a media item plus the total
	// root count.
	ListRoots(ctx context.Context, mediaID int64, req PageRequest) ([]Comment, int64, error)
	// ListReplies returns the direct replies of a comment plus their total.
	ListReplies(ctx context.Context, parentID int64, req PageRequest) ([]Comment, int64, error)
	CountReplies(ctx context.Context, parentID int64) (int64, error)
}
