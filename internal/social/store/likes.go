package store

import (
	"context"
	"time"
)

// Like is one (user, media) pair. At most one row per pair exists at any
// time; the Postgres backend enforces this with a unique constraint.
type Like struct {
	ID        int64     `json:"likeId"`
	UserID    int64     `json:"userId"`
	MediaID   int64     `json:"mediaId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeStore defines the contract for like persistence.
type LikeStore interface {
	// Create persists a new like. A uniqueness violation on (user, media)
	// surfaces as ErrDuplicate.
	Create(ctx context.Context, l Like) (Like, error)
	FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (Like, error)
	Delete(ctx context.Context, id int64) error
	CountByMedia(ctx context.Context, mediaID int64) (int64, error)
	ExistsByUserAndMedia(ctx context.Context, userID, mediaID int64) (bool, error)
}
