package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE raised by the (user_id, media_id)
// constraint on likes.
const uniqueViolation = "23505"

// PostgresLikeStore persists likes in Postgres.
type PostgresLikeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLikeStore creates a store backed by Postgres.
func NewPostgresLikeStore(pool *pgxpool.Pool) *PostgresLikeStore {
	return &PostgresLikeStore{pool: pool}
}

func (s *PostgresLikeStore) Create(ctx context.Context, l Like) (Like, error) {
	const q = `INSERT INTO likes (user_id, media_id)
	           VALUES ($1, $2)
	           RETURNING like_id, user_id, media_id, created_at`
	var out Like
	err := s.pool.QueryRow(ctx, q, l.UserID, l.MediaID).
		Scan(&out.ID, &out.UserID, &out.MediaID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Like{}, ErrDuplicate
		}
		return Like{}, err
	}
	return out, nil
}

func (s *PostgresLikeStore) FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (Like, error) {
	const q = `SELECT like_id, user_id, media_id, created_at
	           FROM likes WHERE user_id = $1 AND media_id = $2`
	var out Like
	err := s.pool.QueryRow(ctx, q, userID, mediaID).
		Scan(&out.ID, &out.UserID, &out.MediaID, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Like{}, ErrNotFound
	}
	return out, err
}

func (s *PostgresLikeStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM likes WHERE like_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresLikeStore) CountByMedia(ctx context.Context, mediaID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE media_id = $1`, mediaID).Scan(&n)
	return n, err
}

func (s *PostgresLikeStore) ExistsByUserAndMedia(ctx context.Context, userID, mediaID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND media_id = $2)`,
		userID, mediaID).Scan(&exists)
	return exists, err
}
