package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commentColumns = `comment_id, content, user_id, user_external_id, media_id, parent_id, created_at, updated_at`

// PostgresCommentStore persists comments in Postgres.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentStore creates a store backed by Postgres.
func NewPostgresCommentStore(pool *pgxpool.Pool) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool}
}

func (s *PostgresCommentStore) Create(ctx context.Context, c Comment) (Comment, error) {
	const q = `INSERT INTO comments (content, user_id, user_external_id, media_id, parent_id)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING ` + commentColumns
	row := s.pool.QueryRow(ctx, q, c.Content, c.AuthorID, c.AuthorExternalID, c.MediaID, c.ParentID)
	return scanComment(row)
}

func (s *PostgresCommentStore) GetByID(ctx context.Context, id int64) (Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`
	c, err := scanComment(s.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

func (s *PostgresCommentStore) UpdateContent(ctx context.Context, id int64, content string) (Comment, error) {
	const q = `UPDATE comments SET content = $1, updated_at = now()
	           WHERE comment_id = $2
	           RETURNING ` + commentColumns
	c, err := scanComment(s.pool.QueryRow(ctx, q, content, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

func (s *PostgresCommentStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresCommentStore) ListRoots(ctx context.Context, mediaID int64, req PageRequest) ([]Comment, int64, error) {
	req = req.Normalize()

	var total int64
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE media_id = $1 AND parent_id IS NULL`,
		mediaID).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + commentColumns + `
	      FROM comments
	      WHERE media_id = $1 AND parent_id IS NULL
	      ORDER BY created_at ` + direction(req) + `, comment_id ` + direction(req) + `
	      LIMIT $2 OFFSET $3`
	comments, err := s.queryComments(ctx, q, mediaID, req.Size, req.Offset())
	return comments, total, err
}

func (s *PostgresCommentStore) ListReplies(ctx context.Context, parentID int64, req PageRequest) ([]Comment, int64, error) {
	req = req.Normalize()

	total, err := s.CountReplies(ctx, parentID)
	if err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + commentColumns + `
	      FROM comments
	      WHERE parent_id = $1
	      ORDER BY created_at ` + direction(req) + `, comment_id ` + direction(req) + `
	      LIMIT $2 OFFSET $3`
	comments, err := s.queryComments(ctx, q, parentID, req.Size, req.Offset())
	return comments, total, err
}

func (s *PostgresCommentStore) CountReplies(ctx context.Context, parentID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE parent_id = $1`, parentID).Scan(&n)
	return n, err
}

func (s *PostgresCommentStore) queryComments(ctx context.Context, q string, args ...any) ([]Comment, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.AuthorExternalID,
		&c.MediaID, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func direction(req PageRequest) string {
	if req.NewestFirst {
		return "DESC"
	}
	return "ASC"
}
