package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/wamuzi-news/internal/database"
	"github.com/wamuzi-news/internal/models"
)

var commentColumns = []string{"id", "post_id", "parent_id", "user_id", "author_name", "content", "created_at"}

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

func scanComment(row rowScanner) (models.Comment, error) {
	var (
		comment models.Comment
		userID  sql.NullInt64
	)
	err := row.Scan(
		&comment.ID, &comment.Post, &comment.Parent, &userID,
		&comment.AuthorName, &comment.Content, &comment.Date,
	)
	if userID.Valid {
		comment.UserID = &userID.Int64
	}
	return comment, err
}

// Create inserts a new comment and fills in its ID and timestamp
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, parent_id, user_id, author_name, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		comment.Post, comment.Parent, comment.UserID, comment.AuthorName, comment.Content,
	).Scan(&comment.ID, &comment.Date)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT id, post_id, parent_id, user_id, author_name, content, created_at FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns every comment on an article in insertion order
func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	return r.list(ctx, postCommentsQuery(postID))
}

// ListByUser returns a user's comments, newest first
func (r *commentRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Comment, error) {
	return r.list(ctx, userCommentsQuery(userID, limit))
}

func postCommentsQuery(postID int64) sq.SelectBuilder {
	return psql.Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("created_at ASC", "id ASC")
}

func userCommentsQuery(userID int64, limit int) sq.SelectBuilder {
	builder := psql.Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder
}

func (r *commentRepo) list(ctx context.Context, builder sq.SelectBuilder) ([]models.Comment, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comment query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
