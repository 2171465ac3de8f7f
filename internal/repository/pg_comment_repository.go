package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ncnews/news-service/internal/domain"
)

// PgCommentRepository is the PostgreSQL implementation of CommentRepository.
type PgCommentRepository struct {
	db     DBTX
	logger zerolog.Logger
}

var _ CommentRepository = (*PgCommentRepository)(nil)

// NewPgCommentRepository creates a new PostgreSQL comment repository.
func NewPgCommentRepository(db DBTX, logger zerolog.Logger) *PgCommentRepository {
	return &PgCommentRepository{
		db:     db,
		logger: logger.With().Str("repository", "comment").Logger(),
	}
}

// Create inserts a comment on an article. A missing article or author
// surfaces as a foreign key violation from the insert itself.
func (r *PgCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if comment.Body == "" {
		return nil, domain.NewValidationError("body", "body is required")
	}
	if comment.Author == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}

	query := `
		INSERT INTO comments (body, author, article_id)
		VALUES ($1, $2, $3)
		RETURNING comment_id, body, votes, author, article_id, created_at`

	var created domain.Comment
	err := r.db.QueryRow(ctx, query, comment.Body, comment.Author, comment.ArticleID).
		Scan(&created.CommentID, &created.Body, &created.Votes,
			&created.Author, &created.ArticleID, &created.CreatedAt)
	if err != nil {
		if terr := translatePgError("comment", err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	r.logger.Debug().
		Int("comment_id", created.CommentID).
		Int("article_id", created.ArticleID).
		Msg("comment created")
	return &created, nil
}

// ListByArticle returns a page of the article's comments.
func (r *PgCommentRepository) ListByArticle(ctx context.Context, articleID int, filter CommentFilter) ([]*domain.Comment, error) {
	sortBy, order, limit, offset, err := filter.normalize()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT comment_id, body, votes, author, article_id, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY %s %s
		LIMIT $2 OFFSET $3`,
		sortBy, strings.ToUpper(order))

	rows, err := r.db.Query(ctx, query, articleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0, limit)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.CommentID, &c.Body, &c.Votes, &c.Author,
			&c.ArticleID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	// Distinguish "no comments yet" from "no such article": only the
	// latter is a 404.
	if len(comments) == 0 {
		var exists bool
		err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", articleID).
			Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check article: %w", err)
		}
		if !exists {
			return nil, domain.NewNotFoundError("article", "Article not found...")
		}
	}

	return comments, nil
}

// IncrementVotes adjusts the comment's votes by delta in a single UPDATE
// and returns the updated comment.
func (r *PgCommentRepository) IncrementVotes(ctx context.Context, commentID, delta int) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, body, votes, author, article_id, created_at`

	var comment domain.Comment
	err := r.db.QueryRow(ctx, query, delta, commentID).
		Scan(&comment.CommentID, &comment.Body, &comment.Votes,
			&comment.Author, &comment.ArticleID, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("comment", "Comment not found...")
		}
		return nil, fmt.Errorf("failed to update comment votes: %w", err)
	}

	r.logger.Debug().Int("comment_id", commentID).Int("delta", delta).Msg("comment votes updated")
	return &comment, nil
}

// Delete removes the comment.
func (r *PgCommentRepository) Delete(ctx context.Context, commentID int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE comment_id = $1", commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("comment", "Comment not found...")
	}

	r.logger.Debug().Int("comment_id", commentID).Msg("comment deleted")
	return nil
}
