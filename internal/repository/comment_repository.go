package repository

import (
	"context"

	"github.com/ncnews/news-service/internal/domain"
)

// commentSortColumns whitelists the columns comments may be sorted by.
var commentSortColumns = map[string]bool{
	"comment_id": true,
	"body":       true,
	"votes":      true,
	"author":     true,
	"created_at": true,
}

// CommentFilter captures the query options for listing an article's
// comments. Zero values fall back to defaults: sort by created_at,
// descending, 10 per page, page 1.
type CommentFilter struct {
	SortBy string
	Order  string
	Limit  int
	Page   int
}

func (f CommentFilter) normalize() (sortBy, order string, limit, offset int, err error) {
	sortBy, order, err = normalizeSort(f.SortBy, f.Order, "created_at", commentSortColumns)
	if err != nil {
		return "", "", 0, 0, err
	}
	limit, offset = normalizePage(f.Limit, f.Page)
	return sortBy, order, limit, offset, nil
}

// CommentRepository defines operations for managing comments.
type CommentRepository interface {
	// Create inserts a comment on an article. Returns
	// domain.ErrInvalidInput when the article or author does not exist.
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)

	// ListByArticle returns a page of the article's comments. Returns
	// domain.ErrNotFound when the article itself does not exist; an
	// existing article with no comments yields an empty page.
	ListByArticle(ctx context.Context, articleID int, filter CommentFilter) ([]*domain.Comment, error)

	// IncrementVotes atomically adjusts the comment's votes by delta and
	// returns the updated comment. Returns domain.ErrNotFound if the
	// comment does not exist.
	IncrementVotes(ctx context.Context, commentID, delta int) (*domain.Comment, error)

	// Delete removes the comment. Returns domain.ErrNotFound if the
	// comment does not exist.
	Delete(ctx context.Context, commentID int) error
}
