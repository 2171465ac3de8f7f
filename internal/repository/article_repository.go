package repository

import (
	"context"

	"github.com/ncnews/news-service/internal/domain"
)

// articleSortColumns whitelists the columns articles may be sorted by.
// comment_count refers to the aggregated alias, not a physical column.
var articleSortColumns = map[string]bool{
	"article_id":    true,
	"title":         true,
	"body":          true,
	"votes":         true,
	"topic":         true,
	"author":        true,
	"created_at":    true,
	"comment_count": true,
}

// ArticleFilter captures the query options for listing articles. Zero
// values fall back to defaults: sort by created_at, descending, 10 per
// page, page 1.
type ArticleFilter struct {
	SortBy string
	Order  string
	Author string
	Topic  string
	Limit  int
	Page   int
}

// normalize validates the filter and returns the resolved sort column,
// direction, limit and offset.
func (f ArticleFilter) normalize() (sortBy, order string, limit, offset int, err error) {
	sortBy, order, err = normalizeSort(f.SortBy, f.Order, "created_at", articleSortColumns)
	if err != nil {
		return "", "", 0, 0, err
	}
	limit, offset = normalizePage(f.Limit, f.Page)
	return sortBy, order, limit, offset, nil
}

// ArticleRepository defines operations for managing articles.
type ArticleRepository interface {
	// Create inserts a new article. Returns domain.ErrInvalidInput when
	// the referenced topic or author does not exist.
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)

	// Get returns the article with the given id including its aggregated
	// comment count, or domain.ErrNotFound.
	Get(ctx context.Context, articleID int) (*domain.Article, error)

	// List returns a page of articles matching the filter together with
	// the total number of matching rows. When an author or topic filter
	// matches nothing because the filter value itself does not exist,
	// List returns domain.ErrNotFound; a valid filter value with no
	// articles yields an empty page.
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int, error)

	// IncrementVotes atomically adjusts the article's votes by delta
	// (which may be negative) and returns the updated article.
	IncrementVotes(ctx context.Context, articleID, delta int) (*domain.Article, error)

	// Delete removes the article and, via cascade, its comments. Returns
	// domain.ErrNotFound if the article does not exist.
	Delete(ctx context.Context, articleID int) error
}
