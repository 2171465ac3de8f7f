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

// PgArticleRepository is the PostgreSQL implementation of ArticleRepository.
type PgArticleRepository struct {
	db     DBTX
	logger zerolog.Logger
}

var _ ArticleRepository = (*PgArticleRepository)(nil)

// NewPgArticleRepository creates a new PostgreSQL article repository.
func NewPgArticleRepository(db DBTX, logger zerolog.Logger) *PgArticleRepository {
	return &PgArticleRepository{
		db:     db,
		logger: logger.With().Str("repository", "article").Logger(),
	}
}

// Create inserts a new article. Votes start at zero and created_at is
// assigned by the database.
func (r *PgArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if article.Title == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if article.Body == "" {
		return nil, domain.NewValidationError("body", "body is required")
	}

	query := `
		INSERT INTO articles (title, body, topic, author)
		VALUES ($1, $2, $3, $4)
		RETURNING article_id, title, body, votes, topic, author, created_at`

	var created domain.Article
	err := r.db.QueryRow(ctx, query, article.Title, article.Body, article.Topic, article.Author).
		Scan(&created.ArticleID, &created.Title, &created.Body, &created.Votes,
			&created.Topic, &created.Author, &created.CreatedAt)
	if err != nil {
		if terr := translatePgError("article", err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	r.logger.Debug().Int("article_id", created.ArticleID).Msg("article created")
	return &created, nil
}

// Get returns the article with the given id, including its comment count.
func (r *PgArticleRepository) Get(ctx context.Context, articleID int) (*domain.Article, error) {
	query := `
		SELECT articles.article_id, articles.title, articles.body, articles.votes,
		       articles.topic, articles.author, articles.created_at,
		       COUNT(comments.comment_id)::int AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id`

	var article domain.Article
	err := r.db.QueryRow(ctx, query, articleID).
		Scan(&article.ArticleID, &article.Title, &article.Body, &article.Votes,
			&article.Topic, &article.Author, &article.CreatedAt, &article.CommentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article", "Article not found...")
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// List returns a page of articles matching the filter plus the total count
// of matching rows. Sort column and direction come from a whitelist, never
// straight from the request.
func (r *PgArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int, error) {
	sortBy, order, limit, offset, err := filter.normalize()
	if err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.Author != "" {
		conditions = append(conditions, fmt.Sprintf("articles.author = $%d", argNum))
		args = append(args, filter.Author)
		argNum++
	}
	if filter.Topic != "" {
		conditions = append(conditions, fmt.Sprintf("articles.topic = $%d", argNum))
		args = append(args, filter.Topic)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM articles %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	// An empty result is only a 404 when the filter names a topic or
	// author that does not exist; a real topic or author with no
	// articles yields an empty page.
	if totalCount == 0 && (filter.Author != "" || filter.Topic != "") {
		known, err := r.filterValuesExist(ctx, filter.Author, filter.Topic)
		if err != nil {
			return nil, 0, err
		}
		if !known {
			return nil, 0, domain.NewNotFoundError("article",
				"Query value does not exist or no articles exist for specified query...")
		}
		return []*domain.Article{}, 0, nil
	}

	orderColumn := "articles." + sortBy
	if sortBy == "comment_count" {
		orderColumn = "comment_count"
	}

	query := fmt.Sprintf(`
		SELECT articles.article_id, articles.title, articles.votes,
		       articles.topic, articles.author, articles.created_at,
		       COUNT(comments.comment_id)::int AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		%s
		GROUP BY articles.article_id
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderColumn, strings.ToUpper(order), argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0, limit)
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ArticleID, &a.Title, &a.Votes, &a.Topic,
			&a.Author, &a.CreatedAt, &a.CommentCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, totalCount, nil
}

// filterValuesExist reports whether every filter value that was supplied
// refers to an existing row.
func (r *PgArticleRepository) filterValuesExist(ctx context.Context, author, topic string) (bool, error) {
	if author != "" {
		var exists bool
		err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", author).
			Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check author: %w", err)
		}
		if !exists {
			return false, nil
		}
	}
	if topic != "" {
		var exists bool
		err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)", topic).
			Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check topic: %w", err)
		}
		if !exists {
			return false, nil
		}
	}
	return true, nil
}

// IncrementVotes adjusts the article's votes by delta in a single UPDATE
// so concurrent votes never clobber each other, and returns the updated
// article with its comment count.
func (r *PgArticleRepository) IncrementVotes(ctx context.Context, articleID, delta int) (*domain.Article, error) {
	query := `
		WITH updated AS (
			UPDATE articles
			SET votes = votes + $1
			WHERE article_id = $2
			RETURNING article_id, title, body, votes, topic, author, created_at
		)
		SELECT updated.article_id, updated.title, updated.body, updated.votes,
		       updated.topic, updated.author, updated.created_at,
		       COUNT(comments.comment_id)::int AS comment_count
		FROM updated
		LEFT JOIN comments ON comments.article_id = updated.article_id
		GROUP BY updated.article_id, updated.title, updated.body, updated.votes,
		         updated.topic, updated.author, updated.created_at`

	var article domain.Article
	err := r.db.QueryRow(ctx, query, delta, articleID).
		Scan(&article.ArticleID, &article.Title, &article.Body, &article.Votes,
			&article.Topic, &article.Author, &article.CreatedAt, &article.CommentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article", "Article not found...")
		}
		return nil, fmt.Errorf("failed to update article votes: %w", err)
	}

	r.logger.Debug().Int("article_id", articleID).Int("delta", delta).Msg("article votes updated")
	return &article, nil
}

// Delete removes the article; its comments go with it via the cascade on
// comments.article_id.
func (r *PgArticleRepository) Delete(ctx context.Context, articleID int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM articles WHERE article_id = $1", articleID)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("article", "Article not found...")
	}

	r.logger.Debug().Int("article_id", articleID).Msg("article deleted")
	return nil
}
