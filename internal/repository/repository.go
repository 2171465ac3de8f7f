// Package repository provides data access interfaces and implementations
// for the news service.
//
// # Overview
//
// This package defines repository interfaces and their PostgreSQL
// implementations following the repository pattern to abstract data
// persistence from the HTTP layer.
//
// # Repository Interfaces
//
// The package provides the following repository interfaces:
//
//   - TopicRepository: Manages topic creation and listing
//   - UserRepository: Manages user creation and lookup
//   - ArticleRepository: Manages articles with comment-count aggregation,
//     filtered/sorted/paginated listing, and vote updates
//   - CommentRepository: Manages comments attached to articles
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple
// goroutines. The underlying pgxpool handles connection pooling and
// synchronization.
//
// # Error Handling
//
// All methods return domain-specific errors from the domain package.
// Database errors are wrapped with context using fmt.Errorf with %w.
// Common errors include:
//
//   - domain.ErrNotFound: Resource does not exist
//   - domain.ErrAlreadyExists: Unique constraint violation
//   - domain.ErrInvalidInput: Invalid parameters, including rejected
//     sort_by/order values and referential violations
//
// # Usage Pattern
//
// Repositories are typically created at application startup and passed to
// the HTTP server:
//
//	db, _ := database.New(ctx, cfg, logger)
//	topicRepo := repository.NewPgTopicRepository(db)
//	articleRepo := repository.NewPgArticleRepository(db)
package repository

import (
	"strings"

	"github.com/ncnews/news-service/internal/database"
	"github.com/ncnews/news-service/internal/domain"
)

// DBTX is the database interface supporting both pool and transaction
// contexts. Repository constructors accept DBTX so that a pgx.Tx or a
// pgxmock pool can stand in for the real pool.
type DBTX = database.DBTX

// Sort directions accepted by list queries.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination defaults for list queries.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizeSort validates sortBy against a whitelist and order against
// asc/desc, applying defaults for empty values. The raw query-string value
// is never interpolated into SQL unless it passes the whitelist.
func normalizeSort(sortBy, order, defaultSort string, whitelist map[string]bool) (string, string, error) {
	if sortBy == "" {
		sortBy = defaultSort
	}
	if !whitelist[sortBy] {
		return "", "", domain.NewValidationError("sort_by", "unrecognized sort column: "+sortBy)
	}

	order = strings.ToLower(order)
	switch order {
	case "":
		order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return "", "", domain.NewValidationError("order", "order must be asc or desc")
	}

	return sortBy, order, nil
}

// normalizePage clamps limit into [1, maxPageLimit] and converts a 1-based
// page into an offset.
func normalizePage(limit, page int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page <= 0 {
		page = 1
	}
	return limit, limit * (page - 1)
}
