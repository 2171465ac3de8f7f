package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ncnews/news-service/internal/domain"
)

// PgTopicRepository is the PostgreSQL implementation of TopicRepository.
type PgTopicRepository struct {
	db     DBTX
	logger zerolog.Logger
}

var _ TopicRepository = (*PgTopicRepository)(nil)

// NewPgTopicRepository creates a new PostgreSQL topic repository.
func NewPgTopicRepository(db DBTX, logger zerolog.Logger) *PgTopicRepository {
	return &PgTopicRepository{
		db:     db,
		logger: logger.With().Str("repository", "topic").Logger(),
	}
}

// Create inserts a new topic.
func (r *PgTopicRepository) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if topic.Slug == "" {
		return nil, domain.NewValidationError("slug", "slug is required")
	}

	query := `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description`

	var created domain.Topic
	err := r.db.QueryRow(ctx, query, topic.Slug, topic.Description).
		Scan(&created.Slug, &created.Description)
	if err != nil {
		if terr := translatePgError("topic", err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	r.logger.Debug().Str("slug", created.Slug).Msg("topic created")
	return &created, nil
}

// List returns all topics ordered by slug.
func (r *PgTopicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	query := `
		SELECT slug, description
		FROM topics
		ORDER BY slug ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}

	return topics, nil
}
