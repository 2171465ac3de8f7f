package repository

import (
	"context"

	"github.com/ncnews/news-service/internal/domain"
)

// TopicRepository defines operations for managing topics.
type TopicRepository interface {
	// Create inserts a new topic. Returns domain.ErrAlreadyExists if the
	// slug is taken and domain.ErrInvalidInput if required fields are
	// missing.
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)

	// List returns all topics.
	List(ctx context.Context) ([]*domain.Topic, error)
}
