package repository

import (
	"context"

	"github.com/ncnews/news-service/internal/domain"
)

// UserRepository defines operations for managing users.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByUsername returns the user with the given username, or
	// domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]*domain.User, error)
}
