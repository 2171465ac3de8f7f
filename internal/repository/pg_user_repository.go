package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ncnews/news-service/internal/domain"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	db     DBTX
	logger zerolog.Logger
}

var _ UserRepository = (*PgUserRepository)(nil)

// NewPgUserRepository creates a new PostgreSQL user repository.
func NewPgUserRepository(db DBTX, logger zerolog.Logger) *PgUserRepository {
	return &PgUserRepository{
		db:     db,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}

	query := `
		INSERT INTO users (username, avatar_url, name)
		VALUES ($1, $2, $3)
		RETURNING username, avatar_url, name`

	var created domain.User
	err := r.db.QueryRow(ctx, query, user.Username, user.AvatarURL, user.Name).
		Scan(&created.Username, &created.AvatarURL, &created.Name)
	if err != nil {
		if terr := translatePgError("user", err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("username", created.Username).Msg("user created")
	return &created, nil
}

// GetByUsername returns the user with the given username.
func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, avatar_url, name
		FROM users
		WHERE username = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, username).
		Scan(&user.Username, &user.AvatarURL, &user.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", "User not found...")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// List returns all users ordered by username.
func (r *PgUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT username, avatar_url, name
		FROM users
		ORDER BY username ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Username, &u.AvatarURL, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
