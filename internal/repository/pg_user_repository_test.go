package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncnews/news-service/internal/domain"
)

func TestPgUserRepository_Create(t *testing.T) {
	t.Run("creates user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock, zerolog.Nop())
		ctx := context.Background()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("butter_bridge", "https://example.com/avatar.jpg", "jonny").
			WillReturnRows(pgxmock.NewRows([]string{"username", "avatar_url", "name"}).
				AddRow("butter_bridge", "https://example.com/avatar.jpg", "jonny"))

		created, err := repo.Create(ctx, &domain.User{
			Username:  "butter_bridge",
			AvatarURL: "https://example.com/avatar.jpg",
			Name:      "jonny",
		})
		require.NoError(t, err)
		assert.Equal(t, "butter_bridge", created.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty username", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock, zerolog.Nop())

		_, err = repo.Create(context.Background(), &domain.User{Name: "anon"})
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("duplicate username maps to already exists", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock, zerolog.Nop())

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("butter_bridge", "", "jonny").
			WillReturnError(&pgconn.PgError{Code: "23505", Detail: "Key (username)=(butter_bridge) already exists."})

		_, err = repo.Create(context.Background(), &domain.User{Username: "butter_bridge", Name: "jonny"})
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
	})
}

func TestPgUserRepository_GetByUsername(t *testing.T) {
	t.Run("returns user when found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock, zerolog.Nop())
		ctx := context.Background()

		mock.ExpectQuery(`SELECT username, avatar_url, name\s+FROM users\s+WHERE username = \$1`).
			WithArgs("icellusedkars").
			WillReturnRows(pgxmock.NewRows([]string{"username", "avatar_url", "name"}).
				AddRow("icellusedkars", "https://example.com/sam.jpg", "sam"))

		user, err := repo.GetByUsername(ctx, "icellusedkars")
		require.NoError(t, err)
		assert.Equal(t, "sam", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found with client-facing message", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock, zerolog.Nop())

		mock.ExpectQuery(`SELECT username, avatar_url, name\s+FROM users\s+WHERE username = \$1`).
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.GetByUsername(context.Background(), "nobody")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "User not found...", err.Error())
	})
}

func TestPgUserRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgUserRepository(mock, zerolog.Nop())

	mock.ExpectQuery(`SELECT username, avatar_url, name\s+FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"username", "avatar_url", "name"}).
			AddRow("butter_bridge", "", "jonny").
			AddRow("icellusedkars", "", "sam"))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "butter_bridge", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
