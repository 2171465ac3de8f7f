package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ncnews/news-service/internal/config"
)

func TestNewMigrator_Validation(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("rejects nil database", func(t *testing.T) {
		m, err := NewMigrator(nil, "migrations", logger)
		assert.Nil(t, m)
		assert.Error(t, err)
	})

	t.Run("rejects uninitialized pool", func(t *testing.T) {
		m, err := NewMigrator(&DB{}, "migrations", logger)
		assert.Nil(t, m)
		assert.Error(t, err)
	})
}

func TestHealthStatus_Fields(t *testing.T) {
	h := HealthStatus{
		Status:     "healthy",
		TotalConns: 5,
		IdleConns:  3,
		MaxConns:   25,
	}
	assert.Equal(t, "healthy", h.Status)
	assert.Empty(t, h.Error)
}

func TestDSN_Roundtrip(t *testing.T) {
	// The pool config parser must accept the DSN our config builds.
	cfg := config.DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "news",
		Name:    "news_service",
		SSLMode: config.SSLModeDisable,
	}
	assert.Contains(t, cfg.DSN(), "postgres://news:@localhost:5432/news_service")
}
