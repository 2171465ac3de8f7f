package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("article", "Article not found...")

	assert.Equal(t, "Article not found...", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "article", nf.Entity)
}

func TestNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("get article: %w", NewNotFoundError("article", "Article not found..."))

	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "Article not found...", nf.Message)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("sort_by", "unrecognized sort column")

	assert.Contains(t, err.Error(), "sort_by")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("topic", "mitch")

	assert.Contains(t, err.Error(), "topic")
	assert.Contains(t, err.Error(), "mitch")
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestForeignKeyError(t *testing.T) {
	err := NewForeignKeyError("article", "topic does not exist")

	// Referential violations are bad requests, not missing resources.
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
}
