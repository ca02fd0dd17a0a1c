package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Clone(ErrNotFound, "assignment not found"))

	appErr := FromError(wrapped)

	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "assignment not found", appErr.Message)
	assert.False(t, IsInternal(wrapped))
}

func TestFromErrorHidesUnknownErrors(t *testing.T) {
	raw := errors.New(`pq: relation "academic_records" does not exist`)

	appErr := FromError(raw)

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, raw)
	assert.True(t, IsInternal(raw))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrConflict, "attendance already recorded")

	assert.Equal(t, "conflict", ErrConflict.Message)
	assert.Equal(t, "attendance already recorded", clone.Message)
	assert.Nil(t, Clone(nil, "x"))
}
