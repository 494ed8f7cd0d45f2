package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WithDetail_KeepsKindAndStatus(t *testing.T) {
	err := ErrDuplicateRoom.WithDetail("room %q already registered", "Focus")

	assert.Equal(t, KindDuplicateRoom, err.Kind)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, `room "Focus" already registered`, err.Detail)
	assert.ErrorIs(t, err, ErrDuplicateRoom)
}

func TestError_Is_MatchesByKindThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("roomRepo.Create: %w", ErrDuplicateRoom.WithDetail("taken"))

	assert.ErrorIs(t, wrapped, ErrDuplicateRoom)
	assert.NotErrorIs(t, wrapped, ErrRecordNotFound)

	var domErr *Error
	require.True(t, errors.As(wrapped, &domErr))
	assert.Equal(t, http.StatusConflict, domErr.Status)
}

func TestError_ClosedTaxonomyStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidRequestData.Status)
	assert.Equal(t, http.StatusNotFound, ErrRecordNotFound.Status)
	assert.Equal(t, http.StatusConflict, ErrRoomNotAvailable.Status)
	assert.Equal(t, http.StatusConflict, ErrDateNotAvailable.Status)
	assert.Equal(t, http.StatusConflict, ErrAssociatedResources.Status)
	assert.Equal(t, http.StatusInternalServerError, ErrDatabase.Status)
}
