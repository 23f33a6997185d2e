package validators

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager.com/task-manager/internal/constants"
	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
)

func ptr[T any](v T) *T {
	return &v
}

func requireBadRequest(t *testing.T, err error, message string) {
	t.Helper()

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestValidate_CreateTaskRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.CreateTaskRequest{Title: "Buy milk"}))
	assert.NoError(t, v.Validate(&dto.CreateTaskRequest{
		Title:       "Buy milk",
		Description: ptr(""),
		Status:      ptr(constants.StatusInProgress),
	}))

	requireBadRequest(t, v.Validate(&dto.CreateTaskRequest{}), "title is required")
	requireBadRequest(t, v.Validate(&dto.CreateTaskRequest{Title: "ab"}), "title must be at least 3 characters")
	requireBadRequest(t, v.Validate(&dto.CreateTaskRequest{Title: strings.Repeat("t", 256)}), "title must be at most 255 characters")
	requireBadRequest(t, v.Validate(&dto.CreateTaskRequest{
		Title:       "Buy milk",
		Description: ptr(strings.Repeat("d", 1001)),
	}), "description must be at most 1000 characters")
	requireBadRequest(t, v.Validate(&dto.CreateTaskRequest{
		Title:  "Buy milk",
		Status: ptr(constants.TaskStatus("done")),
	}), "status must be one of: open, in-progress, closed")
}

func TestValidate_UpdateTaskRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.UpdateTaskRequest{}))
	assert.NoError(t, v.Validate(&dto.UpdateTaskRequest{Status: ptr(constants.StatusClosed)}))

	requireBadRequest(t, v.Validate(&dto.UpdateTaskRequest{Title: ptr("")}), "title must be at least 3 characters")
}

func TestValidate_RegisterRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.RegisterRequest{Username: "alice", Password: "secret"}))

	requireBadRequest(t, v.Validate(&dto.RegisterRequest{Username: "al", Password: "secret"}), "username must be at least 3 characters")
	requireBadRequest(t, v.Validate(&dto.RegisterRequest{Username: strings.Repeat("u", 51), Password: "secret"}), "username must be at most 50 characters")
	requireBadRequest(t, v.Validate(&dto.RegisterRequest{Username: "alice", Password: "12345"}), "password must be at least 6 characters")
}

func TestValidatePagination(t *testing.T) {
	assert.NoError(t, ValidatePagination(0, 0))
	assert.NoError(t, ValidatePagination(5, 100))
	assert.ErrorIs(t, ValidatePagination(-1, 10), apperrors.ErrInvalidLimit)
	assert.ErrorIs(t, ValidatePagination(0, -1), apperrors.ErrInvalidLimit)
}
