package repository

import (
	"errors"
	"fmt"
	"log/slog"

	"task-manager.com/task-manager/internal/database"
)

var (
	ErrStorageFailure    = database.ErrStorageFailure
	ErrTaskNotFound      = errors.New("task not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPagination = errors.New("skip and limit must not be negative")
)

// TaskNotFoundError names the missing task and matches ErrTaskNotFound.
type TaskNotFoundError struct {
	ID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

func storageFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}

// rollback undoes the session's pending work after a failed write and
// reports the failure as ErrStorageFailure.
func rollback(sess *database.Session, logger *slog.Logger, op string, err error) error {
	if rbErr := sess.Rollback(); rbErr != nil {
		logger.Error("rollback failed", "op", op, "error", rbErr)
	}
	logger.Error("storage operation failed", "op", op, "error", err)
	return storageFailure(op, err)
}
