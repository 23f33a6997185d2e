package errors

import (
	"errors"

	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/security"
	"task-manager.com/task-manager/internal/services"
)

// Translate maps a domain error kind to the Exception shown to clients.
// Unknown errors become ErrInternal.
func Translate(err error) *Exception {
	var exc *Exception
	var missing *repository.TaskNotFoundError
	switch {
	case errors.As(err, &exc):
		return exc
	case errors.As(err, &missing):
		return NewTaskNotFound(missing.ID)
	case errors.Is(err, repository.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrDuplicateUsername
	case errors.Is(err, repository.ErrInvalidStatus):
		return ErrInvalidStatus
	case errors.Is(err, repository.ErrInvalidPagination):
		return ErrInvalidLimit
	case errors.Is(err, security.ErrPasswordTooLong):
		return ErrPasswordTooLong
	case errors.Is(err, services.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, security.ErrInvalidToken):
		return ErrUnauthenticated
	case errors.Is(err, repository.ErrStorageFailure):
		return ErrStorageFailure
	}
	return ErrInternal
}
