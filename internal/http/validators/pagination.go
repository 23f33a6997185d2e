package validators

import (
	apperrors "task-manager.com/task-manager/internal/errors"
)

func ValidatePagination(skip, limit int) error {
	if skip < 0 || limit < 0 {
		return apperrors.ErrInvalidLimit
	}
	return nil
}
