package database

import (
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kbukum/diarscribe/errors"
)

// FromDatabase converts a GORM error to an AppError: a missing record becomes
// NOT_FOUND, anything else STORAGE_ERROR.
func FromDatabase(err error, resource, id string) *errors.AppError {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound(resource, id).WithCause(err)
	}
	return errors.StorageError(resource, err)
}
