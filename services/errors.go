package services

import (
	"errors"

	"gorm.io/gorm"

	"kb-cms/models"
)

// notFoundOr converts a gorm record-not-found into a domain not-found error
// with a meaningful message, passing every other error through.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewErrorNotFound(format, args...)
	}
	return err
}
