package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/apierr"
)

// entityErr maps a repo read error onto the API taxonomy: a missing row
// becomes NotFound with the entity name, everything else passes through.
func entityErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.NotFound(entity)
	}
	return err
}
