package persistence

import (
	"errors"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps GORM sentinel errors onto domain errors; notFound names
// the missing resource
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDuplicateError(err.Error())
	}
	return err
}

// dayRange returns [start of day(t), start of day(t)+days) in UTC
func dayRange(t time.Time, days int) (time.Time, time.Time) {
	start := shared.StartOfDay(t)
	return start, start.AddDate(0, 0, days)
}
