package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByWindow matches the natural key of a journal summary.
type ByWindow struct {
	StartDate time.Time
	EndDate   time.Time
}

func (s ByWindow) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where("start_date = ?", s.StartDate.Format(DateLayout)).
		Where("end_date = ?", s.EndDate.Format(DateLayout))
}
