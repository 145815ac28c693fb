package specification

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}

// Select narrows the projected columns.
type Select struct {
	Fields []string
}

func (s Select) Apply(db *gorm.DB) *gorm.DB {
	return db.Select(s.Fields)
}

// DateRange keeps rows whose date column lies in [From, To], both inclusive.
// Bounds are compared as calendar dates.
type DateRange struct {
	Field string
	From  time.Time
	To    time.Time
}

func (s DateRange) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where(fmt.Sprintf("%s >= ?", s.Field), s.From.Format(DateLayout)).
		Where(fmt.Sprintf("%s <= ?", s.Field), s.To.Format(DateLayout))
}

// CreatedSince keeps rows created at or after Since.
type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}
