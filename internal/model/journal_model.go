package model

import (
	"time"

	"github.com/google/uuid"
)

type Journal struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index:idx_journals_user_date,priority:1"`
	Content     string    `gorm:"type:text;not null"`
	JournalDate time.Time `gorm:"type:date;not null;default:CURRENT_DATE;index:idx_journals_user_date,priority:2"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Journal) TableName() string {
	return "Journals"
}

type Goal struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Goal) TableName() string {
	return "Goals"
}
