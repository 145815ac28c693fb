package model

import (
	"time"

	"github.com/google/uuid"
)

type TherapistInsight struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_therapist_insights_user_created,priority:1"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_therapist_insights_user_created,priority:2"`
}

func (TherapistInsight) TableName() string {
	return "TherapistInsights"
}
