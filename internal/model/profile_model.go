package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserProfile struct {
	UserId      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProfileData datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

func (UserProfile) TableName() string {
	return "UserProfiles"
}
