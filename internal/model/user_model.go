package model

import (
	"time"

	"github.com/google/uuid"
)

// User rows share their id with the auth provider account.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
