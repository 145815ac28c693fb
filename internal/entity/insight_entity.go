package entity

import (
	"time"

	"github.com/google/uuid"
)

type TherapistInsight struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
}
