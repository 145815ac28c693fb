package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	UserId      uuid.UUID
	ProfileData ProfileData
	UpdatedAt   time.Time
}

// ProfileData is the structured blob stored in profile_data. The same
// validate tags guard both generated and manually supplied profiles.
type ProfileData struct {
	Name         string         `json:"name" validate:"required"`
	Strengths    []ProfileTrait `json:"strengths" validate:"required,dive"`
	Weaknesses   []ProfileTrait `json:"weaknesses" validate:"required,dive"`
	SocialSkills *SocialSkills  `json:"socialSkills" validate:"required"`
}

type ProfileTrait struct {
	Area        string `json:"area" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type SocialSkills struct {
	Score       *int   `json:"score" validate:"required"`
	Description string `json:"description" validate:"required"`
}
