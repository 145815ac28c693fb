package dto

import (
	"time"

	"ai-journaling-be/internal/entity"

	"github.com/google/uuid"
)

type UpsertProfileRequest struct {
	ProfileData *entity.ProfileData `json:"profile_data" validate:"required"`
}

type UserProfileResponse struct {
	UserId      uuid.UUID          `json:"user_id"`
	ProfileData entity.ProfileData `json:"profile_data"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
