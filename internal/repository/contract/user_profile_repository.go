package contract

import (
	"context"

	"ai-journaling-be/internal/entity"

	"github.com/google/uuid"
)

type UserProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.UserProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
}
