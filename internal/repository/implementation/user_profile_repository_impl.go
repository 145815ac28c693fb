package implementation

import (
	"context"
	"errors"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewUserProfileRepository(db *gorm.DB) contract.UserProfileRepository {
	return &UserProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *UserProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	m, err := r.mapper.ProfileToModel(profile)
	if err != nil {
		return apperror.Store("user_profiles.upsert", err)
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"profile_data", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return apperror.Store("user_profiles.upsert", err)
	}
	return nil
}

func (r *UserProfileRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	var m model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store("user_profiles.find", err)
	}
	profile, err := r.mapper.ProfileToEntity(&m)
	if err != nil {
		return nil, apperror.Store("user_profiles.find", err)
	}
	return profile, nil
}
