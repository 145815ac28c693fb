package implementation

import (
	"context"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryImpl struct {
	*baseRepository[model.User, entity.User]
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	m := mapper.NewUserMapper()
	return &UserRepositoryImpl{
		baseRepository: &baseRepository[model.User, entity.User]{
			db:       db,
			name:     "users",
			toEntity: m.ToEntity,
			toModel:  m.ToModel,
		},
	}
}

func (r *UserRepositoryImpl) CreateIfAbsent(ctx context.Context, user *entity.User) error {
	m := r.toModel(user)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error; err != nil {
		return apperror.Store(r.name+".create_if_absent", err)
	}
	return nil
}
