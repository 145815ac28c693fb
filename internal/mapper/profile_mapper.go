package mapper

import (
	"encoding/json"
	"fmt"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ProfileToEntity(p *model.UserProfile) (*entity.UserProfile, error) {
	if p == nil {
		return nil, nil
	}
	var data entity.ProfileData
	if len(p.ProfileData) > 0 {
		if err := json.Unmarshal(p.ProfileData, &data); err != nil {
			return nil, fmt.Errorf("decode profile_data: %w", err)
		}
	}
	return &entity.UserProfile{
		UserId:      p.UserId,
		ProfileData: data,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (m *ProfileMapper) ProfileToModel(p *entity.UserProfile) (*model.UserProfile, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := json.Marshal(p.ProfileData)
	if err != nil {
		return nil, fmt.Errorf("encode profile_data: %w", err)
	}
	return &model.UserProfile{
		UserId:      p.UserId,
		ProfileData: datatypes.JSON(raw),
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
