package contract

import (
	"context"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/repository/specification"
)

type JournalRepository interface {
	Create(ctx context.Context, journal *entity.JournalEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	CreateMany(ctx context.Context, goals []*entity.Goal) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error)
}
